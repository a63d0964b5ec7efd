package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/fakhrymubarak/weather-station/internal/middleware"
	"github.com/fakhrymubarak/weather-station/internal/model"
)

// maxBodySize caps how much of a response is read; a current-weather body is about 1 KiB.
const maxBodySize = 1 << 20

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherReport, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

// NewHTTPClient returns a client with the configured timeout whose requests go through limiter.
func NewHTTPClient(limiter middleware.Limiter) *http.Client {
	return &http.Client{
		Timeout: config.GetRequestTimeout(),
		Transport: &middleware.RateLimitTransport{
			Base:    http.DefaultTransport,
			Limiter: limiter,
		},
	}
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(apiKey string, httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetRequestTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
		apiURL:     config.GetOpenWeatherApiUrl(),
		apiKey:     apiKey,
	}
}

// GetWeather fetches current conditions for city in countryCode, in metric units.
func (r *weatherRepository) GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherReport, error) {
	if r.apiKey == "" {
		return nil, config.ErrAPIKeyMissing
	}

	endpoint, err := r.buildURL(city, countryCode)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, middleware.ErrQuotaExceeded) {
			return nil, middleware.ErrQuotaExceeded
		}
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return decodeReport(body)
}

// buildURL produces <api_url>?q=<city>,<country>&units=metric&appid=<key> with every value escaped.
func (r *weatherRepository) buildURL(city, countryCode string) (string, error) {
	u, err := url.Parse(r.apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid openweathermap.api_url %q: %w", r.apiURL, err)
	}
	q := u.Query()
	q.Set("q", city+","+countryCode)
	q.Set("units", "metric")
	q.Set("appid", r.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decodeReport(body []byte) (*model.WeatherReport, error) {
	var data model.OpenWeatherMapResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ShapeError{Err: err}
	}

	switch {
	case data.Name == nil || *data.Name == "":
		return nil, &ShapeError{Field: "name"}
	case len(data.Weather) == 0:
		return nil, &ShapeError{Field: "weather[0]"}
	case data.Weather[0].Description == nil:
		return nil, &ShapeError{Field: "weather[0].description"}
	case data.Main == nil:
		return nil, &ShapeError{Field: "main"}
	case data.Main.Temp == nil:
		return nil, &ShapeError{Field: "main.temp"}
	case data.Main.Humidity == nil:
		return nil, &ShapeError{Field: "main.humidity"}
	case data.Main.Pressure == nil:
		return nil, &ShapeError{Field: "main.pressure"}
	case data.Wind == nil || data.Wind.Speed == nil:
		return nil, &ShapeError{Field: "wind.speed"}
	}

	return &model.WeatherReport{
		Location:    *data.Name,
		Description: *data.Weather[0].Description,
		Temperature: *data.Main.Temp,
		Humidity:    *data.Main.Humidity,
		Pressure:    *data.Main.Pressure,
		WindSpeed:   *data.Wind.Speed,
	}, nil
}

// errorMessage pulls "message" out of an API error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var apiErr model.OpenWeatherMapError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}
