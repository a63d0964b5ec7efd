package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/fakhrymubarak/weather-station/internal/model"
	"github.com/fakhrymubarak/weather-station/internal/repository"
	"go.uber.org/zap"
)

var ErrWeatherService = errors.New("weather service has no repository")

type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherReport, error)
}

// WeatherService runs one lookup per call, each under its own deadline.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Timeout     time.Duration
	Logger      *zap.SugaredLogger
}

func NewWeatherService(repo repository.WeatherRepository) *WeatherService {
	return &WeatherService{
		WeatherRepo: repo,
		Timeout:     config.GetRequestTimeout(),
		Logger:      config.GetLogger(),
	}
}

func (s *WeatherService) GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherReport, error) {
	if s.WeatherRepo == nil {
		return nil, ErrWeatherService
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	logger := s.Logger
	if logger == nil {
		logger = config.GetLogger()
	}

	start := time.Now()
	logger.Debugw("Looking up weather", "city", city, "country", countryCode)
	report, err := s.WeatherRepo.GetWeather(ctx, city, countryCode)
	if err != nil {
		logger.Debugw("Weather lookup failed", "city", city, "country", countryCode, "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("looking up %s,%s: %w", city, countryCode, err)
	}
	logger.Debugw("Weather lookup done", "location", report.Location, "elapsed", time.Since(start))
	return report, nil
}
