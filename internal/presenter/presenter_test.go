package presenter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/fakhrymubarak/weather-station/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisReport() *model.WeatherReport {
	return &model.WeatherReport{
		Location:    "Paris",
		Description: "clear sky",
		Temperature: 21.5,
		Humidity:    60.0,
		Pressure:    1012.0,
		WindSpeed:   3.2,
	}
}

func TestIndicator(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{-40, IndicatorFreezing},
		{-0.1, IndicatorFreezing},
		{0, IndicatorCold},
		{9.99, IndicatorCold},
		// 10 <= t < 20 falls through to the catch-all
		{10, IndicatorHot},
		{15, IndicatorHot},
		{19.99, IndicatorHot},
		{20, IndicatorMild},
		{21.5, IndicatorMild},
		{29.99, IndicatorMild},
		{30, IndicatorSunny},
		{48.8, IndicatorSunny},
		{math.NaN(), IndicatorHot},
		{math.Inf(1), IndicatorSunny},
		{math.Inf(-1), IndicatorFreezing},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Indicator(tt.temp), "temperature %v", tt.temp)
	}
}

func TestAccentFor(t *testing.T) {
	tests := map[Accent][]string{
		AccentBrightYellow: {"clear sky"},
		AccentBrightBlue:   {"few clouds", "scattered clouds", "broken clouds"},
		AccentDimmed:       {"overcast clouds", "mist", "haze", "smoke", "sand", "dust", "fog", "squalls"},
		AccentBrightCyan:   {"shower rain", "rain", "thunderstorm", "snow"},
		AccentNone: {
			"Clear sky", "CLEAR SKY", "clear sky ", " rain", "light rain",
			"heavy intensity rain", "clouds", "", "tornado", "volcanic ash",
		},
	}

	for want, descriptions := range tests {
		for _, d := range descriptions {
			assert.Equal(t, want, AccentFor(d), "description %q", d)
		}
	}
}

func TestAccent_String(t *testing.T) {
	assert.Equal(t, "bright yellow", AccentBrightYellow.String())
	assert.Equal(t, "dimmed", AccentDimmed.String())
	assert.Equal(t, "none", AccentNone.String())
	assert.Equal(t, "none", Accent(42).String())
}

func TestFormat(t *testing.T) {
	got := Format(parisReport())
	want := "Weather in Paris: clear sky ⛅\n" +
		"  > Temperature: 21.5°C,\n" +
		"  > Humidity: 60.0%,\n" +
		"  > Pressure: 1012.0 hPa,\n" +
		"  > Wind Speed: 3.2 m/s"
	assert.Equal(t, want, got)

	for _, s := range []string{"Paris", "clear sky", "21.5", "60.0", "1012.0", "3.2", IndicatorMild} {
		assert.Contains(t, got, s)
	}
}

func TestFormat_RoundsToOneDecimal(t *testing.T) {
	got := Format(&model.WeatherReport{
		Location:    "Yakutsk",
		Description: "snow",
		Temperature: -38.26,
		Humidity:    71,
		Pressure:    1041.04,
		WindSpeed:   0.96,
	})
	assert.Contains(t, got, "Weather in Yakutsk: snow "+IndicatorFreezing)
	assert.Contains(t, got, "-38.3°C")
	assert.Contains(t, got, "71.0%")
	assert.Contains(t, got, "1041.0 hPa")
	assert.Contains(t, got, "1.0 m/s")
}

func TestPresenter_Render_Always(t *testing.T) {
	p := New("always")

	tests := []struct {
		description string
		code        string
	}{
		{"clear sky", "\x1b[93m"},
		{"broken clouds", "\x1b[94m"},
		{"fog", "\x1b[2m"},
		{"thunderstorm", "\x1b[96m"},
	}
	for _, tt := range tests {
		r := parisReport()
		r.Description = tt.description
		got := p.Render(r)
		assert.True(t, strings.HasPrefix(got, tt.code), "description %q rendered as %q", tt.description, got)
		assert.Contains(t, got, Format(r))
	}

	r := parisReport()
	r.Description = "light rain"
	assert.Equal(t, Format(r), p.Render(r), "unlisted descriptions stay plain")
}

func TestPresenter_Render_Never(t *testing.T) {
	p := New("never")
	r := parisReport()
	assert.Equal(t, Format(r), p.Render(r))
	assert.Equal(t, "hello", p.Style(AccentBrightGreen, "hello"))
}

func TestPresenter_Style(t *testing.T) {
	p := New("always")
	assert.Equal(t, "plain", p.Style(AccentNone, "plain"))
	assert.Contains(t, p.Style(AccentBrightGreen, "prompt"), "\x1b[92m")
}

func TestPresenter_Print(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("never").Print(&buf, parisReport()))
	assert.Equal(t, Format(parisReport())+"\n", buf.String())
}
