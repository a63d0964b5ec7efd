// Package presenter turns a weather report into the colored text shown to the user.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fakhrymubarak/weather-station/internal/model"
	"github.com/fatih/color"
)

// Accent is the color style applied to a block of output.
type Accent int

const (
	AccentNone Accent = iota
	AccentBrightYellow
	AccentBrightBlue
	AccentDimmed
	AccentBrightCyan
	AccentBrightGreen
)

func (a Accent) String() string {
	switch a {
	case AccentBrightYellow:
		return "bright yellow"
	case AccentBrightBlue:
		return "bright blue"
	case AccentDimmed:
		return "dimmed"
	case AccentBrightCyan:
		return "bright cyan"
	case AccentBrightGreen:
		return "bright green"
	default:
		return "none"
	}
}

// accents maps OpenWeatherMap descriptions to a report accent. Matching is exact and case-sensitive.
var accents = map[string]Accent{
	"clear sky": AccentBrightYellow,

	"few clouds":       AccentBrightBlue,
	"scattered clouds": AccentBrightBlue,
	"broken clouds":    AccentBrightBlue,

	"overcast clouds": AccentDimmed,
	"mist":            AccentDimmed,
	"haze":            AccentDimmed,
	"smoke":           AccentDimmed,
	"sand":            AccentDimmed,
	"dust":            AccentDimmed,
	"fog":             AccentDimmed,
	"squalls":         AccentDimmed,

	"shower rain":  AccentBrightCyan,
	"rain":         AccentBrightCyan,
	"thunderstorm": AccentBrightCyan,
	"snow":         AccentBrightCyan,
}

// AccentFor returns the accent for a weather description, AccentNone if it is not listed.
func AccentFor(description string) Accent {
	return accents[description]
}

const (
	IndicatorFreezing = "❄️ "
	IndicatorCold     = "☁️ "
	IndicatorMild     = "⛅"
	IndicatorSunny    = "🌤️"
	IndicatorHot      = "🔥"
)

// Indicator picks the symbol shown next to the description.
// 10 <= t < 20 has no bucket of its own and gets IndicatorHot, as does NaN.
func Indicator(temperature float64) string {
	switch {
	case temperature < 0:
		return IndicatorFreezing
	case temperature >= 0 && temperature < 10:
		return IndicatorCold
	case temperature >= 20 && temperature < 30:
		return IndicatorMild
	case temperature >= 30:
		return IndicatorSunny
	default:
		return IndicatorHot
	}
}

// Format renders the report as plain text, numbers to one decimal place.
func Format(r *model.WeatherReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather in %s: %s %s\n", r.Location, r.Description, Indicator(r.Temperature))
	fmt.Fprintf(&b, "  > Temperature: %.1f°C,\n", r.Temperature)
	fmt.Fprintf(&b, "  > Humidity: %.1f%%,\n", r.Humidity)
	fmt.Fprintf(&b, "  > Pressure: %.1f hPa,\n", r.Pressure)
	fmt.Fprintf(&b, "  > Wind Speed: %.1f m/s", r.WindSpeed)
	return b.String()
}

// Presenter applies accents according to a color mode.
type Presenter struct {
	styles map[Accent]*color.Color
}

// New builds a Presenter. mode is "always", "never" or "auto"; auto colors only a terminal.
func New(mode string) *Presenter {
	styles := map[Accent]*color.Color{
		AccentBrightYellow: color.New(color.FgHiYellow),
		AccentBrightBlue:   color.New(color.FgHiBlue),
		AccentDimmed:       color.New(color.Faint),
		AccentBrightCyan:   color.New(color.FgHiCyan),
		AccentBrightGreen:  color.New(color.FgHiGreen),
	}
	for _, c := range styles {
		switch mode {
		case "always":
			c.EnableColor()
		case "never":
			c.DisableColor()
		}
	}
	return &Presenter{styles: styles}
}

// Style returns s wrapped in the escape codes for a, or s itself for AccentNone.
func (p *Presenter) Style(a Accent, s string) string {
	c, ok := p.styles[a]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// Render formats the report and colors it by its description.
func (p *Presenter) Render(r *model.WeatherReport) string {
	return p.Style(AccentFor(r.Description), Format(r))
}

func (p *Presenter) Print(w io.Writer, r *model.WeatherReport) error {
	_, err := fmt.Fprintln(w, p.Render(r))
	return err
}
