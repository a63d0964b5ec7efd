// Package cli runs the interactive weather lookup loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/fakhrymubarak/weather-station/internal/presenter"
	"github.com/fakhrymubarak/weather-station/internal/service"
	"go.uber.org/zap"
)

const (
	WelcomeMessage  = "Welcome to the Weather Station!"
	CityPrompt      = "Please enter the name of the city:"
	CountryPrompt   = "Please enter the name of the country code (e.g, FR for France):"
	ContinuePrompt  = "Do you want to search for weather in another city? (yes/no):"
	GoodbyeMessage  = "Thank you for using our software!"
	continueAnswer  = "yes"
	errorLinePrefix = "Error: "
)

type Session struct {
	Prompter  *Prompter
	Service   service.WeatherServiceInterface
	Presenter *presenter.Presenter
	Out       io.Writer
	ErrOut    io.Writer
	Logger    *zap.SugaredLogger
}

func NewSession(in io.Reader, out, errOut io.Writer, svc service.WeatherServiceInterface, p *presenter.Presenter) *Session {
	return &Session{
		Prompter:  NewPrompter(in, out, p),
		Service:   svc,
		Presenter: p,
		Out:       out,
		ErrOut:    errOut,
		Logger:    config.GetLogger(),
	}
}

// Run loops until the user answers anything but "yes", input ends, or ctx is cancelled.
// Lookup failures are printed and the loop goes on; only input failures are returned.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.Out, s.Presenter.Style(presenter.AccentBrightYellow, WelcomeMessage))

	for {
		again, err := s.iterate(ctx)
		switch {
		case errors.Is(err, ErrInputClosed):
			s.Logger.Debugw("Input closed, ending session")
			s.goodbye()
			return nil
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(s.Out)
			s.goodbye()
			return err
		case err != nil:
			return err
		case !again:
			s.goodbye()
			return nil
		}
	}
}

// iterate runs one query and reports whether the user wants another.
func (s *Session) iterate(ctx context.Context) (bool, error) {
	city, err := s.Prompter.Prompt(ctx, CityPrompt)
	if err != nil {
		return false, err
	}
	countryCode, err := s.Prompter.Prompt(ctx, CountryPrompt)
	if err != nil {
		return false, err
	}

	if err := s.lookup(ctx, city, countryCode); err != nil {
		return false, err
	}

	answer, err := s.Prompter.Prompt(ctx, ContinuePrompt)
	if err != nil {
		return false, err
	}
	return answer == continueAnswer, nil
}

// lookup prints the report or the lookup error. It only fails when ctx is cancelled.
func (s *Session) lookup(ctx context.Context, city, countryCode string) error {
	report, err := s.Service.GetWeather(ctx, city, countryCode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		fmt.Fprintln(s.ErrOut, errorLinePrefix+err.Error())
		return nil
	}
	if err := s.Presenter.Print(s.Out, report); err != nil {
		s.Logger.Warnw("Could not print weather report", "error", err)
	}
	return nil
}

func (s *Session) goodbye() {
	fmt.Fprintln(s.Out, GoodbyeMessage)
}
