package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakhrymubarak/weather-station/internal/cli"
	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/fakhrymubarak/weather-station/internal/middleware"
	"github.com/fakhrymubarak/weather-station/internal/presenter"
	"github.com/fakhrymubarak/weather-station/internal/redis"
	"github.com/fakhrymubarak/weather-station/internal/repository"
	"github.com/fakhrymubarak/weather-station/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Stdin, os.Stdout, os.Stderr))
}

// run wires the application and returns the process exit code.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	config.ApplyLogLevel()
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	apiKey, err := config.RequireOpenWeatherMapAPIKey()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	if redis.Enabled() {
		if err := redis.Ping(ctx); err != nil {
			logger.Warnw("Redis unreachable, shared quota will allow every request", "addr", config.GetRedisAddr(), "error", err)
		}
		defer func() { _ = redis.Close() }()
	}

	httpClient := repository.NewHTTPClient(middleware.NewLimiter(apiKey))
	weatherService := service.NewWeatherService(repository.NewWeatherRepository(apiKey, httpClient))
	session := cli.NewSession(stdin, stdout, stderr, weatherService, presenter.New(config.GetColorMode()))

	if err := session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		logger.Errorw("Session ended", "error", err)
		return 1
	}
	return 0
}
