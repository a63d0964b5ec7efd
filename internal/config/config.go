package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultAPIURL    = "https://api.openweathermap.org/data/2.5/weather"
	defaultTimeout   = 10 * time.Second
	defaultRate      = 60
	defaultBurst     = 10
	defaultPerMinute = 60
)

// ErrAPIKeyMissing is returned when no OpenWeatherMap key is configured.
var ErrAPIKeyMissing = errors.New("OPENWEATHERMAP_API_KEY is not set (export it or add it to .env)")

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once
var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		viper.SetDefault("openweathermap.api_url", defaultAPIURL)
		viper.SetDefault("openweathermap.timeout", defaultTimeout.String())
		viper.SetDefault("rate_limiter.rate", defaultRate)
		viper.SetDefault("rate_limiter.burst", defaultBurst)
		viper.SetDefault("rate_limiter.per_minute", defaultPerMinute)
		viper.SetDefault("redis.addr", "")
		viper.SetDefault("display.color", "auto")
		viper.SetDefault("log.level", "warn")

		viper.SetEnvPrefix("weather")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			// An installed binary has no go.mod above it; look next to the working directory.
			root = "."
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				GetLogger().Errorw("Error reading config file", "error", err)
			}
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Debugw("No test config merged", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return strings.TrimSpace(os.Getenv("OPENWEATHERMAP_API_KEY"))
}

// RequireOpenWeatherMapAPIKey returns the API key or ErrAPIKeyMissing.
func RequireOpenWeatherMapAPIKey() (string, error) {
	key := GetOpenWeatherMapAPIKey()
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

// GetRequestTimeout bounds a single weather query. Defaults to 10s if not set or invalid.
func GetRequestTimeout() time.Duration {
	initConfig()
	dur, err := time.ParseDuration(viper.GetString("openweathermap.timeout"))
	if err != nil || dur <= 0 {
		return defaultTimeout
	}
	return dur
}

// GetRedisAddr returns the Redis address backing the shared request quota.
// An empty address disables it.
func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

// GetRateLimiterConfig returns the local token bucket as requests per minute and burst.
func GetRateLimiterConfig() (perMinute float64, burst int) {
	initConfig()
	perMinute = viper.GetFloat64("rate_limiter.rate")
	if perMinute <= 0 {
		perMinute = defaultRate
	}
	burst = viper.GetInt("rate_limiter.burst")
	if burst <= 0 {
		burst = defaultBurst
	}
	return
}

// GetSharedQuotaPerMinute returns how many requests all processes sharing the key may make per minute.
func GetSharedQuotaPerMinute() int64 {
	initConfig()
	n := viper.GetInt64("rate_limiter.per_minute")
	if n <= 0 {
		return defaultPerMinute
	}
	return n
}

// GetColorMode returns one of "auto", "always" or "never".
func GetColorMode() string {
	initConfig()
	switch mode := strings.ToLower(viper.GetString("display.color")); mode {
	case "always", "never":
		return mode
	default:
		return "auto"
	}
}

func GetLogLevel() zapcore.Level {
	initConfig()
	level, err := zapcore.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// GetLogger returns the process logger. It writes to stderr so it never mixes with the report on stdout.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		cfg.Level = logLevel
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// ApplyLogLevel sets the logger to the level named by log.level.
func ApplyLogLevel() {
	logLevel.SetLevel(GetLogLevel())
}
