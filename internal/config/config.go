package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the deployed Medicare plan lookup function URL
const DefaultAPIBaseURL = "https://thl4l5z7inky2smh6qte6ewfuy0gavym.lambda-url.us-east-1.on.aws"

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	API     APIConfig
	Scanner ScannerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text, tint
}

// APIConfig holds settings for the upstream plan lookup API
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration // zero means no deadline
	LogBodies      bool
	LogFieldMaxLen int
}

// ScannerConfig holds page scanner settings
type ScannerConfig struct {
	DefaultState string // state used when a scanned ZIP is clicked
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Values from a local .env become regular environment variables
	_ = godotenv.Load()

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.medi-plans")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("MEDI_PLANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("api.baseurl", DefaultAPIBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.logbodies", false)
	v.SetDefault("api.logfieldmaxlen", 2048)
	v.SetDefault("scanner.defaultstate", "nh")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return nil, errors.New("api.baseurl must not be empty")
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	level := parseLevel(c.Log.Level)

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "tint":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
