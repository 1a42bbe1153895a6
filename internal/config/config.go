package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled bool
	CacheTTL     time.Duration

	CORSAllowedOrigins []string

	FeedBaseURLNA           string
	FeedBaseURLEU           string
	FeedBaseURLBot          string
	FeedTimeout             time.Duration
	FeedMaxRetries          int
	FeedCircuitEnabled      bool
	FeedCircuitFailureCount int
	FeedCircuitOpenTimeout  time.Duration
	FeedCircuitHalfOpenMax  int

	ResolvePollInterval time.Duration
	ResolveWorkers      int
	ResolveMaxChecks    int
	ResolveFetchCount   int

	InternalJobToken string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string

	LogLevel  logging.Level
	SlogLevel slog.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "tournament-api"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
	}

	cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", false)
	if err != nil {
		return Config{}, err
	}

	cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "5s")
	if err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	cfg.FeedBaseURLNA = strings.TrimSpace(getEnv("GENERALS_BASE_URL_NA", ""))
	cfg.FeedBaseURLEU = strings.TrimSpace(getEnv("GENERALS_BASE_URL_EU", ""))
	cfg.FeedBaseURLBot = strings.TrimSpace(getEnv("GENERALS_BASE_URL_BOT", ""))
	cfg.FeedTimeout, err = getEnvAsDuration("GENERALS_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	if cfg.FeedTimeout <= 0 {
		return Config{}, fmt.Errorf("GENERALS_TIMEOUT must be > 0")
	}
	cfg.FeedMaxRetries, err = getEnvAsInt("GENERALS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, err
	}
	if cfg.FeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("GENERALS_MAX_RETRIES must be >= 0")
	}
	cfg.FeedCircuitEnabled, err = getEnvAsBool("GENERALS_CIRCUIT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.FeedCircuitFailureCount, err = getEnvAsInt("GENERALS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, err
	}
	if cfg.FeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GENERALS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cfg.FeedCircuitOpenTimeout, err = getEnvAsDuration("GENERALS_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	if cfg.FeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GENERALS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cfg.FeedCircuitHalfOpenMax, err = getEnvAsInt("GENERALS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, err
	}
	if cfg.FeedCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GENERALS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg.ResolvePollInterval, err = getEnvAsDuration("RESOLVE_POLL_INTERVAL", "10s")
	if err != nil {
		return Config{}, err
	}
	if cfg.ResolvePollInterval <= 0 {
		return Config{}, fmt.Errorf("RESOLVE_POLL_INTERVAL must be > 0")
	}
	cfg.ResolveWorkers, err = getEnvAsInt("RESOLVE_WORKERS", 8)
	if err != nil {
		return Config{}, err
	}
	if cfg.ResolveWorkers < 1 {
		return Config{}, fmt.Errorf("RESOLVE_WORKERS must be >= 1")
	}
	cfg.ResolveMaxChecks, err = getEnvAsInt("RESOLVE_MAX_CHECKS", 120)
	if err != nil {
		return Config{}, err
	}
	if cfg.ResolveMaxChecks < 1 {
		return Config{}, fmt.Errorf("RESOLVE_MAX_CHECKS must be >= 1")
	}
	cfg.ResolveFetchCount, err = getEnvAsInt("RESOLVE_FETCH_COUNT", 10)
	if err != nil {
		return Config{}, err
	}
	if cfg.ResolveFetchCount < 1 {
		return Config{}, fmt.Errorf("RESOLVE_FETCH_COUNT must be >= 1")
	}

	cfg.InternalJobToken = strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))

	cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))

	cfg.LogLevel, cfg.SlogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) (logging.Level, slog.Level) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug, slog.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn, slog.LevelWarn
	case "error":
		return logging.LevelError, slog.LevelError
	default:
		return logging.LevelInfo, slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
