package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/turugol/quiniela/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	DBURL string

	AutosaveDebounce time.Duration

	SeasonYear      int
	CatalogCacheTTL time.Duration
	CatalogWorkers  int
	WarmLeagueIDs   []int64

	FootballAPIEnabled               bool
	FootballAPIBaseURL               string
	FootballAPIKey                   string
	FootballAPITimeout               time.Duration
	FootballAPIMaxRetries            int
	FootballAPICircuitEnabled        bool
	FootballAPICircuitFailureCount   int
	FootballAPICircuitOpenTimeout    time.Duration
	FootballAPICircuitHalfOpenMaxReq int

	AccountBaseURL               string
	AccountIntrospectPath        string
	AccountTimeout               time.Duration
	AccountCacheTTL              time.Duration
	AccountCircuitEnabled        bool
	AccountCircuitFailureCount   int
	AccountCircuitOpenTimeout    time.Duration
	AccountCircuitHalfOpenMaxReq int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "quiniela-api"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:              getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:    splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:              parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DBURL:                 strings.TrimSpace(getEnv("DB_URL", "")),
		FootballAPIBaseURL:    strings.TrimSpace(getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io")),
		FootballAPIKey:        strings.TrimSpace(getEnv("FOOTBALL_API_KEY", "")),
		AccountBaseURL:        strings.TrimSpace(getEnv("ACCOUNT_BASE_URL", "http://localhost:8081")),
		AccountIntrospectPath: strings.TrimSpace(getEnv("ACCOUNT_INTROSPECT_PATH", "/v1/tokens/introspect")),
		UptraceDSN:            strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeAuthToken:    strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.AutosaveDebounce, err = getEnvAsDuration("AUTOSAVE_DEBOUNCE", 1500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.AutosaveDebounce <= 0 {
		return Config{}, fmt.Errorf("AUTOSAVE_DEBOUNCE must be > 0")
	}

	if cfg.SeasonYear, err = getEnvAsInt("SEASON_YEAR", time.Now().UTC().Year()); err != nil {
		return Config{}, err
	}
	if cfg.SeasonYear < 2000 {
		return Config{}, fmt.Errorf("SEASON_YEAR must be a four digit year")
	}
	if cfg.CatalogCacheTTL, err = getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CatalogCacheTTL <= 0 {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL must be > 0")
	}
	if cfg.CatalogWorkers, err = getEnvAsInt("CATALOG_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.CatalogWorkers < 1 {
		return Config{}, fmt.Errorf("CATALOG_WORKERS must be >= 1")
	}
	if cfg.WarmLeagueIDs, err = parseIDList(getEnv("CATALOG_WARM_LEAGUE_IDS", "")); err != nil {
		return Config{}, fmt.Errorf("parse CATALOG_WARM_LEAGUE_IDS: %w", err)
	}

	if cfg.FootballAPIEnabled, err = getEnvAsBool("FOOTBALL_API_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPIEnabled && cfg.FootballAPIKey == "" {
		return Config{}, fmt.Errorf("FOOTBALL_API_KEY is required when FOOTBALL_API_ENABLED=true")
	}
	if cfg.FootballAPITimeout, err = getEnvAsDuration("FOOTBALL_API_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPIMaxRetries, err = getEnvAsInt("FOOTBALL_API_MAX_RETRIES", 1); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_MAX_RETRIES must be >= 0")
	}
	if cfg.FootballAPICircuitEnabled, err = getEnvAsBool("FOOTBALL_API_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPICircuitFailureCount, err = getEnvAsInt("FOOTBALL_API_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPICircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.FootballAPICircuitOpenTimeout, err = getEnvAsDuration("FOOTBALL_API_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPICircuitHalfOpenMaxReq, err = getEnvAsInt("FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, err
	}
	if cfg.FootballAPICircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.AccountTimeout, err = getEnvAsDuration("ACCOUNT_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AccountCacheTTL, err = getEnvAsDuration("ACCOUNT_CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitEnabled, err = getEnvAsBool("ACCOUNT_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitFailureCount, err = getEnvAsInt("ACCOUNT_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ACCOUNT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.AccountCircuitOpenTimeout, err = getEnvAsDuration("ACCOUNT_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitHalfOpenMaxReq, err = getEnvAsInt("ACCOUNT_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, err
	}
	if cfg.AccountCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ACCOUNT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

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

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
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

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
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

func parseIDList(raw string) ([]int64, error) {
	items := splitCSV(raw)
	out := make([]int64, 0, len(items))
	for _, item := range items {
		value, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid league id %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("league id must be > 0, got %q", item)
		}
		out = append(out, value)
	}

	return out, nil
}
