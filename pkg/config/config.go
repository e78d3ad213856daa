package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Client   ClientConfig
	Outbox   OutboxConfig
	Payment  PaymentConfig
	Invoice  InvoiceConfig
	Stats    StatsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ClientConfig points the submission pipelines at a running gateway.
type ClientConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

// OutboxConfig locates the durable local fallback store.
type OutboxConfig struct {
	Dir string
}

// PaymentConfig carries checkout presentation and gateway tuning.
type PaymentConfig struct {
	KeyID           string
	ThemeColor      string
	CheckoutTimeout time.Duration
	MaxRetries      int
	RedirectDelay   time.Duration
}

// InvoiceConfig locates static invoice assets.
type InvoiceConfig struct {
	LogoPath string
}

// StatsConfig tunes the cached aggregate endpoint.
type StatsConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Client = ClientConfig{
		APIBaseURL: v.GetString("API_BASE_URL"),
		Timeout:    parseDuration(v.GetString("API_CLIENT_TIMEOUT"), 15*time.Second),
	}

	cfg.Outbox = OutboxConfig{
		Dir: v.GetString("OUTBOX_DIR"),
	}

	cfg.Payment = PaymentConfig{
		KeyID:           v.GetString("PAYMENT_KEY_ID"),
		ThemeColor:      v.GetString("PAYMENT_THEME_COLOR"),
		CheckoutTimeout: parseDuration(v.GetString("PAYMENT_CHECKOUT_TIMEOUT"), 5*time.Minute),
		MaxRetries:      v.GetInt("PAYMENT_MAX_RETRIES"),
		RedirectDelay:   parseDuration(v.GetString("PAYMENT_REDIRECT_DELAY"), 5*time.Second),
	}

	cfg.Invoice = InvoiceConfig{
		LogoPath: v.GetString("INVOICE_LOGO_PATH"),
	}

	cfg.Stats = StatsConfig{
		CacheTTL: parseDuration(v.GetString("STATS_CACHE_TTL"), 30*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "kalakar_art_academy")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("API_BASE_URL", "http://localhost:3001")
	v.SetDefault("API_CLIENT_TIMEOUT", "15s")

	v.SetDefault("OUTBOX_DIR", "./outbox")

	v.SetDefault("PAYMENT_KEY_ID", "rzp_test_deJclZWsYK2wrx")
	v.SetDefault("PAYMENT_THEME_COLOR", "#9333ea")
	v.SetDefault("PAYMENT_CHECKOUT_TIMEOUT", "5m")
	v.SetDefault("PAYMENT_MAX_RETRIES", 3)
	v.SetDefault("PAYMENT_REDIRECT_DELAY", "5s")

	v.SetDefault("INVOICE_LOGO_PATH", "./assets/logo.png")

	v.SetDefault("STATS_CACHE_TTL", "30s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
