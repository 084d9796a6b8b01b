// Package config loads gateway configuration from config.toml and
// HOLO_-prefixed environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all gateway configuration
type Config struct {
	App      AppConfig
	API      APIConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Log      LogConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// APIConfig holds the partner API settings. Key is the shared bearer secret
// the partner authenticates with (environment: HOLO_API_KEY).
type APIConfig struct {
	Key                 string
	AssetsBaseURL       string        // absolute base for product image URLs
	DefaultLocale       string        // used when the request carries no locale
	Locales             []string      // supported translation locales, default first
	CatalogTimeout      time.Duration // per-call deadline for the catalog listing
	LabelFetchTimeout   time.Duration // per-attempt label download timeout
	LabelFetchRetries   int           // extra attempts after the first failure
	AbortOnLabelFailure bool          // refuse fulfillment when the label cannot be fetched
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings. Redis is optional; without it
// the per-order fulfillment lock is process-local.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds shipping-label artifact store settings. Driver selects
// between "s3" (any S3-compatible backend) and "filesystem".
type StorageConfig struct {
	Driver       string
	Bucket       string
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	UsePathStyle bool
	LocalPath    string // root directory for the filesystem driver
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TrustedProxies []string
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with HOLO_ prefix (e.g. HOLO_API_KEY, HOLO_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("HOLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		API: APIConfig{
			Key:                 v.GetString("api.key"),
			AssetsBaseURL:       v.GetString("api.assets_base_url"),
			DefaultLocale:       v.GetString("api.default_locale"),
			Locales:             v.GetStringSlice("api.locales"),
			CatalogTimeout:      v.GetDuration("api.catalog_timeout"),
			LabelFetchTimeout:   v.GetDuration("api.label_fetch_timeout"),
			LabelFetchRetries:   v.GetInt("api.label_fetch_retries"),
			AbortOnLabelFailure: v.GetBool("api.abort_on_label_failure"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Driver:       v.GetString("storage.driver"),
			Bucket:       v.GetString("storage.bucket"),
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UseSSL:       v.GetBool("storage.use_ssl"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			LocalPath:    v.GetString("storage.local_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in defaults for values absent from file and environment
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "holo-gateway"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.API.AssetsBaseURL == "" {
		cfg.API.AssetsBaseURL = "https://myaroma.de"
	}
	if cfg.API.DefaultLocale == "" {
		cfg.API.DefaultLocale = "de"
	}
	if len(cfg.API.Locales) == 0 {
		cfg.API.Locales = []string{cfg.API.DefaultLocale, "en"}
	}
	if cfg.API.CatalogTimeout == 0 {
		cfg.API.CatalogTimeout = 10 * time.Minute
	}
	if cfg.API.LabelFetchTimeout == 0 {
		cfg.API.LabelFetchTimeout = 15 * time.Second
	}
	if cfg.API.LabelFetchRetries == 0 {
		cfg.API.LabelFetchRetries = 1
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "holo_gateway"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 10
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "filesystem"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "data/labels"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "shipping-labels"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// The catalog listing can stream a large payload; the write
		// timeout must outlive the catalog deadline.
		cfg.HTTP.WriteTimeout = cfg.API.CatalogTimeout + 30*time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 120 * time.Second
	}
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required (set HOLO_API_KEY)")
	}
	if c.Storage.Driver != "s3" && c.Storage.Driver != "filesystem" {
		return fmt.Errorf("storage.driver must be \"s3\" or \"filesystem\", got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "s3" {
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage.access_key and storage.secret_key are required for the s3 driver")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the host:port address for the Redis client
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
