package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Google   GoogleConfig   `yaml:"google" mapstructure:"google"`
	Geocode  GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	GeoNames GeoNamesConfig `yaml:"geonames" mapstructure:"geonames"`
	Verify   VerifyConfig   `yaml:"verify" mapstructure:"verify"`
	Journal  JournalConfig  `yaml:"journal" mapstructure:"journal"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HTTPConfig applies to every outbound request.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// GoogleConfig holds Google Maps Platform credentials.
type GoogleConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// GeocodeConfig configures address resolution.
type GeocodeConfig struct {
	CensusFallback bool    `yaml:"census_fallback" mapstructure:"census_fallback"`
	RateLimit      float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// GeoNamesConfig configures the population provider.
type GeoNamesConfig struct {
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Username  string  `yaml:"username" mapstructure:"username"`
	MaxRows   int     `yaml:"max_rows" mapstructure:"max_rows"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// VerifyConfig configures competitor verification pacing.
type VerifyConfig struct {
	Pacing      string        `yaml:"pacing" mapstructure:"pacing"`
	Delay       time.Duration `yaml:"delay" mapstructure:"delay"`
	Concurrency int           `yaml:"concurrency" mapstructure:"concurrency"`
}

// JournalConfig configures the tool invocation journal. An empty driver
// disables it.
type JournalConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the tool server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DEALER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("http.user_agent", "Mozilla/5.0")
	v.SetDefault("google.api_key", "")
	v.SetDefault("geocode.census_fallback", true)
	v.SetDefault("geocode.rate_limit", 10)
	v.SetDefault("geonames.base_url", "http://api.geonames.org")
	v.SetDefault("geonames.username", "")
	v.SetDefault("geonames.max_rows", 15)
	v.SetDefault("geonames.rate_limit", 5)
	v.SetDefault("verify.pacing", "delay")
	v.SetDefault("verify.delay", time.Second)
	v.SetDefault("verify.concurrency", 4)
	v.SetDefault("journal.driver", "")
	v.SetDefault("journal.dsn", "dealer-scout.db")
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return eris.New("config: http.timeout must be positive")
	}
	// A zero limiter never admits a request.
	if c.Geocode.RateLimit <= 0 || c.GeoNames.RateLimit <= 0 {
		return eris.New("config: geocode.rate_limit and geonames.rate_limit must be positive")
	}
	switch c.Verify.Pacing {
	case "delay", "rate", "none":
	default:
		return eris.Errorf("config: unknown verify.pacing %q", c.Verify.Pacing)
	}
	switch c.Journal.Driver {
	case "", "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown journal.driver %q", c.Journal.Driver)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
