package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default ports per service, matching the docker-compose layout the
// deployment uses. PORT overrides the per-service default.
const (
	DefaultGatewayPort     = "8000"
	DefaultUserPort        = "8001"
	DefaultRefDataPort     = "8002"
	DefaultHealthDataPort  = "8003"
	DefaultAnalyticsPort   = "8004"
	DefaultIntegrationPort = "8005"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	UserServiceURL        string `mapstructure:"USER_SERVICE_URL"`
	RefDataServiceURL     string `mapstructure:"REF_DATA_SERVICE_URL"`
	HealthDataServiceURL  string `mapstructure:"HEALTH_DATA_SERVICE_URL"`
	AnalyticsServiceURL   string `mapstructure:"ANALYTICS_SERVICE_URL"`
	IntegrationServiceURL string `mapstructure:"INTEGRATION_SERVICE_URL"`
	FHIRServerURL         string `mapstructure:"FHIR_SERVER_URL"`
}

// Load reads configuration from the environment, with an optional .env file
// and hardcoded localhost defaults for every upstream.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("USER_SERVICE_URL", "http://localhost:"+DefaultUserPort)
	v.SetDefault("REF_DATA_SERVICE_URL", "http://localhost:"+DefaultRefDataPort)
	v.SetDefault("HEALTH_DATA_SERVICE_URL", "http://localhost:"+DefaultHealthDataPort)
	v.SetDefault("ANALYTICS_SERVICE_URL", "http://localhost:"+DefaultAnalyticsPort)
	v.SetDefault("INTEGRATION_SERVICE_URL", "http://localhost:"+DefaultIntegrationPort)
	v.SetDefault("FHIR_SERVER_URL", "https://hapi.fhir.org/baseR4")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("USER_SERVICE_URL")
	v.BindEnv("REF_DATA_SERVICE_URL")
	v.BindEnv("HEALTH_DATA_SERVICE_URL")
	v.BindEnv("ANALYTICS_SERVICE_URL")
	v.BindEnv("INTEGRATION_SERVICE_URL")
	v.BindEnv("FHIR_SERVER_URL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PortOr returns the configured PORT, or the given per-service default
// when PORT is unset.
func (c *Config) PortOr(def string) string {
	if c.Port != "" {
		return c.Port
	}
	return def
}

// RequireDatabase checks that a store service has a DATABASE_URL.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
