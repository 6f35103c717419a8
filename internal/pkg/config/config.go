package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DataGovSG DataGovSGConfig `mapstructure:"datagovsg"`
	OneMap    OneMapConfig    `mapstructure:"onemap"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Report    ReportConfig    `mapstructure:"report"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataGovSGConfig configures the taxi-availability source.
type DataGovSGConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	APIKey         string `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// OneMapConfig configures the planning-area source.
type OneMapConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	Token          string `mapstructure:"token" validate:"required"`
	Year           int    `mapstructure:"year" validate:"gte=1998"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// NominatimConfig configures the reverse geocoder.
type NominatimConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	UserAgent      string `mapstructure:"user_agent" validate:"required"`
	Zoom           int    `mapstructure:"zoom" validate:"gte=0,lte=18"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// ValkeyConfig configures the optional reference-data cache. An empty
// Addr disables caching entirely.
type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

// ReportConfig configures the rendered report.
type ReportConfig struct {
	TopN   int    `mapstructure:"top_n" validate:"gt=0"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("datagovsg.base_url", "https://api.data.gov.sg")
	v.SetDefault("datagovsg.timeout_seconds", 15)
	v.SetDefault("onemap.base_url", "https://www.onemap.gov.sg")
	v.SetDefault("onemap.year", 2019)
	v.SetDefault("onemap.timeout_seconds", 15)
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", "taxihotspots/1.0")
	v.SetDefault("nominatim.zoom", 16)
	v.SetDefault("nominatim.timeout_seconds", 20)
	v.SetDefault("valkey.addr", "")
	v.SetDefault("report.top_n", 10)
	v.SetDefault("report.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: TAXIHOTSPOTS_ONEMAP_TOKEN → onemap.token
	v.SetEnvPrefix("TAXIHOTSPOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also under the names the upstream portals document.
	_ = v.BindEnv("onemap.token", "TAXIHOTSPOTS_ONEMAP_TOKEN", "ONE_MAP_API_TOKEN")
	_ = v.BindEnv("datagovsg.api_key", "TAXIHOTSPOTS_DATAGOVSG_API_KEY", "DATA_SG_API")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Namespace() {
		case "Config.OneMap.Token":
			msgs = append(msgs, "OneMap API token is required (set ONE_MAP_API_TOKEN)")
		case "Config.DataGovSG.APIKey":
			msgs = append(msgs, "data.gov.sg API key is required (set DATA_SG_API)")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
