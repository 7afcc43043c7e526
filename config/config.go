package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all runtime configuration, loaded from a toml file with a
// couple of environment overrides for deploy-time values.
type Config struct {
	Server struct {
		Port string `toml:"port"`
		Env  string `toml:"env"` // "development" or "production"
	} `toml:"server"`

	Database struct {
		Path string `toml:"path"`
	} `toml:"database"`

	Projects struct {
		File string `toml:"file"` // .csv or .xlsx
	} `toml:"projects"`

	Auth struct {
		// Header set by the SSO proxy, carrying JSON {"user": "<username>"}.
		CredentialsHeader string `toml:"credentials_header"`
		// Default identity when the ?user= override is used without a value.
		DevFallbackUser string `toml:"dev_fallback_user"`
	} `toml:"auth"`

	Directory struct {
		ServerURL string `toml:"server_url"`
		APIKeyEnv string `toml:"api_key_env"`
	} `toml:"directory"`

	Status struct {
		// How many days past today a forecast week stays editable (and red)
		// before it expires to gray.
		ForecastGraceDays int `toml:"forecast_grace_days"`
		// How far ahead of today a forecast day counts as due (red when
		// missing); beyond this it is merely open (blue).
		ForecastOpenHorizonDays int `toml:"forecast_open_horizon_days"`
		// Number of weeks shown on the activity map.
		MapWeeks int `toml:"map_weeks"`
	} `toml:"status"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var c Config
	c.Server.Port = "8080"
	c.Server.Env = "development"
	c.Database.Path = "timesheet.db"
	c.Projects.File = "projects.csv"
	c.Auth.CredentialsHeader = "Rstudio-Connect-Credentials"
	c.Auth.DevFallbackUser = "dev.user@example.com"
	c.Directory.APIKeyEnv = "CONNECT_API_KEY"
	c.Status.ForecastGraceDays = 3
	c.Status.ForecastOpenHorizonDays = 7
	c.Status.MapWeeks = 6
	return &c
}

// Load reads configuration from a toml file, falling back to defaults for a
// missing file, then applies environment overrides.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if env := os.Getenv("TIMESHEET_ENV"); env != "" {
		config.Server.Env = env
	}
	if server := os.Getenv("CONNECT_SERVER"); server != "" {
		config.Directory.ServerURL = server
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("server port is not specified in config")
	}
	if config.Status.MapWeeks <= 0 {
		config.Status.MapWeeks = 6
	}

	return config, nil
}

// IsDevelopment reports whether the dev identity fallback may be used.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

// DirectoryAPIKey reads the directory API key from the configured env var.
func (c *Config) DirectoryAPIKey() string {
	if c.Directory.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Directory.APIKeyEnv)
}
