package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Backend struct {
		TranscribeURL string `yaml:"transcribe_url"`
	} `yaml:"backend"`

	Site Site `yaml:"site"`

	Sessions struct {
		MaxIdleMinutes       int `yaml:"max_idle_minutes"`
		SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
	} `yaml:"sessions"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Site is display metadata for the rendered page
type Site struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	OGImage     string `yaml:"og_image"`
	Links       struct {
		Twitter string `yaml:"twitter"`
		GitHub  string `yaml:"github"`
	} `yaml:"links"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 3000
	cfg.Server.Host = "0.0.0.0"
	cfg.Backend.TranscribeURL = "http://localhost:8000/api/transcribe"
	cfg.Site.Name = "SegmentScripter"
	cfg.Site.Description = "Cut the Noise. Transcribe What You Need."
	cfg.Site.URL = "http://localhost:3000"
	cfg.Sessions.MaxIdleMinutes = 60
	cfg.Sessions.SweepIntervalMinutes = 5
	cfg.CORS.AllowOrigins = "*"
	return &cfg
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // best-effort

	cfg := Default()

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("SEGMENT_SCRIPTER_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SEGMENT_SCRIPTER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("SEGMENT_SCRIPTER_HOST")); v != "" {
		c.Server.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("TRANSCRIBE_URL")); v != "" {
		c.Backend.TranscribeURL = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_URL")); v != "" {
		c.Site.URL = v
	}
	return nil
}

// Validate checks the values the server cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Sessions.MaxIdleMinutes <= 0 || c.Sessions.SweepIntervalMinutes <= 0 {
		return fmt.Errorf("invalid sessions config: max_idle_minutes and sweep_interval_minutes must be positive")
	}
	u, err := url.Parse(c.Backend.TranscribeURL)
	if err != nil {
		return fmt.Errorf("invalid backend transcribe_url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid backend transcribe_url %q: absolute URL with host is required", c.Backend.TranscribeURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend transcribe_url %q: http or https is required", c.Backend.TranscribeURL)
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
