package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/claude/repcoach/internal/endurance"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Plan      PlanConfig      `yaml:"plan"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ClassifyConfig points at the external exercise-classification service.
// An empty URL disables classification.
type ClassifyConfig struct {
	URL string `yaml:"url"`
}

// PlanConfig overrides the endurance periodization constants. Zero values
// fall back to the built-in defaults; the defaults are deliberate
// coaching choices, not tunables to casually change.
type PlanConfig struct {
	BasePhaseEnd        float64 `yaml:"base_phase_end"`
	BuildPhaseEnd       float64 `yaml:"build_phase_end"`
	WeeklyRamp          float64 `yaml:"weekly_ramp"`
	DeloadFactor        float64 `yaml:"deload_factor"`
	DeloadEveryWeeks    int     `yaml:"deload_every_weeks"`
	MinWeeks            int     `yaml:"min_weeks"`
	MaxWeeks            int     `yaml:"max_weeks"`
	TaperDurationFactor float64 `yaml:"taper_duration_factor"`
	TaperRPEDrop        float64 `yaml:"taper_rpe_drop"`
}

// Tuning merges the configured overrides onto the default periodization
// constants.
func (p PlanConfig) Tuning() endurance.Tuning {
	t := endurance.DefaultTuning()
	if p.BasePhaseEnd > 0 {
		t.BasePhaseEnd = p.BasePhaseEnd
	}
	if p.BuildPhaseEnd > 0 {
		t.BuildPhaseEnd = p.BuildPhaseEnd
	}
	if p.WeeklyRamp > 0 {
		t.WeeklyRamp = p.WeeklyRamp
	}
	if p.DeloadFactor > 0 {
		t.DeloadFactor = p.DeloadFactor
	}
	if p.DeloadEveryWeeks > 0 {
		t.DeloadEveryWeeks = p.DeloadEveryWeeks
	}
	if p.MinWeeks > 0 {
		t.MinWeeks = p.MinWeeks
	}
	if p.MaxWeeks > 0 {
		t.MaxWeeks = p.MaxWeeks
	}
	if p.TaperDurationFactor > 0 {
		t.TaperDurationFactor = p.TaperDurationFactor
	}
	if p.TaperRPEDrop > 0 {
		t.TaperRPEDrop = p.TaperRPEDrop
	}
	return t
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix REPCOACH_ and underscore-separated
// paths:
//
//	REPCOACH_SERVER_HOST, REPCOACH_SERVER_PORT,
//	REPCOACH_DB_HOST, REPCOACH_DB_PORT, REPCOACH_DB_NAME,
//	REPCOACH_DB_USER, REPCOACH_DB_PASSWORD, REPCOACH_DB_SSLMODE,
//	REPCOACH_AUTH_API_KEY, REPCOACH_CLASSIFY_URL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPCOACH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPCOACH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPCOACH_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REPCOACH_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REPCOACH_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REPCOACH_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("REPCOACH_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REPCOACH_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REPCOACH_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("REPCOACH_CLASSIFY_URL"); v != "" {
		cfg.Classify.URL = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
