package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "jobtrack/internal/platform/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultConfigFile = "jobtrack.yaml"
)

type Dashboard struct {
	HeatmapDays        int `yaml:"heatmap_days"`
	TopCompanies       int `yaml:"top_companies"`
	TopTerms           int `yaml:"top_terms"`
	TermNgramMin       int `yaml:"term_ngram_min"`
	TermNgramMax       int `yaml:"term_ngram_max"`
	MovingAverageWeeks int `yaml:"moving_average_weeks"`
	RecentDays         int `yaml:"recent_days"`
}

type Config struct {
	DataDir  string `yaml:"data_dir"`
	DBDriver string `yaml:"db_driver"`
	DBPath   string `yaml:"db_path"`
	DBURL    string `yaml:"db_url"`
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	ListLimit      int               `yaml:"list_limit"`
	ExtraStopwords []string          `yaml:"extra_stopwords"`
	StatusAliases  map[string]string `yaml:"status_aliases"`
	Dashboard      Dashboard         `yaml:"dashboard"`

	Location *time.Location `yaml:"-"` // computed from Timezone
	Source   string         `yaml:"-"` // file the config was read from, empty when none
}

// Load reads path (or JOBTRACK_CONFIG, or ./jobtrack.yaml) when present,
// applies environment overrides and defaults, then validates the result.
// A missing file is not an error unless it was named explicitly.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		if envPath := os.Getenv("JOBTRACK_CONFIG"); envPath != "" {
			path = envPath
			explicit = true
		} else {
			path = defaultConfigFile
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Source = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	envOverride(&cfg.DataDir, "JOBTRACK_DATA_DIR")
	envOverride(&cfg.DBDriver, "JOBTRACK_DB_DRIVER")
	envOverride(&cfg.DBPath, "JOBTRACK_DB_PATH")
	envOverride(&cfg.DBURL, "DATABASE_URL")
	envOverride(&cfg.DBURL, "JOBTRACK_DB_URL")
	envOverride(&cfg.Timezone, "JOBTRACK_TIMEZONE")
	envOverride(&cfg.LogLevel, "JOBTRACK_LOG_LEVEL")
	envOverrideBool(&cfg.LogJSON, "JOBTRACK_LOG_JSON")
	if err := envOverrideInt(&cfg.ListLimit, "JOBTRACK_LIST_LIMIT"); err != nil {
		return Config{}, err
	}
	if err := envOverrideInt(&cfg.Dashboard.HeatmapDays, "JOBTRACK_HEATMAP_DAYS"); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	cfg.Location = time.Local
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = ".jobtrack"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = DriverSQLite
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "job_apps.db")
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.ListLimit == 0 {
		cfg.ListLimit = 100
	}
	d := &cfg.Dashboard
	if d.HeatmapDays == 0 {
		d.HeatmapDays = 175
	}
	if d.TopCompanies == 0 {
		d.TopCompanies = 15
	}
	if d.TopTerms == 0 {
		d.TopTerms = 25
	}
	if d.TermNgramMin == 0 {
		d.TermNgramMin = 2
	}
	if d.TermNgramMax == 0 {
		d.TermNgramMax = 3
	}
	if d.MovingAverageWeeks == 0 {
		d.MovingAverageWeeks = 4
	}
	if d.RecentDays == 0 {
		d.RecentDays = 7
	}
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DBURL) == "" {
			return fmt.Errorf("%w: db_url is required when db_driver=postgres (or set JOBTRACK_DB_URL / DATABASE_URL)", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: db_driver must be %q or %q, got %q", apperrors.ErrInvalidInput, DriverSQLite, DriverPostgres, c.DBDriver)
	}

	if strings.EqualFold(c.Timezone, "Local") {
		c.Location = time.Local
	} else {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("%w: timezone %q: %v", apperrors.ErrInvalidInput, c.Timezone, err)
		}
		c.Location = loc
	}

	if c.ListLimit < 1 {
		return fmt.Errorf("%w: list_limit must be >= 1, got %d", apperrors.ErrInvalidInput, c.ListLimit)
	}
	d := c.Dashboard
	positive := map[string]int{
		"dashboard.heatmap_days":         d.HeatmapDays,
		"dashboard.top_companies":        d.TopCompanies,
		"dashboard.top_terms":            d.TopTerms,
		"dashboard.term_ngram_min":       d.TermNgramMin,
		"dashboard.moving_average_weeks": d.MovingAverageWeeks,
		"dashboard.recent_days":          d.RecentDays,
	}
	for name, val := range positive {
		if val < 1 {
			return fmt.Errorf("%w: %s must be >= 1, got %d", apperrors.ErrInvalidInput, name, val)
		}
	}
	if d.TermNgramMax < d.TermNgramMin {
		return fmt.Errorf("%w: dashboard.term_ngram_max (%d) must be >= term_ngram_min (%d)", apperrors.ErrInvalidInput, d.TermNgramMax, d.TermNgramMin)
	}
	return nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %s %q: %v", apperrors.ErrInvalidInput, envKey, val, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = strings.EqualFold(val, "true") || val == "1"
	}
}
