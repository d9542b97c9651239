// Package config loads the scraper configuration: the department table from
// YAML (or the built-in defaults) and deployment settings from the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"timetable-go/internal/parser"
	"timetable-go/internal/section"
)

// Config is the top-level scraper configuration.
type Config struct {
	Departments []Department `yaml:"departments"`
	OutputDir   string       `yaml:"output_dir"`
	RegistryDir string       `yaml:"registry_dir"`
	Fetch       FetchConfig  `yaml:"fetch"`
	Workers     int          `yaml:"workers"`

	// deployment settings, overridable from the environment
	MongoURI      string `yaml:"mongodb_uri"`
	MongoDatabase string `yaml:"mongodb_database"`
	ArchivePath   string `yaml:"archive_path"`
	MetricsAddr   string `yaml:"metrics_addr"`
}

// FetchConfig controls how source pages are downloaded.
type FetchConfig struct {
	UserAgent       string        `yaml:"user_agent"`
	Timeout         time.Duration `yaml:"timeout"`
	RobotsTimeout   time.Duration `yaml:"robots_timeout"`
	RequestsPerHost float64       `yaml:"requests_per_host"`
	MaxBytes        int64         `yaml:"max_bytes"`
}

// Department describes how one department publishes its timetable. All
// department differences live here rather than in code.
type Department struct {
	Name           string            `yaml:"name"`
	URL            string            `yaml:"url"`
	Strategy       parser.Strategy   `yaml:"strategy"`
	AnchorSelector string            `yaml:"anchor_selector"`
	SectionPattern string            `yaml:"section_pattern"` // empty: labels are used as-is
	SectionFormat  string            `yaml:"section_format"`
	PeriodLabels   map[string]string `yaml:"period_labels"`
	ClassedCells   bool              `yaml:"classed_cells"`
	SkipFreeGroups bool              `yaml:"skip_free_groups"` // keep all-free groups out of the registry
}

// Load reads a .env file if present, then the YAML file at path (the
// built-in department table when path is empty), then environment
// overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if len(cfg.Departments) == 0 {
		cfg.Departments = Builtin()
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.MongoURI, "MONGODB_URI")
	set(&c.MongoDatabase, "MONGODB_DATABASE")
	set(&c.ArchivePath, "TIMETABLE_ARCHIVE")
	set(&c.MetricsAddr, "METRICS_ADDR")
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.RegistryDir == "" {
		c.RegistryDir = filepath.Join("web", "group")
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "TimetableScraper/1.0"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 15 * time.Second
	}
	if c.Fetch.RobotsTimeout <= 0 {
		c.Fetch.RobotsTimeout = 5 * time.Second
	}
	if c.Fetch.RequestsPerHost <= 0 {
		c.Fetch.RequestsPerHost = 1
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = 8 << 20
	}
	for i := range c.Departments {
		d := &c.Departments[i]
		d.Name = strings.ToLower(strings.TrimSpace(d.Name))
		if d.Strategy == parser.StrategyAnchors && d.AnchorSelector == "" {
			d.AnchorSelector = parser.DefaultAnchorSelector
		}
		if d.SectionPattern != "" && d.SectionFormat == "" {
			d.SectionFormat = section.DefaultFormat
		}
	}
}

// Validate checks every department record.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for _, d := range c.Departments {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return fmt.Errorf("department %q listed twice", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Validate checks the record and compiles its section pattern.
func (d Department) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("department without a name")
	}
	if d.URL == "" {
		return fmt.Errorf("department %s: missing url", d.Name)
	}
	if !d.Strategy.Valid() {
		return fmt.Errorf("department %s: unknown strategy %q", d.Name, d.Strategy)
	}
	if _, err := d.Pattern(); err != nil {
		return fmt.Errorf("department %s: %w", d.Name, err)
	}
	return nil
}

// Pattern compiles the section pattern; nil when the department does not
// expand labels.
func (d Department) Pattern() (*section.Pattern, error) {
	if d.SectionPattern == "" {
		return nil, nil
	}
	format := d.SectionFormat
	if format == "" {
		format = section.DefaultFormat
	}
	return section.Compile(d.SectionPattern, format)
}

// Find returns the department called name.
func (c *Config) Find(name string) (Department, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range c.Departments {
		if d.Name == name {
			return d, true
		}
	}
	return Department{}, false
}

// OutputPath is where the department's published document is written.
func (c *Config) OutputPath(d Department) string {
	return filepath.Join(c.OutputDir, "timetable_"+d.Name+".json")
}

// RegistryPath is the department's group registry file.
func (c *Config) RegistryPath(d Department) string {
	return filepath.Join(c.RegistryDir, d.Name+".json")
}
