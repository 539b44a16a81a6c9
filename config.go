package noteshub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v2"
)

// Config is the on-disk configuration of a notes hub build.
type Config struct {
	ContentRoot  string          `yaml:"content_root" toml:"content_root"`
	OutputDir    string          `yaml:"output_dir" toml:"output_dir"`
	Site         SiteConfig      `yaml:"site" toml:"site"`
	ThemeDir     string          `yaml:"theme_dir" toml:"theme_dir"`
	Concurrency  int             `yaml:"concurrency" toml:"concurrency"`
	Converter    ConverterConfig `yaml:"converter" toml:"converter"`
	ExcludeDirs  []string        `yaml:"exclude_dirs" toml:"exclude_dirs"`
	ExcludeFiles []string        `yaml:"exclude_files" toml:"exclude_files"`
	LogLevel     string          `yaml:"log_level" toml:"log_level"`
}

// SiteConfig holds the landing page texts.
type SiteConfig struct {
	Title    string `yaml:"title" toml:"title"`
	Subtitle string `yaml:"subtitle" toml:"subtitle"`
	Footer   string `yaml:"footer" toml:"footer"`
	BaseURL  string `yaml:"base_url" toml:"base_url"`
}

// ConverterConfig selects the document converter.  Command is "auto",
// "none" or the name/path of an executable.
type ConverterConfig struct {
	Command string   `yaml:"command" toml:"command"`
	Args    []string `yaml:"args" toml:"args"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ContentRoot: ".",
		OutputDir:   "dist",
		Site: SiteConfig{
			Title:    DefaultSiteTitle,
			Subtitle: DefaultSiteSubtitle,
		},
		Converter: ConverterConfig{Command: "auto"},
		LogLevel:  "info",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ContentRoot, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Concurrency, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In("", "debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.Site,
		validation.Field(&c.Site.BaseURL, is.URL),
	); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

// NewSite creates (but does not initialise) a Site for this configuration.
// Relative output and theme paths are taken relative to the working directory.
func (c *Config) NewSite() *Site {
	return &Site{
		ContentRoot:      c.ContentRoot,
		OutputDir:        c.OutputDir,
		Title:            c.Site.Title,
		Subtitle:         c.Site.Subtitle,
		Footer:           c.Site.Footer,
		BaseURL:          c.Site.BaseURL,
		ThemeDir:         c.ThemeDir,
		Concurrency:      c.Concurrency,
		ExcludeDirs:      c.ExcludeDirs,
		ExcludeFiles:     c.ExcludeFiles,
		ConverterCommand: c.Converter.Command,
		ConverterArgs:    c.Converter.Args,
	}
}

// LoadConfig loads configuration from a YAML or TOML file (picked by
// extension) on top of the defaults.  Environment variables in the file are
// expanded before parsing.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	expanded := os.ExpandEnv(string(data))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal([]byte(expanded), cfg)
	case ".toml":
		_, err = toml.Decode(expanded, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfig, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigIfExists is LoadConfig, except that a missing file gives the defaults.
func LoadConfigIfExists(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(filename)
}
