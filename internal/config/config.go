// Package config loads optional YAML configuration files and overlays them
// onto a client config.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ramkansal/pagemeta/internal/client"
	"github.com/ramkansal/pagemeta/pkg/plugin"
)

var (
	ErrInvalidTimeout = errors.New("timeout must be positive")
	ErrInvalidRetry   = errors.New("retry must not be negative")
	ErrInvalidFormat  = errors.New("output format must be json or text")
	ErrInvalidFetcher = errors.New("fetcher must be http or browser")
)

// Config mirrors the YAML file layout.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
}

type FetchConfig struct {
	Fetcher         string   `yaml:"fetcher"`
	TimeoutSec      int      `yaml:"timeout_sec"`
	Retry           *int     `yaml:"retry"`
	UserAgent       string   `yaml:"user_agent"`
	Proxy           string   `yaml:"proxy"`
	MaxResponseSize int      `yaml:"max_response_size"`
	Headers         []string `yaml:"headers"`
	Parallelism     int      `yaml:"parallelism"`
}

type SourcesConfig struct {
	OpenGraph   *bool `yaml:"open_graph"`
	TwitterCard *bool `yaml:"twitter_card"`
	TouchIcon   *bool `yaml:"touch_icon"`
	Favicon     *bool `yaml:"favicon"`
	AllImages   *bool `yaml:"all_images"`
}

type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Fetch.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}
	if c.Fetch.Retry != nil && *c.Fetch.Retry < 0 {
		return ErrInvalidRetry
	}
	switch c.Fetch.Fetcher {
	case "", string(client.FetcherHTTP), string(client.FetcherBrowser):
	default:
		return ErrInvalidFetcher
	}
	switch c.Output.Format {
	case "", "json", "text":
	default:
		return ErrInvalidFormat
	}
	return nil
}

// Apply overlays the file's values onto cfg. Only values present in the file
// are applied, so the precedence stays defaults < file < flags.
func (c *Config) Apply(cfg *client.Config) {
	if c.Fetch.Fetcher != "" {
		cfg.FetcherMode = client.FetcherMode(c.Fetch.Fetcher)
	}
	if c.Fetch.TimeoutSec > 0 {
		cfg.Timeout = time.Duration(c.Fetch.TimeoutSec) * time.Second
	}
	if c.Fetch.Retry != nil {
		cfg.Retry = *c.Fetch.Retry
	}
	if c.Fetch.UserAgent != "" {
		cfg.UserAgent = c.Fetch.UserAgent
	}
	if c.Fetch.Proxy != "" {
		cfg.Proxy = c.Fetch.Proxy
	}
	if c.Fetch.MaxResponseSize > 0 {
		cfg.MaxResponseSize = c.Fetch.MaxResponseSize
	}
	if len(c.Fetch.Headers) > 0 {
		cfg.CustomHeaders = append(cfg.CustomHeaders, c.Fetch.Headers...)
	}
	if c.Fetch.Parallelism > 0 {
		cfg.Parallelism = c.Fetch.Parallelism
	}

	cfg.Extract = plugin.Options{
		OpenGraph:   c.Sources.OpenGraph,
		TwitterCard: c.Sources.TwitterCard,
		TouchIcon:   c.Sources.TouchIcon,
		Favicon:     c.Sources.Favicon,
		AllImages:   c.Sources.AllImages,
	}.Merge(cfg.Extract)

	if c.Output.Path != "" {
		cfg.SaveOutput = true
		cfg.OutputPath = c.Output.Path
	}
	if c.Output.Format != "" {
		cfg.OutputFormat = c.Output.Format
	}
}
