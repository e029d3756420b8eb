// Package config loads the todopager configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/goccy/go-yaml"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

const (
	defaultRetryMax = 3
	defaultTimeout  = 15 * time.Second
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// APIURL is the root of the todos API; tasks live at <APIURL>/todos.
	APIURL string `yaml:"api_url"`
	// ItemsPerPage overrides the layout page size when set.
	ItemsPerPage int `yaml:"items_per_page"`
	// Compact selects the narrow layout: more items per page and no sibling
	// pages around the current one.
	Compact bool `yaml:"compact"`
	// RemotePaging asks the API for one page at a time instead of loading
	// the whole list.
	RemotePaging bool          `yaml:"remote_paging"`
	RetryMax     int           `yaml:"retry_max"`
	Timeout      time.Duration `yaml:"timeout"`
	// Location is the IANA zone used to decide which day a task belongs to.
	// Empty means the local zone.
	Location string `yaml:"location"`
}

func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.APIURL == "" {
		c.APIURL = todos.DefaultBaseURL
	}
	if c.RetryMax == 0 {
		c.RetryMax = defaultRetryMax
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url: %q is not an http(s) url", c.APIURL))
	}
	if c.ItemsPerPage < 0 || c.ItemsPerPage > todopager.MaxItemsPerPage {
		errs = append(errs, fmt.Errorf("items_per_page: must be within 0..%d", todopager.MaxItemsPerPage))
	}
	if c.RetryMax < -1 {
		errs = append(errs, errors.New("retry_max: must be -1 (no retries) or more"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout: must not be negative"))
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		errs = append(errs, fmt.Errorf("location: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// PageLimits returns the page size and sibling count for the configured
// layout.
func (c *Config) PageLimits() (itemsPerPage, siblingCount int) {
	itemsPerPage, siblingCount = todopager.LayoutLimits(c.Compact)
	if c.ItemsPerPage > 0 {
		itemsPerPage = c.ItemsPerPage
	}

	return itemsPerPage, siblingCount
}

// LoadLocation resolves Location. Invalid names fall back to time.Local.
func (c *Config) LoadLocation() *time.Location {
	if c.Location == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}

	return loc
}

// ClientOptions returns the todos client settings.
func (c *Config) ClientOptions(logger *slog.Logger) todos.ClientOptions {
	return todos.ClientOptions{
		BaseURL:  c.APIURL,
		RetryMax: c.RetryMax,
		Timeout:  c.Timeout,
		Logger:   logger,
	}
}

func (c *Config) MarshalYAML() ([]byte, error) {
	b := &bytes.Buffer{}
	enc := yaml.NewEncoder(b, yaml.Indent(2))
	err := enc.Encode(*c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// Write stores c at path unless a file already exists there.
func (c *Config) Write(path string) error {
	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		if err == nil && pathInfo.Mode().IsRegular() {
			return nil // Config already exists.
		}
		if pathInfo.IsDir() {
			return fmt.Errorf("%s: path is a directory", path)
		}

		return fmt.Errorf("%s: unknown file state", path)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	err = os.WriteFile(path, b, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// LoadBytes parses a config document. Unknown keys are rejected.
func LoadBytes(data []byte) (*Config, error) {
	c := &Config{}

	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
		err := dec.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, yaml.FormatError(err, false, true))
		}
	}

	c.EnsureDefaults()

	err := c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from flags.
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", slog.String("path", path))
		return NewConfig(), nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return LoadBytes(data)
}

func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "todopager", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "todopager", "config.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "todopager", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpConfig
}
