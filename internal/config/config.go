// Package config loads the tmw workspace configuration.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (TMW_*, OTEL_EXPORTER_OTLP_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. explicit path (--config-path)
//  2. $TMW_CONFIG
//  3. $XDG_CONFIG_HOME/tmw/config.yml
//  4. ~/.config/tmw/config.yml
//
// A missing config file is created with the defaults. Files ending in
// .toml are decoded as TOML, everything else as YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tmwerr "github.com/timvw/tmw/internal/errors"
	"github.com/timvw/tmw/internal/model"
)

// AppName names the config directory.
const AppName = "tmw"

// Config holds all tmw configuration.
type Config struct {
	Workspaces []model.Workspace `yaml:"workspaces" toml:"workspaces"`
	Tmux       TmuxConfig        `yaml:"tmux,omitempty" toml:"tmux,omitempty"`
	Log        LogConfig         `yaml:"log,omitempty" toml:"log,omitempty"`
	OTEL       OTELConfig        `yaml:"otel,omitempty" toml:"otel,omitempty"`

	// ConfigFile is the path of the file that was loaded (or created).
	ConfigFile string `yaml:"-" toml:"-"`
}

// TmuxConfig selects which tmux server to talk to.
type TmuxConfig struct {
	SocketName string `yaml:"socket_name,omitempty" toml:"socket_name,omitempty"` // -L namespace
	Binary     string `yaml:"binary,omitempty" toml:"binary,omitempty"`           // tmux executable
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Verbose bool `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
	JSON    bool `yaml:"json,omitempty" toml:"json,omitempty"`
}

// OTELConfig configures the OTLP exporter.
type OTELConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Headers  string `yaml:"headers,omitempty" toml:"headers,omitempty"` // key=value,key2=value2
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Workspaces: []model.Workspace{},
		Tmux:       TmuxConfig{Binary: "tmux"},
	}
}

// Registry returns the workspace registry described by cfg.
func (c *Config) Registry() model.Registry {
	ws := make([]model.Workspace, len(c.Workspaces))
	copy(ws, c.Workspaces)
	return model.Registry{
		Workspaces: ws,
		Namespace:  c.Tmux.SocketName,
	}
}

// Load reads configuration from path (or the default location when path is
// empty) and applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Defaults()
	cfg.ConfigFile = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := writeDefaults(path); err != nil {
			return nil, tmwerr.ConfigError("Could not create default settings", err)
		}
	case err != nil:
		return nil, tmwerr.ConfigError("Could not load settings", err)
	default:
		fileCfg, err := decode(path, data)
		if err != nil {
			return nil, tmwerr.ConfigError(fmt.Sprintf("Could not load settings from %s", path), err)
		}
		mergeFile(cfg, fileCfg)
	}

	mergeEnv(cfg)
	expandDirectories(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, tmwerr.ConfigError(fmt.Sprintf("Invalid settings in %s", path), err)
	}
	return cfg, nil
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	if v := os.Getenv("TMW_CONFIG"); v != "" {
		return v
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", AppName, "config.yml")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName, "config.yml")
}

// Validate checks the workspace list. Names must be non-empty and must not
// contain ':' or '.', which tmux rewrites in session names.
func (c *Config) Validate() error {
	for i, ws := range c.Workspaces {
		if strings.TrimSpace(ws.Name) == "" {
			return fmt.Errorf("workspace #%d: name is required", i+1)
		}
		if strings.ContainsAny(ws.Name, ":.") {
			return fmt.Errorf("workspace %q: name must not contain ':' or '.'", ws.Name)
		}
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// decode parses data as TOML or YAML depending on the file extension.
func decode(path string, data []byte) (*Config, error) {
	var fileCfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &fileCfg); err != nil {
			return nil, err
		}
		return &fileCfg, nil
	}
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}
	return &fileCfg, nil
}

// writeDefaults creates path (and its directory) holding the default config.
func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	defaults := Defaults()
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(defaults); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(defaults); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// mergeFile applies file values onto cfg. The workspace list replaces the
// default one; scalar settings only when set.
func mergeFile(cfg *Config, file *Config) {
	if file.Workspaces != nil {
		cfg.Workspaces = file.Workspaces
	}
	if file.Tmux.SocketName != "" {
		cfg.Tmux.SocketName = file.Tmux.SocketName
	}
	if file.Tmux.Binary != "" {
		cfg.Tmux.Binary = file.Tmux.Binary
	}
	if file.Log.Verbose {
		cfg.Log.Verbose = true
	}
	if file.Log.JSON {
		cfg.Log.JSON = true
	}
	if file.OTEL.Endpoint != "" {
		cfg.OTEL.Endpoint = file.OTEL.Endpoint
	}
	if file.OTEL.Headers != "" {
		cfg.OTEL.Headers = file.OTEL.Headers
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins over the file.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TMW_SOCKET_NAME"); v != "" {
		cfg.Tmux.SocketName = v
	}
	if v := os.Getenv("TMW_TMUX_BINARY"); v != "" {
		cfg.Tmux.Binary = v
	}
	if v := os.Getenv("TMW_VERBOSE"); v == "true" || v == "1" {
		cfg.Log.Verbose = true
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTEL.Endpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTEL.Headers = v
	}
}

// expandDirectories replaces a leading "~" in workspace directories with
// the user's home directory.
func expandDirectories(cfg *Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for i, ws := range cfg.Workspaces {
		cfg.Workspaces[i].Directory = expandHome(ws.Directory, home)
	}
}

func expandHome(dir, home string) string {
	if dir == "~" {
		return home
	}
	if strings.HasPrefix(dir, "~/") {
		return filepath.Join(home, dir[2:])
	}
	return dir
}
