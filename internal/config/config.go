// Package config resolves where tries live and how the CLI behaves, merging
// the YAML config file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfig  = "TRY_CONFIG"
	EnvPath    = "TRY_PATH"
	EnvLogFile = "TRY_LOG_FILE"
	EnvNoColor = "NO_COLOR"
)

// DefaultRoot is used when nothing else names the tries directory.
const DefaultRoot = "~/src/tries"

// ConfigError reports a config file or root directory that cannot be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	ErrRootNotAbsolute  = errors.New("tries path must be absolute")
	ErrRootNotDirectory = errors.New("tries path is not a directory")
)

// LogConfig is the log section of the config file.
type LogConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// File mirrors config.yaml. Pointer fields distinguish "unset" from the
// zero value.
type File struct {
	Path   string    `yaml:"path"`
	Colors *bool     `yaml:"colors"`
	Log    LogConfig `yaml:"log"`
}

// Overrides carries values set on the command line. Empty strings and nil
// pointers leave lower layers untouched.
type Overrides struct {
	ConfigPath string
	Root       string
	NoColors   bool
	LogLevel   string
	LogFile    string
}

// Config is the fully resolved configuration.
type Config struct {
	Root   string
	Colors bool
	Log    LogConfig

	// Source is the config file that was read, or "" when none existed.
	Source string
}

// Loader resolves configuration. Its fields default to the process
// environment and can be replaced in tests.
type Loader struct {
	Getenv  func(string) string
	HomeDir func() (string, error)
}

// Load resolves configuration from the process environment.
func Load(o Overrides) (*Config, error) {
	return (&Loader{}).Load(o)
}

// Load applies defaults, then the file, then the environment, then o.
func (l *Loader) Load(o Overrides) (*Config, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	home := l.HomeDir
	if home == nil {
		home = os.UserHomeDir
	}

	cfg := &Config{Root: DefaultRoot, Colors: true}

	path := o.ConfigPath
	if path == "" {
		path = getenv(EnvConfig)
	}
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath(getenv, home)
	}
	if path != "" {
		path = ExpandHome(path, home)
		file, err := readFile(path)
		switch {
		case err == nil:
			cfg.Source = path
			applyFile(cfg, file)
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, &ConfigError{Path: path, Err: err}
		}
	}

	if v := getenv(EnvPath); v != "" {
		cfg.Root = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if getenv(EnvNoColor) != "" {
		cfg.Colors = false
	}

	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.NoColors {
		cfg.Colors = false
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}

	root, err := ResolveRoot(cfg.Root, home)
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	if cfg.Log.File != "" {
		cfg.Log.File = ExpandHome(cfg.Log.File, home)
	}
	return cfg, nil
}

func defaultConfigPath(getenv func(string) string, home func() (string, error)) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "try", "config.yaml")
	}
	dir, err := home()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ".config", "try", "config.yaml")
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &file, nil
}

func applyFile(cfg *Config, file *File) {
	if file.Path != "" {
		cfg.Root = file.Path
	}
	if file.Colors != nil {
		cfg.Colors = *file.Colors
	}
	if file.Log.Level != "" {
		cfg.Log.Level = file.Log.Level
	}
	if file.Log.File != "" {
		cfg.Log.File = file.Log.File
	}
	if file.Log.Format != "" {
		cfg.Log.Format = file.Log.Format
	}
}

// ResolveRoot expands ~ and checks the tries root. A root that does not
// exist yet is accepted; the first create makes it.
func ResolveRoot(root string, home func() (string, error)) (string, error) {
	expanded := ExpandHome(strings.TrimSpace(root), home)
	if !filepath.IsAbs(expanded) {
		return "", &ConfigError{Path: root, Err: ErrRootNotAbsolute}
	}
	expanded = filepath.Clean(expanded)

	info, err := os.Stat(expanded)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", &ConfigError{Path: expanded, Err: ErrRootNotDirectory}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return "", &ConfigError{Path: expanded, Err: err}
	}
	return expanded, nil
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// forms, like "~user", are returned unchanged.
func ExpandHome(path string, home func() (string, error)) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if home == nil {
		home = os.UserHomeDir
	}

	if len(path) == 1 {
		if dir, err := home(); err == nil {
			return dir
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	dir, err := home()
	if err != nil {
		return path
	}
	return filepath.Join(dir, path[2:])
}
