package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/user/nikto-adapter/pkg/command"
)

const (
	appDirName = ".nikto-adapter"

	// DefaultOutputTemplate names the XML report nikto is told to write.
	DefaultOutputTemplate = "{{.Workspace}}_{{.Plugin}}_output-{{.Token}}.xml"
	DefaultWorkspace      = "default"
)

var ErrInvalidConfig = errors.New("invalid config")

// LogConfig controls the logrus logger built by pkg/logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // empty means stderr only
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Workspace      string    `yaml:"workspace"`
	DataDir        string    `yaml:"data_dir"`
	OutputTemplate string    `yaml:"output_template"`
	Log            LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	dataDir := filepath.Join(os.TempDir(), "nikto-adapter")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, appDirName, "data")
	}
	return &Config{
		Workspace:      DefaultWorkspace,
		DataDir:        dataDir,
		OutputTemplate: DefaultOutputTemplate,
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, appDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadConfig reads the config at path, or the default location when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveConfig writes cfg to path, or the default location when path is empty.
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Workspace == "" {
		c.Workspace = def.Workspace
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.OutputTemplate == "" {
		c.OutputTemplate = def.OutputTemplate
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks the fields that would otherwise fail late, at rewrite or log setup time.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("%w: workspace is empty", ErrInvalidConfig)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is empty", ErrInvalidConfig)
	}
	// Render once so unknown template fields are reported here.
	paths, err := command.NewPathTemplate(c.DataDir, c.OutputTemplate)
	if err == nil {
		_, err = paths.Next(c.Workspace, "Nikto")
	}
	if err != nil {
		return fmt.Errorf("%w: output_template: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Set updates a single field addressed by its yaml key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "workspace":
		c.Workspace = value
	case "data_dir":
		c.DataDir = value
	case "output_template":
		c.OutputTemplate = value
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
	return nil
}
