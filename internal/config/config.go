package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigDir      = ".typeset"
	ConfigFile     = "cfg"
	ConfigFileType = "yaml"

	defaultHTTPAddr  = ":3001"
	defaultRowHeight = 1
	defaultOverscan  = 3
)

type Config struct {
	DBPath     string `yaml:"dbpath"      json:"db_path"`
	UploadsDir string `yaml:"uploads_dir" json:"uploads_dir"`
	ExportDir  string `yaml:"export_dir"  json:"export_dir"`
	HTTPAddr   string `yaml:"http_addr"   json:"http_addr"`
	Editor     string `yaml:"editor"      json:"editor"`

	// Outline view layout. RowHeight is the uniform extent of one outline
	// row in terminal lines; Overscan is the number of extra rows rendered
	// beyond each edge of the visible range.
	RowHeight int `yaml:"row_height" json:"row_height"`
	Overscan  int `yaml:"overscan"   json:"overscan"`

	home string `yaml:"-" json:"-"`
}

func GetConfigPath(home string) string {
	return filepath.Join(home, ConfigDir, ConfigFile+"."+ConfigFileType)
}

// EnsureExists creates the config directory and an empty config file on
// first run.
func EnsureExists(home string) error {
	dir := filepath.Join(home, ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := GetConfigPath(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		return file.Close()
	}

	return nil
}

// Load reads the config file under home, fills in defaults for unset
// fields, and mirrors the result into viper for flag overrides.
func Load(home string) (*Config, error) {
	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.syncViper()

	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	base := filepath.Join(cfg.home, ConfigDir)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(base, "typeset.db")
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = filepath.Join(base, "uploads")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(base, "exports")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.RowHeight == 0 {
		cfg.RowHeight = defaultRowHeight
	}
	if cfg.Overscan == 0 {
		cfg.Overscan = defaultOverscan
	}
}

func (cfg *Config) validate() error {
	if cfg.RowHeight < 1 {
		return fmt.Errorf("row_height must be at least 1, got %d", cfg.RowHeight)
	}
	if cfg.Overscan < 0 {
		return fmt.Errorf("overscan cannot be negative, got %d", cfg.Overscan)
	}
	return nil
}

func (cfg *Config) syncViper() {
	viper.Set("dbpath", cfg.DBPath)
	viper.Set("uploads_dir", cfg.UploadsDir)
	viper.Set("export_dir", cfg.ExportDir)
	viper.Set("http_addr", cfg.HTTPAddr)
	viper.Set("editor", cfg.Editor)
	viper.Set("row_height", cfg.RowHeight)
	viper.Set("overscan", cfg.Overscan)
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	path := GetConfigPath(cfg.home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	cfg.syncViper()

	return os.WriteFile(path, data, 0o644)
}
