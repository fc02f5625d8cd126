// Package config loads the optional lawgen.yaml settings file.
// Precedence across the program is: flags > environment > file > defaults;
// this package only covers the file layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML settings file. Zero values mean "not set" and are
// ignored by the caller.
type File struct {
	Provider string `yaml:"provider"`
	Host     string `yaml:"host"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`

	OutDir  string `yaml:"out_dir"`
	Workers int    `yaml:"workers"`
	Retries int    `yaml:"retries"`

	Generation Generation `yaml:"generation"`
}

// Generation carries the sampling defaults.
type Generation struct {
	NumCtx        int     `yaml:"num_ctx"`
	Temperature   float64 `yaml:"temperature"`
	TopP          float64 `yaml:"top_p"`
	RepeatPenalty float64 `yaml:"repeat_penalty"`
	Seed          int     `yaml:"seed"`
}

// DefaultPath returns the conventional config file location:
// $XDG_CONFIG_HOME/lawgen/lawgen.yaml (or ~/.config/lawgen/lawgen.yaml).
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lawgen", "lawgen.yaml"), nil
}

// Load reads the settings file at path. A missing file is not an error and
// yields the zero File; a present but unreadable or malformed file is a
// setup error.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return f, nil
}
