// Package config loads the server configuration file
// (~/.sequenceserver.conf by default).
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Methods are the BLAST programs a search may run.
var Methods = []string{"blastn", "blastp", "blastx", "tblastn", "tblastx"}

type File struct {
	Version     int                 `yaml:"version" json:"version"`
	Addr        string              `yaml:"addr,omitempty" json:"addr,omitempty"`
	Bin         string              `yaml:"bin,omitempty" json:"bin,omitempty"`
	DatabaseDir string              `yaml:"database_dir" json:"database_dir"`
	DataDir     string              `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
	NumThreads  int                 `yaml:"num_threads,omitempty" json:"num_threads,omitempty"`
	Options     map[string][]string `yaml:"options,omitempty" json:"options,omitempty"`
}

// DefaultPath is ~/.sequenceserver.conf, overridable through the
// SEQUENCESERVER_CONF environment variable.
func DefaultPath() string {
	if p := os.Getenv("SEQUENCESERVER_CONF"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sequenceserver.conf"
	}
	return filepath.Join(home, ".sequenceserver.conf")
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	return Parse(data, path)
}

func Parse(data []byte, source string) (File, error) {
	var cfg File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	cfg.applyDefaults()
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (cfg *File) applyDefaults() {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":4567"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "."
	}
	if cfg.NumThreads == 0 {
		cfg.NumThreads = 1
	}
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.DatabaseDir) == "" {
		errs = append(errs, "database_dir is required")
	}
	if cfg.NumThreads < 0 {
		errs = append(errs, "num_threads must be >= 0")
	}
	for method := range cfg.Options {
		if !ValidMethod(method) {
			errs = append(errs, fmt.Sprintf("options key %q is not a BLAST method", method))
		}
	}

	return errs
}

// ValidMethod reports whether name is one of the supported BLAST programs.
func ValidMethod(name string) bool {
	for _, m := range Methods {
		if m == name {
			return true
		}
	}
	return false
}
