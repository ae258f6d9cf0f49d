package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/backlogbutler/backlogbutler/internal/options"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "BACKLOG_BUTLER_CONFIG"

// File holds settings loaded from ~/.backlogbutler/config.yaml.
type File struct {
	Org     string `yaml:"org"`
	Project string `yaml:"project"`
	PAT     string `yaml:"pat"`
}

// DefaultPath returns the config file path, honouring BACKLOG_BUTLER_CONFIG.
func DefaultPath(getenv options.LookupFunc) string {
	if getenv != nil {
		if p := getenv(EnvConfigPath); p != "" {
			return p
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".backlogbutler", "config.yaml")
}

// Load reads a YAML config file. A missing file yields an empty File.
func Load(path string) (*File, error) {
	cfg := &File{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // No config file, not an error
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Lookup exposes the file under the ADO_* variable names.
func (f *File) Lookup() options.LookupFunc {
	return func(key string) string {
		if f == nil {
			return ""
		}
		switch key {
		case options.EnvOrg:
			return f.Org
		case options.EnvProject:
			return f.Project
		case options.EnvPAT:
			return f.PAT
		}
		return ""
	}
}

// ReadDotenv parses a .env file without touching the process environment.
// A missing file yields an empty map.
func ReadDotenv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read dotenv %s: %w", path, err)
	}
	return vals, nil
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) options.LookupFunc {
	return func(key string) string { return m[key] }
}

// Chain returns the first non-empty value across lookups, in order.
// Nil lookups are skipped.
func Chain(lookups ...options.LookupFunc) options.LookupFunc {
	return func(key string) string {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v := l(key); v != "" {
				return v
			}
		}
		return ""
	}
}
