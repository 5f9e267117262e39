// Package config loads stylometer settings from a TOML file, an optional .env
// file and STYLOMETER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const envPrefix = "STYLOMETER_"

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type API struct {
	Bind string `toml:"bind"`
	// MaxTextBytes caps the request body of text ingestion endpoints.
	MaxTextBytes int64 `toml:"max_text_bytes"`
}

type Config struct {
	WorkspaceDir string  `toml:"workspace_dir,omitempty"`
	ModelDir     string  `toml:"model_dir"`
	CatalogPath  string  `toml:"catalog_path"`
	Logging      Logging `toml:"logging"`
	API          API     `toml:"api"`
}

// Default returns the settings used when nothing else is configured. Paths are
// relative to the workspace directory until Normalize resolves them.
func Default(workspaceDir string) Config {
	return Config{
		WorkspaceDir: workspaceDir,
		ModelDir:     "models",
		CatalogPath:  "catalog.db",
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		API: API{
			Bind:         "127.0.0.1:7350",
			MaxTextBytes: 8 << 20,
		},
	}
}

// Load builds the configuration. An empty path, or a path that does not exist
// when it was not given explicitly, leaves the defaults in place.
func Load(path string, explicit bool, workspaceDir string) (Config, error) {
	cfg := Default(workspaceDir)

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.WorkspaceDir = getenvString("WORKSPACE", cfg.WorkspaceDir)
	cfg.ModelDir = getenvString("MODEL_DIR", cfg.ModelDir)
	cfg.CatalogPath = getenvString("CATALOG", cfg.CatalogPath)
	cfg.Logging.Level = getenvString("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getenvString("LOG_FORMAT", cfg.Logging.Format)
	cfg.API.Bind = getenvString("API_BIND", cfg.API.Bind)
	cfg.API.MaxTextBytes = int64(getenvInt("API_MAX_TEXT_BYTES", int(cfg.API.MaxTextBytes)))
}

// Normalize trims values and resolves relative paths against the workspace.
func (c *Config) Normalize() {
	c.WorkspaceDir = strings.TrimSpace(c.WorkspaceDir)
	c.ModelDir = resolve(c.WorkspaceDir, c.ModelDir)
	c.CatalogPath = resolve(c.WorkspaceDir, c.CatalogPath)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.API.Bind = strings.TrimSpace(c.API.Bind)
}

func (c Config) Validate() error {
	var problems []string
	if c.ModelDir == "" {
		problems = append(problems, "model_dir must be set")
	}
	if c.CatalogPath == "" {
		problems = append(problems, "catalog_path must be set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}
	if c.API.MaxTextBytes <= 0 {
		problems = append(problems, "api.max_text_bytes must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func resolve(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(envPrefix + name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(envPrefix + name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
