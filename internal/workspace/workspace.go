package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"stylometer/internal/config"
)

const BaseDirName = "Stylometer"

// SettingsPath is the configuration file EnsureAt seeds inside a workspace.
func SettingsPath(base string) string {
	return filepath.Join(base, "configs", "settings.toml")
}

func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

func EnsureDefault() (string, error) {
	root, err := DefaultRoot()
	if err != nil {
		return "", err
	}
	return EnsureAt(root)
}

// EnsureAt creates the workspace layout under base and writes default
// settings when none exist yet.
func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "models"),
		filepath.Join(base, "reports"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	settingsPath := SettingsPath(base)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaults := config.Default("")
		raw, marshalErr := toml.Marshal(defaults)
		if marshalErr != nil {
			return "", fmt.Errorf("marshal settings: %w", marshalErr)
		}
		if writeErr := os.WriteFile(settingsPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write settings: %w", writeErr)
		}
	}

	return base, nil
}
