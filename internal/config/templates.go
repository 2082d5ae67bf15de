package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Template renders a starting msgc.toml for schema.
func Template(schemaPath string) (string, error) {
	cfg := Default()
	cfg.Schema = schemaPath
	cfg.Normalize()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("config template: %w", err)
	}
	return "# msgc configuration\n" + string(data), nil
}

func WriteTemplate(path, schemaPath string, overwrite bool) error {
	template, err := Template(schemaPath)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o644)
}
