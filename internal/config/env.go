package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig lists the variables volt reads from the environment.
type envConfig struct {
	APIKey   string `env:"GEMINI_API_KEY"`
	Model    string `env:"VOLT_MODEL"`
	DataDir  string `env:"VOLT_DATA_DIR"`
	LogFile  string `env:"VOLT_LOG_FILE"`
	LogLevel string `env:"VOLT_LOG_LEVEL"`
}

// environment merges the optional dotenv file with the process environment.
// Process variables take precedence; a missing dotenv file is not an error.
func environment(dotenvPath string, osEnv []string) (map[string]string, error) {
	merged, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		merged = map[string]string{}
	}
	for k, v := range env.ToMap(osEnv) {
		merged[k] = v
	}
	return merged, nil
}

// parseEnv overlays cfg with the variables present in environ.
func parseEnv(cfg *Config, environ map[string]string) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&cfg.Dialogue.APIKey, ec.APIKey)
	setString(&cfg.Dialogue.Model, ec.Model)
	setString(&cfg.DataDir, ec.DataDir)
	setString(&cfg.LogFile, ec.LogFile)
	setString(&cfg.LogLevel, ec.LogLevel)
	return nil
}
