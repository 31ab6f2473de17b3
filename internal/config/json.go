package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/volt/internal/flagx"
	"github.com/dmitrijs2005/volt/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent or
// zero-valued fields leave the corresponding Config value untouched.
type JsonConfig struct {
	DataDir     string         `json:"data_dir"`
	UsersFile   string         `json:"users_file"`
	ReportsFile string         `json:"reports_file"`
	LogFile     string         `json:"log_file"`
	LogLevel    string         `json:"log_level"`
	LockTimeout timex.Duration `json:"lock_timeout"`
	WrapWidth   int            `json:"wrap_width"`
	Dialogue    struct {
		Model             string         `json:"model"`
		Endpoint          string         `json:"endpoint"`
		Temperature       *float64       `json:"temperature"`
		MaxOutputTokens   int            `json:"max_output_tokens"`
		Timeout           timex.Duration `json:"timeout"`
		SystemInstruction string         `json:"system_instruction"`
	} `json:"dialogue"`
	Minigame struct {
		MaxStartDelay *timex.Duration `json:"max_start_delay"`
	} `json:"minigame"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.UsersFile, jc.UsersFile)
	setString(&cfg.ReportsFile, jc.ReportsFile)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.LockTimeout.Duration > 0 {
		cfg.LockTimeout = jc.LockTimeout.Duration
	}
	if jc.WrapWidth != 0 {
		cfg.WrapWidth = jc.WrapWidth
	}

	setString(&cfg.Dialogue.Model, jc.Dialogue.Model)
	setString(&cfg.Dialogue.Endpoint, jc.Dialogue.Endpoint)
	setString(&cfg.Dialogue.SystemInstruction, jc.Dialogue.SystemInstruction)
	if jc.Dialogue.Temperature != nil {
		cfg.Dialogue.Temperature = *jc.Dialogue.Temperature
	}
	if jc.Dialogue.MaxOutputTokens > 0 {
		cfg.Dialogue.MaxOutputTokens = jc.Dialogue.MaxOutputTokens
	}
	if jc.Dialogue.Timeout.Duration > 0 {
		cfg.Dialogue.Timeout = jc.Dialogue.Timeout.Duration
	}

	if jc.Minigame.MaxStartDelay != nil {
		cfg.Minigame.MaxStartDelay = jc.Minigame.MaxStartDelay.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
