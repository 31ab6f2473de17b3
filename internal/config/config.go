package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the volt console.
type Config struct {
	DataDir     string
	UsersFile   string
	ReportsFile string
	LogFile     string
	LogLevel    string
	LockTimeout time.Duration
	WrapWidth   int
	Dialogue    DialogueConfig
	Minigame    MinigameConfig
}

// DialogueConfig configures the generative dialogue engine.
type DialogueConfig struct {
	APIKey            string
	Model             string
	Endpoint          string
	Temperature       float64
	MaxOutputTokens   int
	Timeout           time.Duration
	SystemInstruction string
}

// MinigameConfig configures the reaction-time minigame.
type MinigameConfig struct {
	MaxStartDelay time.Duration
}

const defaultSystemInstruction = `You are Volt, a friendly assistant working for the E-WAY platform. ` +
	`E-WAY is a website that aims to give Formula E (the FIA single-seater championship for fully electric cars) ` +
	`more visibility by gathering news, trivia, stories, statistics and calendars about the series. ` +
	`Your role is to support users with information about the sport. If you do not have the requested content, ` +
	`say so and recommend other sources, preferably the E-WAY platform. Use simple language. ` +
	`If the user asks for information unrelated to Formula E, politely explain that it is outside the platform's ` +
	`scope and do not answer it.`

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "."
	c.UsersFile = "database.txt"
	c.ReportsFile = "reports.txt"
	c.LogFile = "volt.log"
	c.LogLevel = "info"
	c.LockTimeout = 5 * time.Second
	c.WrapWidth = 50
	c.Dialogue = DialogueConfig{
		Model:             "gemini-1.5-pro",
		Endpoint:          "https://generativelanguage.googleapis.com/v1beta",
		Temperature:       0,
		MaxOutputTokens:   2048,
		Timeout:           60 * time.Second,
		SystemInstruction: defaultSystemInstruction,
	}
	c.Minigame = MinigameConfig{MaxStartDelay: 6 * time.Second}
}

// UsersPath is the location of the credential store file.
func (c *Config) UsersPath() string { return c.resolve(c.UsersFile) }

// ReportsPath is the location of the report log file.
func (c *Config) ReportsPath() string { return c.resolve(c.ReportsFile) }

// LogPath is the location of the diagnostics log.
func (c *Config) LogPath() string { return c.resolve(c.LogFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args are the process arguments without
// the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}

	environ, err := environment(".env", os.Environ())
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WrapWidth <= 0 {
		return fmt.Errorf("wrap width must be positive, got %d", c.WrapWidth)
	}
	if c.Minigame.MaxStartDelay < 0 {
		return fmt.Errorf("minigame start delay must not be negative")
	}
	return nil
}
