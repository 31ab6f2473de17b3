package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/volt/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   data directory
//	-l string   log file
//	-v string   log level
//	-m string   dialogue model
//
// Only these flags are parsed (see flagx.FilterArgs), so -c/-config and
// anything else on the command line do not make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-v", "-m"})

	fs := flag.NewFlagSet("volt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Dialogue.Model, "m", cfg.Dialogue.Model, "dialogue model")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
