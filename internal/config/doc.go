// Package config loads runtime configuration for the volt console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. A .env file in the working directory and the process environment
//     (see parseEnv); real environment variables win over .env entries.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding database.txt and reports.txt
//	-l string   log file path
//	-v string   log level (debug, info, warn, error)
//	-m string   dialogue model name
//
// Environment
//
//	GEMINI_API_KEY   credential for the dialogue engine
//	VOLT_MODEL       dialogue model name
//	VOLT_DATA_DIR    data directory
//	VOLT_LOG_FILE    log file path
//	VOLT_LOG_LEVEL   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "6s" or
// integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/volt",
//	  "log_level": "debug",
//	  "lock_timeout": "5s",
//	  "dialogue": {"model": "gemini-1.5-pro", "timeout": "60s"},
//	  "minigame": {"max_start_delay": "6s"}
//	}
package config
