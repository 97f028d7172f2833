package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	ScriptPath string // a .hcl file or a directory of them

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
