package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tkanos/gonfig"
)

// DefaultPath is the config file read when no path is given
const DefaultPath = "config.json"

// Configuration holds the settings of the counting server.
// Every field can be overridden by the environment variable in its env tag.
type Configuration struct {
	Port          string `env:"SHOECOUNT_PORT"`
	LogLevel      string `env:"SHOECOUNT_LOG_LEVEL"`
	LogFile       string `env:"SHOECOUNT_LOG_FILE"`
	LogMaxSizeMB  int    `env:"SHOECOUNT_LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `env:"SHOECOUNT_LOG_MAX_BACKUPS"`
	LogCompress   bool   `env:"SHOECOUNT_LOG_COMPRESS"`
	AllowedOrigin string `env:"SHOECOUNT_ALLOWED_ORIGIN"`
	// Debug forces the debug log level, which dumps every domain event
	Debug bool `env:"SHOECOUNT_DEBUG"`
}

// Default returns the configuration used when nothing is set
func Default() Configuration {
	return Configuration{
		Port:          "7777",
		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		AllowedOrigin: "*",
	}
}

// Load reads path, applies environment overrides and fills unset fields with defaults.
// A missing file is not an error; the environment and defaults still apply.
func Load(path string) (Configuration, error) {
	var config Configuration

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return Configuration{}, errors.Wrapf(err, "stat config %s", path)
			}
			path = ""
		}
	}

	if err := gonfig.GetConf(path, &config); err != nil {
		return Configuration{}, errors.Wrapf(err, "load config %q", path)
	}

	config.applyDefaults()
	return config, nil
}

func (c *Configuration) applyDefaults() {
	def := Default()
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = def.LogMaxSizeMB
	}
	if c.LogMaxBackups <= 0 {
		c.LogMaxBackups = def.LogMaxBackups
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = def.AllowedOrigin
	}
}

// Level returns the log level to run at. Debug wins over LogLevel.
func (c Configuration) Level() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// Addr returns the listen address for Port
func (c Configuration) Addr() string {
	return "0.0.0.0:" + c.Port
}
