package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultWorkdir    = "."
	DefaultPrompt     = "mlinql> "
	DefaultHistoryMax = 2000
	DefaultOutput     = "table"
	DefaultLogLevel   = "warn"

	defaultConfigFile  = "mlinql.yaml"
	defaultHistoryFile = ".mlinql_history"
)

// OutputFormats are the accepted values of the output key.
var OutputFormats = []string{"table", "markdown", "csv", "json"}

type MlinqlConfig struct {
	// Workdir holds the <database>.json catalog documents.
	Workdir string `mapstructure:"workdir"`

	Shell struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
		HistoryMax  int    `mapstructure:"history_max"`
		Output      string `mapstructure:"output"`
	} `mapstructure:"shell"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig resolves configuration with the precedence
// flags > MLINQL_* env vars > config file > defaults.
// path may be empty, in which case ./mlinql.yaml is read if present.
// flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*MlinqlConfig, error) {
	v := viper.New()

	v.SetDefault("workdir", DefaultWorkdir)
	v.SetDefault("shell.prompt", DefaultPrompt)
	v.SetDefault("shell.history_file", DefaultHistoryPath())
	v.SetDefault("shell.history_max", DefaultHistoryMax)
	v.SetDefault("shell.output", DefaultOutput)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetEnvPrefix("MLINQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg MlinqlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"workdir":     "workdir",
	"prompt":      "shell.prompt",
	"history":     "shell.history_file",
	"history-max": "shell.history_max",
	"output":      "shell.output",
	"log-level":   "log.level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate rejects values the shell cannot act on.
func (c *MlinqlConfig) Validate() error {
	var errs []error

	if c.Workdir == "" {
		errs = append(errs, errors.New("workdir is required"))
	}
	if c.Shell.HistoryMax < 0 {
		errs = append(errs, fmt.Errorf("history_max must be >= 0, got %d", c.Shell.HistoryMax))
	}
	if !slices.Contains(OutputFormats, c.Shell.Output) {
		errs = append(errs, fmt.Errorf("unknown output format %q (want one of %s)",
			c.Shell.Output, strings.Join(OutputFormats, ", ")))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLogLevel maps debug|info|warn|error onto slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// DefaultHistoryPath is ~/.mlinql_history, or a file in the current
// directory when the home directory is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultHistoryFile
	}
	return filepath.Join(home, defaultHistoryFile)
}
