package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"text-editor/internal/logger"
)

const EnvPrefix = "EDITOR"

// Config holds the start-up settings of the editor
type Config struct {
	Root     string `mapstructure:"root"`
	LogLevel string `mapstructure:"log_level"`
	JSONLogs bool   `mapstructure:"json_logs"`
	MaxDepth int    `mapstructure:"max_depth"`
}

// DefaultConfig values; an empty Root means the user's home directory.
var DefaultConfig = Config{
	LogLevel: "info",
	JSONLogs: false,
	MaxDepth: 0,
}

// InitFlags registers the command-line overrides.
func InitFlags(flags *pflag.FlagSet) {
	flags.String("root", DefaultConfig.Root, "Directory shown in the file tree (default: home directory)")
	flags.String("log-level", DefaultConfig.LogLevel, "Log level: debug, info, warn or error")
	flags.Bool("json-logs", DefaultConfig.JSONLogs, "Write logs as JSON lines")
	flags.Int("max-depth", DefaultConfig.MaxDepth, "Limit how deep the file tree is expanded (0 = unlimited)")
}

// Load resolves the configuration from defaults, EDITOR_* environment
// variables and, when flags is non-nil, the command line.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("root", DefaultConfig.Root)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("json_logs", DefaultConfig.JSONLogs)
	v.SetDefault("max_depth", DefaultConfig.MaxDepth)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindings := map[string]string{
			"root":      "root",
			"log_level": "log-level",
			"json_logs": "json-logs",
			"max_depth": "max-depth",
		}
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		c.Root = home
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve root %q: %w", c.Root, err)
	}
	c.Root = abs

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}
