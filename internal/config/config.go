// Package config defines swarmbot's configuration, its defaults, and the
// validation applied after viper has merged the config file, environment and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all swarmbot configuration
type Config struct {
	Swarm   SwarmConfig   `mapstructure:"swarm"`
	Poll    PollConfig    `mapstructure:"poll"`
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SwarmConfig describes the swarm and this agent's place in it
type SwarmConfig struct {
	// Size is the number of agents N. Zero sizes the swarm from the roster file.
	Size int `mapstructure:"size"`
	// Index is this agent's roster index, 0..N-1
	Index int `mapstructure:"index"`
	// Initializer makes this agent reset every mailbox on startup.
	// Exactly one agent of a swarm should set it.
	Initializer bool `mapstructure:"initializer"`
	// RosterFile is the whitespace-separated list of agent identifiers (default: "rollnumbers.txt")
	RosterFile string `mapstructure:"roster_file"`
	// LabelDir is the directory holding the mailbox label files (default: ".")
	LabelDir string `mapstructure:"label_dir"`
	// Backend selects the mailbox store: "sysv" or "mmap" (default: "sysv")
	Backend string `mapstructure:"backend"`
	// StartX and StartY are the initial own position. Zero picks a random one.
	StartX int `mapstructure:"start_x"`
	StartY int `mapstructure:"start_y"`
}

// PollConfig controls the peer poller
type PollConfig struct {
	// IntervalMs is the pause after each peer read in milliseconds (default: 100)
	IntervalMs int `mapstructure:"interval_ms"`
	// Threshold is the largest distance at which a peer is a neighbour (default: 10)
	Threshold int `mapstructure:"threshold"`
}

// ConsoleConfig controls terminal output
type ConsoleConfig struct {
	// Color enables styled output when stdout is a terminal (default: true)
	Color bool `mapstructure:"color"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path. Empty writes to <config dir>/logs/agent-<index>.log
	// so that agents sharing a machine never rotate each other's file; "-" logs to stderr.
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Swarm: SwarmConfig{
			Size:       4,
			Index:      0,
			RosterFile: "rollnumbers.txt",
			LabelDir:   ".",
			Backend:    "sysv",
		},
		Poll: PollConfig{
			IntervalMs: 100,
			Threshold:  10,
		},
		Console: ConsoleConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// PollInterval returns the poll interval as a time.Duration
func (c *PollConfig) PollInterval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// LogFile returns the log file of the agent at index, or "" for stderr
func (c *LoggingConfig) LogFile(index int) string {
	switch c.File {
	case "-":
		return ""
	case "":
		return filepath.Join(ConfigDir(), "logs", fmt.Sprintf("agent-%d.log", index))
	default:
		return c.File
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Swarm defaults
	viper.SetDefault("swarm.size", defaults.Swarm.Size)
	viper.SetDefault("swarm.index", defaults.Swarm.Index)
	viper.SetDefault("swarm.initializer", defaults.Swarm.Initializer)
	viper.SetDefault("swarm.roster_file", defaults.Swarm.RosterFile)
	viper.SetDefault("swarm.label_dir", defaults.Swarm.LabelDir)
	viper.SetDefault("swarm.backend", defaults.Swarm.Backend)
	viper.SetDefault("swarm.start_x", defaults.Swarm.StartX)
	viper.SetDefault("swarm.start_y", defaults.Swarm.StartY)

	// Poll defaults
	viper.SetDefault("poll.interval_ms", defaults.Poll.IntervalMs)
	viper.SetDefault("poll.threshold", defaults.Poll.Threshold)

	// Console defaults
	viper.SetDefault("console.color", defaults.Console.Color)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for an explicit viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "swarmbot")
	}
	// Fall back to ~/.config/swarmbot
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swarmbot"
	}
	return filepath.Join(home, ".config", "swarmbot")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
