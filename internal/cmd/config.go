package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/swarmbot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View swarmbot configuration",
	Long: `View swarmbot configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/swarmbot/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(w, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(w, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "swarm:")
	fmt.Fprintf(w, "  size: %d\n", cfg.Swarm.Size)
	fmt.Fprintf(w, "  index: %d\n", cfg.Swarm.Index)
	fmt.Fprintf(w, "  initializer: %v\n", cfg.Swarm.Initializer)
	fmt.Fprintf(w, "  roster_file: %s\n", cfg.Swarm.RosterFile)
	fmt.Fprintf(w, "  label_dir: %s\n", cfg.Swarm.LabelDir)
	fmt.Fprintf(w, "  backend: %s\n", cfg.Swarm.Backend)
	fmt.Fprintf(w, "  start_x: %d\n", cfg.Swarm.StartX)
	fmt.Fprintf(w, "  start_y: %d\n", cfg.Swarm.StartY)

	fmt.Fprintln(w, "poll:")
	fmt.Fprintf(w, "  interval_ms: %d\n", cfg.Poll.IntervalMs)
	fmt.Fprintf(w, "  threshold: %d\n", cfg.Poll.Threshold)

	fmt.Fprintln(w, "console:")
	fmt.Fprintf(w, "  color: %v\n", cfg.Console.Color)

	fmt.Fprintln(w, "logging:")
	fmt.Fprintf(w, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(w, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  file: %s\n", cfg.Logging.File)
	fmt.Fprintf(w, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(w, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

// defaultConfigContent is written by "config init".
const defaultConfigContent = `# swarmbot configuration

# Swarm layout. Every agent of a swarm must agree on size, roster_file,
# label_dir and backend.
swarm:
  # Number of agents; 0 takes every entry of the roster file
  size: 4
  # This agent's roster index (usually given with --index instead)
  index: 0
  # Reset every mailbox on startup; set on exactly one agent
  initializer: false
  # Whitespace-separated agent identifiers
  roster_file: rollnumbers.txt
  # Directory of the mailbox label files robot<i>.txt
  label_dir: .
  # Mailbox backend: sysv (shared memory segments) or mmap (mapped files)
  backend: sysv
  # Initial position; 0 picks a random one
  start_x: 0
  start_y: 0

# Peer polling
poll:
  # Pause after each peer read, in milliseconds
  interval_ms: 100
  # Largest distance at which a peer is a neighbour
  threshold: 10

# Terminal output
console:
  color: true

# Structured logging
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Empty writes to ~/.config/swarmbot/logs/agent-<index>.log; "-" writes to stderr
  file: ""
  max_size_mb: 10
  max_backups: 3
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(w, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(w, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(w, "\nSearch paths:")
	fmt.Fprintf(w, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(w, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(w, "\nEnvironment variables: SWARMBOT_* (e.g., SWARMBOT_SWARM_INDEX)")

	return nil
}
