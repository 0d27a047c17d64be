package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/swarmbot/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "swarmbot",
	Short: "Proximity-aware robot swarm agent",
	Long: `swarmbot runs one agent of a robot swarm. Each agent owns a shared-memory
mailbox holding its position, publishes new coordinates typed by the operator,
and polls every peer mailbox to greet neighbours within range.

Start one "swarmbot run --index i" per agent, with exactly one --initializer.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/swarmbot/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	// Swarm layout flags shared by every command
	rootCmd.PersistentFlags().IntP("size", "n", 4, "number of agents in the swarm (0 = every roster entry)")
	rootCmd.PersistentFlags().String("roster", "rollnumbers.txt", "roster file of agent identifiers")
	rootCmd.PersistentFlags().String("label-dir", ".", "directory holding the mailbox label files")
	rootCmd.PersistentFlags().String("backend", "sysv", "mailbox backend: sysv or mmap")
	_ = viper.BindPFlag("swarm.size", rootCmd.PersistentFlags().Lookup("size"))
	_ = viper.BindPFlag("swarm.roster_file", rootCmd.PersistentFlags().Lookup("roster"))
	_ = viper.BindPFlag("swarm.label_dir", rootCmd.PersistentFlags().Lookup("label-dir"))
	_ = viper.BindPFlag("swarm.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SWARMBOT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SWARMBOT_SWARM_INDEX for swarm.index
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
