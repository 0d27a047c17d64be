package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Mark every mailbox departed",
	Long: `Write the departed sentinel (-1,-1) to every mailbox of the swarm.
This is what the initializer agent does on startup.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every mailbox",
	Long: `Destroy every mailbox of the swarm: the shared memory segments of the
sysv backend or the backing files of the mmap backend. Run it only when no
agent is running.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(cleanCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := loadConfiguredSwarm()
	if err != nil {
		return err
	}
	mb, err := s.open()
	if err != nil {
		return err
	}
	if err := mb.ResetAll(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reset %d mailboxes (%s)\n", mb.Len(), mb.Backend())
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	s, err := loadConfiguredSwarm()
	if err != nil {
		return err
	}
	mb, err := s.open()
	if err != nil {
		return err
	}
	if err := mb.RemoveAll(); err != nil {
		return fmt.Errorf("failed to remove mailboxes: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d mailboxes (%s)\n", mb.Len(), mb.Backend())
	return nil
}
