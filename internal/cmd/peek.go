package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/swarmbot/internal/console"
)

var peekCmd = &cobra.Command{
	Use:   "peek",
	Short: "Show the position held by every mailbox",
	Long: `Read every mailbox of the swarm once and print the positions as a table.
Missing mailboxes are created, as an agent would on startup.`,
	Args: cobra.NoArgs,
	RunE: runPeek,
}

func init() {
	rootCmd.AddCommand(peekCmd)
	peekCmd.Flags().Bool("no-color", false, "disable styled output")
}

func runPeek(cmd *cobra.Command, args []string) error {
	s, err := loadConfiguredSwarm()
	if err != nil {
		return err
	}
	mb, err := s.open()
	if err != nil {
		return err
	}

	rows := make([]console.MailboxRow, mb.Len())
	for i := range rows {
		pos, err := mb.Peek(i)
		rows[i] = console.MailboxRow{
			Index:    i,
			AgentID:  s.roster.ID(i),
			Label:    mb.Label(i),
			Position: pos,
			Err:      err,
		}
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	w := cmd.OutOrStdout()
	console.NewOutput(w, console.ColorEnabled(w, s.cfg.Console.Color && !noColor)).PrintMailboxes(rows)
	return nil
}
