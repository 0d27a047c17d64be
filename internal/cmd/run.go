package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/swarmbot/internal/agent"
	"github.com/Iron-Ham/swarmbot/internal/config"
	"github.com/Iron-Ham/swarmbot/internal/console"
	"github.com/Iron-Ham/swarmbot/internal/event"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one agent of the swarm",
	Long: `Run one agent of the swarm in the foreground.

The agent ensures every mailbox exists, publishes its initial position and
then prompts for new coordinates while polling its peers. Enter -1 (or
close input) to leave the swarm; the agent then marks its mailbox departed.

Exactly one agent should be started with --initializer, before the others,
to clear mailboxes left behind by a previous run.`,
	Example: `  swarmbot run --index 0 --initializer
  swarmbot run --index 1 --start-x 5 --start-y 5
  SWARMBOT_SWARM_INDEX=2 swarmbot run --backend mmap`,
	Args: cobra.NoArgs,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("index", "i", 0, "this agent's roster index")
	runCmd.Flags().Bool("initializer", false, "reset every mailbox on startup")
	runCmd.Flags().Int("start-x", 0, "initial x coordinate (0 = random)")
	runCmd.Flags().Int("start-y", 0, "initial y coordinate (0 = random)")
	runCmd.Flags().Duration("poll-interval", agent.DefaultPollInterval, "pause after each peer read")
	runCmd.Flags().Int("threshold", agent.DefaultThreshold, "largest distance at which a peer is a neighbour")
	runCmd.Flags().Bool("no-color", false, "disable styled output")

	_ = viper.BindPFlag("swarm.index", runCmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("swarm.initializer", runCmd.Flags().Lookup("initializer"))
	_ = viper.BindPFlag("swarm.start_x", runCmd.Flags().Lookup("start-x"))
	_ = viper.BindPFlag("swarm.start_y", runCmd.Flags().Lookup("start-y"))
	_ = viper.BindPFlag("poll.threshold", runCmd.Flags().Lookup("threshold"))
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The flag is a duration, the config key milliseconds
	if cmd.Flags().Changed("poll-interval") {
		d, _ := cmd.Flags().GetDuration("poll-interval")
		if d < time.Millisecond {
			return fmt.Errorf("--poll-interval must be at least 1ms (got: %s)", d)
		}
		cfg.Poll.IntervalMs = int(d / time.Millisecond)
	}

	s, err := loadSwarm(cfg)
	if err != nil {
		return err
	}
	index := cfg.Swarm.Index
	if index >= s.roster.Len() {
		return fmt.Errorf("agent index %d out of range: roster %s holds %d agents", index, cfg.Swarm.RosterFile, s.roster.Len())
	}

	logger := createLogger(cfg, index).WithRun(uuid.NewString())
	defer func() { _ = logger.Close() }()

	noColor, _ := cmd.Flags().GetBool("no-color")
	w := cmd.OutOrStdout()
	out := console.NewOutput(w, console.ColorEnabled(w, cfg.Console.Color && !noColor))

	bus := event.NewBus()
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		logger.Error("event handler panicked", "event_type", eventType, "panic", fmt.Sprint(recovered), "stack", string(stack))
	})
	sink := console.NewSink(out, index, s.roster.ID(index))
	sink.Attach(bus)
	defer sink.Detach()

	a, err := agent.New(agent.Config{
		Index:        index,
		Initializer:  cfg.Swarm.Initializer,
		LabelDir:     cfg.Swarm.LabelDir,
		Start:        mailbox.Position{X: cfg.Swarm.StartX, Y: cfg.Swarm.StartY},
		PollInterval: cfg.Poll.PollInterval(),
		Threshold:    cfg.Poll.Threshold,
	}, s.roster, s.store, console.NewPrompter(cmd.InOrStdin(), out),
		agent.WithBus(bus),
		agent.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err = a.Run(ctx)
	logger.Info("agent exited", "uptime", time.Since(start).Round(time.Millisecond).String(), "clean", err == nil)
	return err
}
