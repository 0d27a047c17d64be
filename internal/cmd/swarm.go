package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/swarmbot/internal/config"
	"github.com/Iron-Ham/swarmbot/internal/logging"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
	"github.com/Iron-Ham/swarmbot/internal/roster"
)

// rosterFs is the filesystem rosters are read from.
var rosterFs = afero.NewOsFs()

// swarm is the roster and mailbox store every command starts from.
type swarm struct {
	cfg    *config.Config
	roster roster.Roster
	store  mailbox.Store
}

// loadSwarm loads the roster and the mailbox backend named by cfg. The
// roster is read before any mailbox is touched.
func loadSwarm(cfg *config.Config) (*swarm, error) {
	r, err := roster.Load(rosterFs, cfg.Swarm.RosterFile, cfg.Swarm.Size)
	if err != nil {
		return nil, err
	}

	store, err := mailbox.NewStore(cfg.Swarm.Backend)
	if err != nil {
		return nil, err
	}

	return &swarm{cfg: cfg, roster: r, store: store}, nil
}

// loadConfiguredSwarm is loadSwarm for the configuration viper holds.
func loadConfiguredSwarm() (*swarm, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return loadSwarm(cfg)
}

// open ensures every mailbox of the swarm.
func (s *swarm) open(opts ...mailbox.Option) (*mailbox.Mailbox, error) {
	return mailbox.Open(s.store, s.roster.Labels(s.cfg.Swarm.LabelDir), opts...)
}

// createLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func createLogger(cfg *config.Config, index int) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotation := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}

	logger, err := logging.NewLogger(cfg.Logging.LogFile(index), cfg.Logging.Level, rotation)
	if err != nil {
		// Log creation failure shouldn't prevent the agent from starting
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}
