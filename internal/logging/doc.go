// Package logging provides structured logging for swarmbot agents.
//
// It wraps Go's log/slog to write JSON lines, either to stderr or to a log
// file that is rotated by size. Child loggers carry persistent attributes so
// that every line written by an agent names the run, the agent index and the
// loop (publisher or poller) that produced it:
//
//	logger, err := logging.NewLogger("swarmbot.log", "info", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	pollLog := logger.WithRun(runID).WithAgent(3).WithLoop("poller")
//	pollLog.Debug("peer moved", "peer", 0, "x", 10, "y", 10)
//
// Console output shown to the operator never goes through this package; the
// log is for post-hoc debugging of a swarm session.
//
// Use [NopLogger] in tests.
package logging
