package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "swarm.index")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSwarm()...)
	errors = append(errors, c.validatePoll()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateSwarm validates the SwarmConfig
func (c *Config) validateSwarm() []ValidationError {
	var errors []ValidationError

	// Zero means "size from the roster"; a swarm of one has no peers
	if c.Swarm.Size < 0 || c.Swarm.Size == 1 {
		errors = append(errors, ValidationError{
			Field:   "swarm.size",
			Value:   c.Swarm.Size,
			Message: "must be 0 (size from roster) or at least 2",
		})
	}

	if c.Swarm.Index < 0 {
		errors = append(errors, ValidationError{
			Field:   "swarm.index",
			Value:   c.Swarm.Index,
			Message: "must be non-negative",
		})
	} else if c.Swarm.Size > 1 && c.Swarm.Index >= c.Swarm.Size {
		errors = append(errors, ValidationError{
			Field:   "swarm.index",
			Value:   c.Swarm.Index,
			Message: fmt.Sprintf("must be less than swarm.size (%d)", c.Swarm.Size),
		})
	}

	if strings.TrimSpace(c.Swarm.RosterFile) == "" {
		errors = append(errors, ValidationError{
			Field:   "swarm.roster_file",
			Value:   c.Swarm.RosterFile,
			Message: "must not be empty",
		})
	}

	if !mailbox.IsValidBackend(c.Swarm.Backend) {
		errors = append(errors, ValidationError{
			Field:   "swarm.backend",
			Value:   c.Swarm.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(mailbox.ValidBackends(), ", ")),
		})
	}

	// Zero on both axes means random; otherwise both must be in the arena
	if c.Swarm.StartX != 0 || c.Swarm.StartY != 0 {
		start := []struct {
			field string
			value int
		}{
			{"swarm.start_x", c.Swarm.StartX},
			{"swarm.start_y", c.Swarm.StartY},
		}
		for _, axis := range start {
			if !mailbox.InRange(axis.value) {
				errors = append(errors, ValidationError{
					Field:   axis.field,
					Value:   axis.value,
					Message: fmt.Sprintf("must be between %d and %d when a start position is set", mailbox.ArenaMin, mailbox.ArenaMax),
				})
			}
		}
	}

	return errors
}

// validatePoll validates the PollConfig
func (c *Config) validatePoll() []ValidationError {
	var errors []ValidationError

	if c.Poll.IntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "poll.interval_ms",
			Value:   c.Poll.IntervalMs,
			Message: "must be positive",
		})
	}

	if c.Poll.Threshold < 0 {
		errors = append(errors, ValidationError{
			Field:   "poll.threshold",
			Value:   c.Poll.Threshold,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
