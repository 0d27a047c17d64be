package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Iron-Ham/swarmbot/internal/logging"
	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// ExitValue entered on either axis ends the Publisher.
const ExitValue = -1

// Operator-facing messages.
const (
	MsgCurrentPosition = "My current coordinates are %s. Please enter my new coordinates (Write -1 to exit):"
	MsgNotANumber      = "Please enter a number!"
	MsgOutOfRange      = "Sorry, the acceptable range of values is 1 to 30. Please enter the coordinate again."
	MsgBroadcasting    = "Broadcasting my new coordinates %s"
)

// PublisherState is the state of the Publisher loop.
type PublisherState int

const (
	// AwaitingInput indicates the Publisher is waiting for a coordinate.
	AwaitingInput PublisherState = iota

	// Validating indicates a coordinate was entered and is being checked.
	Validating

	// Publishing indicates a complete pair is being written to the mailbox.
	Publishing

	// Stopped indicates the operator left. It is terminal.
	Stopped
)

// String returns a human-readable string for the state.
func (s PublisherState) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Validating:
		return "validating"
	case Publishing:
		return "publishing"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Axis names the coordinate being asked for.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "X" or "Y".
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Prompter is the operator's side of the Publisher.
type Prompter interface {
	// Ask prompts for one coordinate and returns the raw answer. io.EOF
	// means the operator is gone.
	Ask(ctx context.Context, axis Axis) (string, error)

	// Notify shows a message to the operator.
	Notify(msg string)
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithTransitionHook registers fn to be called on every state change.
func WithTransitionHook(fn func(from, to PublisherState)) PublisherOption {
	return func(p *Publisher) {
		p.onTransition = fn
	}
}

// WithPublisherLogger sets the logger of the Publisher.
func WithPublisherLogger(logger *logging.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Publisher reads new own coordinates from a Prompter and publishes them.
type Publisher struct {
	mb           *mailbox.Mailbox
	state        *State
	prompter     Prompter
	logger       *logging.Logger
	onTransition func(from, to PublisherState)
	current      PublisherState
}

// NewPublisher creates a Publisher for the agent described by state.
func NewPublisher(mb *mailbox.Mailbox, state *State, prompter Prompter, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		mb:       mb,
		state:    state,
		prompter: prompter,
		logger:   logging.NopLogger(),
		current:  AwaitingInput,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state of the loop. It must not be called
// concurrently with Run; use WithTransitionHook to observe a running loop.
func (p *Publisher) State() PublisherState {
	return p.current
}

func (p *Publisher) transition(to PublisherState) {
	from := p.current
	if from == to {
		return
	}
	p.current = to
	if p.onTransition != nil {
		p.onTransition(from, to)
	}
}

// Run prompts for coordinate pairs and publishes each valid one until the
// operator enters the exit value, input ends, or ctx is cancelled. Those all
// end in Stopped with a nil error. Run never publishes the sentinel.
func (p *Publisher) Run(ctx context.Context) error {
	defer p.transition(Stopped)

	for {
		p.prompter.Notify(fmt.Sprintf(MsgCurrentPosition, p.state.Own()))

		next, ok, err := p.readPair(ctx)
		if err != nil {
			return err
		}
		if !ok {
			p.logger.Info("operator left", "position", p.state.Own().String())
			return nil
		}

		p.transition(Publishing)
		if err := p.mb.Publish(p.state.Self(), next); err != nil {
			p.logger.Error("publish failed", "position", next.String(), "error", err.Error())
			return fmt.Errorf("publish own position: %w", err)
		}
		p.state.SetOwn(next)
		p.prompter.Notify(fmt.Sprintf(MsgBroadcasting, next))
		p.logger.Info("position published", "x", next.X, "y", next.Y)
	}
}

// readPair collects X then Y. It reports false when the loop must stop.
func (p *Publisher) readPair(ctx context.Context) (mailbox.Position, bool, error) {
	var coords [2]int
	for _, axis := range []Axis{AxisX, AxisY} {
		v, ok, err := p.readCoordinate(ctx, axis)
		if err != nil || !ok {
			return mailbox.Position{}, false, err
		}
		coords[axis] = v
	}
	return mailbox.Position{X: coords[AxisX], Y: coords[AxisY]}, true, nil
}

func (p *Publisher) readCoordinate(ctx context.Context, axis Axis) (int, bool, error) {
	for {
		p.transition(AwaitingInput)
		answer, err := p.prompter.Ask(ctx, axis)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("read %s coordinate: %w", axis, err)
		}

		p.transition(Validating)
		v, err := strconv.Atoi(strings.TrimSpace(answer))
		switch {
		case err != nil:
			p.logger.Debug("rejected input", "axis", axis.String(), "reason", "not a number")
			p.prompter.Notify(MsgNotANumber)
		case v == ExitValue:
			return 0, false, nil
		case !mailbox.InRange(v):
			p.logger.Debug("rejected input", "axis", axis.String(), "value", v, "reason", "out of range")
			p.prompter.Notify(MsgOutOfRange)
		default:
			return v, true, nil
		}
	}
}
