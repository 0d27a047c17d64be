package agent

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/swarmbot/internal/mailbox"
	"github.com/Iron-Ham/swarmbot/internal/roster"
)

// scriptedPrompter answers Ask from a fixed script. Once the script is used
// up it blocks until hold is closed or ctx ends, then reports io.EOF.
type scriptedPrompter struct {
	mu       sync.Mutex
	answers  []string
	asked    []Axis
	notified []string
	hold     chan struct{}
}

func newScriptedPrompter(answers ...string) *scriptedPrompter {
	hold := make(chan struct{})
	close(hold)
	return &scriptedPrompter{answers: answers, hold: hold}
}

// holding makes the prompter block after the script instead of ending input.
func (p *scriptedPrompter) holding() *scriptedPrompter {
	p.hold = make(chan struct{})
	return p
}

func (p *scriptedPrompter) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.hold:
	default:
		close(p.hold)
	}
}

func (p *scriptedPrompter) Ask(ctx context.Context, axis Axis) (string, error) {
	p.mu.Lock()
	p.asked = append(p.asked, axis)
	if len(p.answers) > 0 {
		answer := p.answers[0]
		p.answers = p.answers[1:]
		p.mu.Unlock()
		return answer, nil
	}
	hold := p.hold
	p.mu.Unlock()

	select {
	case <-hold:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *scriptedPrompter) Notify(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notified = append(p.notified, msg)
}

func (p *scriptedPrompter) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notified...)
}

func (p *scriptedPrompter) axes() []Axis {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Axis(nil), p.asked...)
}

func testRoster(t *testing.T, n int) roster.Roster {
	t.Helper()
	ids := make([]int, n)
	for i := range ids {
		ids[i] = 101 + i
	}
	r, err := roster.New(ids)
	require.NoError(t, err)
	return r
}

func openMailbox(t *testing.T, store mailbox.Store, n int, opts ...mailbox.Option) *mailbox.Mailbox {
	t.Helper()
	mb, err := mailbox.Open(store, mailbox.Labels(t.TempDir(), n), opts...)
	require.NoError(t, err)
	return mb
}
