package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/Iron-Ham/swarmbot/internal/agent"
)

// Prompter reads one answer per input line. A line that is not a number is
// rejected by the caller as a whole, which discards anything else typed on
// it.
type Prompter struct {
	in  io.Reader
	out *Output

	once   sync.Once
	lines  chan string
	closed chan struct{}
	err    error
}

var _ agent.Prompter = (*Prompter)(nil)

// NewPrompter returns a Prompter reading from in and prompting on out.
func NewPrompter(in io.Reader, out *Output) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		lines:  make(chan string),
		closed: make(chan struct{}),
	}
}

// scan feeds input lines to Ask. It blocks on in, so it outlives a cancelled
// Ask until the next line or the end of input arrives.
func (p *Prompter) scan() {
	sc := bufio.NewScanner(p.in)
	for sc.Scan() {
		p.lines <- sc.Text()
	}
	p.err = sc.Err()
	if p.err == nil {
		p.err = io.EOF
	}
	close(p.closed)
}

// Ask prints "X = " or "Y = " and waits for the next input line.
func (p *Prompter) Ask(ctx context.Context, axis agent.Axis) (string, error) {
	p.once.Do(func() { go p.scan() })

	p.out.prompt(axis.String() + " = ")
	select {
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case <-p.closed:
		return "", p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Notify prints msg on its own line. Corrective messages are highlighted.
func (p *Prompter) Notify(msg string) {
	switch msg {
	case agent.MsgNotANumber, agent.MsgOutOfRange:
		p.out.line(p.out.styles.warning, msg)
	default:
		p.out.line(p.out.styles.message, msg)
	}
}
