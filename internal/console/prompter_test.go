package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/swarmbot/internal/agent"
)

func TestPrompter_Ask(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrompter(strings.NewReader("7\n  12 \nabc def\n"), NewOutput(&buf, false))
	ctx := context.Background()

	got, err := p.Ask(ctx, agent.AxisX)
	require.NoError(t, err)
	assert.Equal(t, "7", got)

	got, err = p.Ask(ctx, agent.AxisY)
	require.NoError(t, err)
	assert.Equal(t, "12", got)

	got, err = p.Ask(ctx, agent.AxisX)
	require.NoError(t, err)
	assert.Equal(t, "abc def", got, "a whole line is one answer")

	_, err = p.Ask(ctx, agent.AxisX)
	assert.ErrorIs(t, err, io.EOF)
	_, err = p.Ask(ctx, agent.AxisY)
	assert.ErrorIs(t, err, io.EOF, "end of input is sticky")

	assert.Equal(t, "X = Y = X = X = Y = ", buf.String())
}

func TestPrompter_AskCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	p := NewPrompter(r, NewOutput(io.Discard, false))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := p.Ask(ctx, agent.AxisX)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Ask did not return after cancellation")
	}
}

func TestPrompter_Notify(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrompter(strings.NewReader(""), NewOutput(&buf, false))

	p.Notify(agent.MsgNotANumber)
	p.Notify("Broadcasting my new coordinates (7,8)")

	assert.Equal(t, "Please enter a number!\nBroadcasting my new coordinates (7,8)\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf, true), "buffers are not terminals")
	assert.False(t, ColorEnabled(&buf, false))
}
