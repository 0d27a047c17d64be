package mailbox

import (
	"fmt"

	"github.com/Iron-Ham/swarmbot/internal/errors"
	"github.com/Iron-Ham/swarmbot/internal/event"
	"github.com/Iron-Ham/swarmbot/internal/logging"
)

// Mailbox addresses the mailboxes of a whole roster by index.
// It is safe for concurrent use as long as the Store is.
type Mailbox struct {
	store   Store
	handles []Handle
	bus     *event.Bus
	logger  *logging.Logger
}

// Open ensures the mailbox of every label, in order, and returns a Mailbox
// over them. The first failure aborts Open; callers treat it as fatal.
func Open(store Store, labels []string, opts ...Option) (*Mailbox, error) {
	m := &Mailbox{
		store:  store,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.handles = make([]Handle, 0, len(labels))
	for _, label := range labels {
		h, err := store.Ensure(label)
		if err != nil {
			m.logger.Error("mailbox allocation failed", "label", label, "backend", store.Name(), "error", err.Error())
			return nil, err
		}
		m.logger.Debug("mailbox ensured", "label", label, "key", h.Key, "id", h.ID)
		m.handles = append(m.handles, h)
	}
	return m, nil
}

// Len returns the number of mailboxes.
func (m *Mailbox) Len() int {
	return len(m.handles)
}

// Label returns the label of the mailbox at index.
func (m *Mailbox) Label(index int) string {
	if index < 0 || index >= len(m.handles) {
		return ""
	}
	return m.handles[index].Label
}

// Backend returns the name of the underlying store.
func (m *Mailbox) Backend() string {
	return m.store.Name()
}

func (m *Mailbox) handle(index int) (Handle, error) {
	if index < 0 || index >= len(m.handles) {
		return Handle{}, errors.NewMailboxError("lookup",
			fmt.Errorf("%w: index %d out of range [0,%d)", errors.ErrMailboxNotFound, index, len(m.handles)))
	}
	return m.handles[index], nil
}

// Publish writes p to the mailbox at index.
func (m *Mailbox) Publish(index int, p Position) error {
	h, err := m.handle(index)
	if err != nil {
		return err
	}
	if err := m.store.Write(h, p); err != nil {
		return err
	}
	if m.bus != nil {
		m.bus.Publish(event.NewPositionPublishedEvent(index, p.X, p.Y))
	}
	return nil
}

// Peek reads the mailbox at index.
func (m *Mailbox) Peek(index int) (Position, error) {
	h, err := m.handle(index)
	if err != nil {
		return Position{}, err
	}
	return m.store.Read(h)
}

// Depart writes the Sentinel to the mailbox at index, announcing that its
// agent has left the swarm.
func (m *Mailbox) Depart(index int) error {
	h, err := m.handle(index)
	if err != nil {
		return err
	}
	if err := m.store.Reset(h); err != nil {
		return err
	}
	if m.bus != nil {
		m.bus.Publish(event.NewAgentDepartedEvent(index))
	}
	return nil
}

// ResetAll writes the Sentinel to every mailbox, clearing whatever a previous
// run left behind. Only the designated initializer does this.
func (m *Mailbox) ResetAll() error {
	for _, h := range m.handles {
		if err := m.store.Reset(h); err != nil {
			return err
		}
	}
	m.logger.Info("mailboxes reset", "count", len(m.handles))
	if m.bus != nil {
		m.bus.Publish(event.NewMailboxResetEvent(len(m.handles)))
	}
	return nil
}

// Snapshot reads every mailbox in index order.
func (m *Mailbox) Snapshot() ([]Position, error) {
	out := make([]Position, len(m.handles))
	for i, h := range m.handles {
		p, err := m.store.Read(h)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// RemoveAll destroys every mailbox. Errors are collected rather than
// stopping at the first one.
func (m *Mailbox) RemoveAll() error {
	var errs []error
	for _, h := range m.handles {
		if err := m.store.Remove(h); err != nil {
			errs = append(errs, err)
		}
	}
	m.logger.Info("mailboxes removed", "count", len(m.handles)-len(errs))
	return errors.Join(errs...)
}
