package console

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Iron-Ham/swarmbot/internal/mailbox"
)

// MailboxRow is one line of the peek table.
type MailboxRow struct {
	Index    int
	AgentID  int
	Label    string
	Position mailbox.Position
	Err      error
}

// Status returns "active", "departed" or "unreadable".
func (r MailboxRow) Status() string {
	switch {
	case r.Err != nil:
		return "unreadable"
	case r.Position.Departed():
		return "departed"
	default:
		return "active"
	}
}

// MailboxTable renders rows as a bordered table.
func (o *Output) MailboxTable(rows []MailboxRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(o.styles.muted).
		Headers("INDEX", "ID", "LABEL", "POSITION", "STATUS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return o.styles.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range rows {
		pos := r.Position.String()
		if r.Err != nil {
			pos = "-"
		}
		t.Row(strconv.Itoa(r.Index), strconv.Itoa(r.AgentID), r.Label, pos, r.Status())
	}
	return t.String()
}

// PrintMailboxes writes the peek table for rows.
func (o *Output) PrintMailboxes(rows []MailboxRow) {
	rendered := o.MailboxTable(rows)
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = o.w.Write([]byte(rendered + "\n"))
}
