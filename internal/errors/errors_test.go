package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityFatal, "fatal"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestRosterError(t *testing.T) {
	err := NewRosterError("load", ErrRosterShort).WithPath("rollnumbers.txt")

	assert.Equal(t, "roster error [path=rollnumbers.txt]: load: roster has too few entries", err.Error())
	assert.ErrorIs(t, err, ErrRosterShort)
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.True(t, IsFatal(err))
}

func TestRosterError_NoPath(t *testing.T) {
	err := NewRosterError("parse", nil)
	assert.Equal(t, "roster error: parse", err.Error())
}

func TestMailboxError(t *testing.T) {
	tests := []struct {
		name      string
		cause     error
		wantFatal bool
	}{
		{"allocation failure is fatal", ErrMailboxAlloc, true},
		{"wrapped allocation failure is fatal", fmt.Errorf("shmget: %w", ErrMailboxAlloc), true},
		{"unsupported backend is fatal", ErrBackendUnsupported, true},
		{"attach failure is not fatal", ErrMailboxAttach, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMailboxError("ensure", tt.cause).WithLabel("./robot1.txt")
			assert.ErrorIs(t, err, tt.cause)
			assert.Equal(t, tt.wantFatal, IsFatal(err))
		})
	}
}

func TestMailboxError_Format(t *testing.T) {
	err := NewMailboxError("read", ErrMailboxAttach).WithLabel("./robot0.txt").WithKey(0x1020304)
	assert.Equal(t, "mailbox error [label=./robot0.txt, key=0x1020304]: read: mailbox attach failed", err.Error())
}

func TestMailboxError_WithSeverity(t *testing.T) {
	err := NewMailboxError("read", ErrMailboxAttach).WithSeverity(SeverityWarning)
	assert.Equal(t, SeverityWarning, GetSeverity(err))
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(New("plain")))
	assert.True(t, IsFatal(fmt.Errorf("claim: %w", ErrSlotClaimed)))
	assert.True(t, IsFatal(fmt.Errorf("startup: %w", NewRosterError("load", ErrRosterUnreadable))))
}

func TestGetSeverity_PlainError(t *testing.T) {
	assert.Equal(t, SeverityError, GetSeverity(New("plain")))
}
