// Package notifications implements the notification and reminder engine:
// durable in-app notification records, per-user delivery preferences, a
// dispatch service that echoes events to email on a best-effort basis, and
// the batch scanner that reminds users about approaching project deadlines.
package notifications

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a notification does not exist or does
	// not belong to the calling user. The two cases are indistinguishable
	// on purpose.
	ErrNotFound = errors.New("notification not found")

	// ErrInvalidLeadDays is returned when a settings update carries a
	// reminder window outside the allowed range.
	ErrInvalidLeadDays = errors.New("reminder lead days must be between 0 and 30")
)

const (
	MinReminderLeadDays = 0
	MaxReminderLeadDays = 30
)

// Clock supplies the current time. Injectable so reminder windows are
// deterministic in tests.
type Clock func() time.Time
