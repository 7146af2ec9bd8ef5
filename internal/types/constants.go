package types

const ContextUserKey = "user"

// Notification kinds
const (
	KindDeadlineReminder = "deadline_reminder"
	KindStatusChange     = "status_change"
	KindAssignment       = "assignment"
	KindProjectCreated   = "project_created"
	KindProjectUpdated   = "project_updated"
)

var NotificationKinds = []string{
	KindDeadlineReminder,
	KindStatusChange,
	KindAssignment,
	KindProjectCreated,
	KindProjectUpdated,
}

// Project statuses
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPaused     = "paused"
	StatusCancelled  = "cancelled"
)

var ProjectStatuses = []string{
	StatusNotStarted,
	StatusInProgress,
	StatusCompleted,
	StatusPaused,
	StatusCancelled,
}

// Terminal statuses never qualify for deadline reminders.
var TerminalStatuses = []string{StatusCompleted, StatusCancelled}

// Project priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var ProjectPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Pagination limits
const (
	DefaultNotificationPageSize = 20
	MaxNotificationPageSize     = 50
	DefaultProjectPageSize      = 10
	MaxProjectPageSize          = 100
)

func IsValidKind(kind string) bool {
	return contains(NotificationKinds, kind)
}

func IsValidStatus(status string) bool {
	return contains(ProjectStatuses, status)
}

func IsValidPriority(priority string) bool {
	return contains(ProjectPriorities, priority)
}

func IsTerminalStatus(status string) bool {
	return contains(TerminalStatuses, status)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
