package notifications

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/models"
)

// Directory is the user/project query collaborator the scanner reads from.
type Directory interface {
	ListActiveUsers() ([]models.User, error)
	// ProjectsNearDeadline returns the projects where the user is assignee
	// or requester, the deadline falls inside [from, to], the status is not
	// terminal, and the project is not archived.
	ProjectsNearDeadline(userID uint, from, to time.Time) ([]models.Project, error)
	GetProject(id uint) (*models.Project, error)
}

// ReminderDispatcher is the slice of the Dispatcher the scanner drives.
type ReminderDispatcher interface {
	DeadlineReminder(project *models.Project, user *models.User) error
	DeadlineDigestEmail(user *models.User, projects []models.Project, now time.Time) error
}

// Result aggregates one scan run. Failures are per (user, project) pair;
// a failed pair never aborts the run.
type Result struct {
	SentCount   int `json:"sentCount"`
	FailedCount int `json:"failedCount"`
}

// Scanner finds projects approaching their deadline and dispatches
// reminders. It keeps no state between runs: a project still inside the
// lead window on the next run is reminded again, so the caller's schedule
// sets the repeat cadence.
type Scanner struct {
	dispatcher ReminderDispatcher
	settings   *SettingsStore
	directory  Directory
	clock      Clock
	log        *logrus.Logger
}

func NewScanner(
	dispatcher ReminderDispatcher,
	settings *SettingsStore,
	directory Directory,
	clock Clock,
	log *logrus.Logger,
) *Scanner {
	if clock == nil {
		clock = time.Now
	}

	return &Scanner{
		dispatcher: dispatcher,
		settings:   settings,
		directory:  directory,
		clock:      clock,
		log:        log,
	}
}

// Run performs one reminder scan over all active users. A failure while
// dispatching a single (user, project) pair is counted and skipped; only a
// failure enumerating users or projects aborts the run.
func (s *Scanner) Run() (Result, error) {
	var result Result

	users, err := s.directory.ListActiveUsers()

	if err != nil {
		return result, fmt.Errorf("list active users: %w", err)
	}

	for i := range users {
		user := &users[i]

		settings, err := s.settings.Get(user.ID)

		if err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("Failed to load settings, skipping user")
			continue
		}

		now := s.clock()
		windowEnd := now.AddDate(0, 0, settings.ReminderLeadDays)

		projects, err := s.directory.ProjectsNearDeadline(user.ID, now, windowEnd)

		if err != nil {
			return result, fmt.Errorf("projects near deadline for user %d: %w", user.ID, err)
		}

		for j := range projects {
			if err := s.dispatcher.DeadlineReminder(&projects[j], user); err != nil {
				result.FailedCount++
				s.log.WithError(err).WithFields(logrus.Fields{
					"user_id":    user.ID,
					"project_id": projects[j].ID,
				}).Warn("Deadline reminder failed")
				continue
			}
			result.SentCount++
		}
	}

	return result, nil
}

// RunDigest sends one deadline digest email per user whose email reminder
// gate is enabled and who has at least one qualifying project. Counters are
// per user here, matching the one-email-per-user granularity.
func (s *Scanner) RunDigest() (Result, error) {
	var result Result

	users, err := s.directory.ListActiveUsers()

	if err != nil {
		return result, fmt.Errorf("list active users: %w", err)
	}

	for i := range users {
		user := &users[i]

		settings, err := s.settings.Get(user.ID)

		if err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("Failed to load settings, skipping user")
			continue
		}

		if !settings.EmailDeadlineReminder {
			continue
		}

		now := s.clock()
		windowEnd := now.AddDate(0, 0, settings.ReminderLeadDays)

		projects, err := s.directory.ProjectsNearDeadline(user.ID, now, windowEnd)

		if err != nil {
			return result, fmt.Errorf("projects near deadline for user %d: %w", user.ID, err)
		}

		if len(projects) == 0 {
			continue
		}

		if err := s.dispatcher.DeadlineDigestEmail(user, projects, now); err != nil {
			result.FailedCount++
			s.log.WithError(err).WithField("user_id", user.ID).Warn("Deadline digest email failed")
			continue
		}

		result.SentCount++
	}

	return result, nil
}
