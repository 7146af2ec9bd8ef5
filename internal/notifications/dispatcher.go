package notifications

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/mailer"
	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/templates"
	"github.com/planhub-dev/planhub/internal/types"
)

const deadlineFormat = "2006-01-02 15:04"

// Dispatcher turns project events into notifications. The in-app record is
// the source of truth: it must be written or the call fails. The email echo
// is a secondary channel whose failures are logged and swallowed, never
// surfaced to the caller.
type Dispatcher struct {
	repo      *Repository
	settings  *SettingsStore
	templates *templates.Registry
	mailer    mailer.Mailer
	clock     Clock
	log       *logrus.Logger
	baseURL   string
}

func NewDispatcher(
	repo *Repository,
	settings *SettingsStore,
	registry *templates.Registry,
	m mailer.Mailer,
	clock Clock,
	log *logrus.Logger,
	baseURL string,
) *Dispatcher {
	if clock == nil {
		clock = time.Now
	}

	return &Dispatcher{
		repo:      repo,
		settings:  settings,
		templates: registry,
		mailer:    m,
		clock:     clock,
		log:       log,
		baseURL:   baseURL,
	}
}

// ProjectAssignment notifies the assignee of a new assignment. Assigning a
// project to its own requester produces nothing at all.
func (d *Dispatcher) ProjectAssignment(project *models.Project, assignee, requester *models.User) error {
	if assignee.ID == requester.ID {
		return nil
	}

	senderID := requester.ID

	notification, err := d.repo.Create(CreateParams{
		UserID:    assignee.ID,
		SenderID:  &senderID,
		Kind:      types.KindAssignment,
		Title:     "New project assignment",
		Body:      fmt.Sprintf("You have been assigned a new project: %s", project.Name),
		ProjectID: &project.ID,
		Metadata: map[string]interface{}{
			"projectName": project.Name,
			"priority":    project.Priority,
			"deadline":    formatDeadline(project.Deadline),
		},
	})

	if err != nil {
		return err
	}

	d.emailBestEffort(notification, assignee,
		func(s *models.NotificationSettings) bool { return s.EmailAssignment },
		templates.TemplateProjectAssignment,
		fmt.Sprintf("Project assignment: %s", project.Name),
		map[string]interface{}{
			"assigneeName":       assignee.Name,
			"projectName":        project.Name,
			"projectDescription": project.Description,
			"priority":           project.Priority,
			"deadline":           formatDeadline(project.Deadline),
			"requesterName":      requester.Name,
			"projectUrl":         d.projectURL(project.ID),
		})

	return nil
}

// StatusChange notifies every target except the actor. Duplicate targets
// are collapsed so nobody is notified twice for the same transition.
func (d *Dispatcher) StatusChange(project *models.Project, targets []*models.User, changedBy *models.User, oldStatus string) error {
	seen := make(map[uint]bool)
	senderID := changedBy.ID
	changeTime := d.clock().Format(deadlineFormat)

	for _, target := range targets {
		if target == nil || target.ID == changedBy.ID || seen[target.ID] {
			continue
		}
		seen[target.ID] = true

		notification, err := d.repo.Create(CreateParams{
			UserID:    target.ID,
			SenderID:  &senderID,
			Kind:      types.KindStatusChange,
			Title:     "Project status changed",
			Body:      fmt.Sprintf("Project %q status changed from %q to %q", project.Name, oldStatus, project.Status),
			ProjectID: &project.ID,
			Metadata: map[string]interface{}{
				"projectName": project.Name,
				"oldStatus":   oldStatus,
				"newStatus":   project.Status,
			},
		})

		if err != nil {
			return err
		}

		d.emailBestEffort(notification, target,
			func(s *models.NotificationSettings) bool { return s.EmailStatusChange },
			templates.TemplateStatusChange,
			fmt.Sprintf("Project status changed: %s", project.Name),
			map[string]interface{}{
				"projectName": project.Name,
				"oldStatus":   oldStatus,
				"newStatus":   project.Status,
				"changedBy":   changedBy.Name,
				"changeTime":  changeTime,
				"projectUrl":  d.projectURL(project.ID),
			})
	}

	return nil
}

// DeadlineReminder reminds a user about one approaching deadline. Unlike
// the other events, the site-notifications gate suppresses the in-app
// record itself, not just the email.
func (d *Dispatcher) DeadlineReminder(project *models.Project, user *models.User) error {
	settings, err := d.settings.Get(user.ID)

	if err != nil {
		return err
	}

	if !settings.SiteNotifications {
		return nil
	}

	notification, err := d.repo.Create(CreateParams{
		UserID:    user.ID,
		Kind:      types.KindDeadlineReminder,
		Title:     "Project deadline approaching",
		Body:      fmt.Sprintf("Project %q is approaching its deadline", project.Name),
		ProjectID: &project.ID,
		Metadata: map[string]interface{}{
			"projectName": project.Name,
			"deadline":    formatDeadline(project.Deadline),
		},
	})

	if err != nil {
		return err
	}

	now := d.clock()

	d.emailBestEffort(notification, user,
		func(s *models.NotificationSettings) bool { return s.EmailDeadlineReminder },
		templates.TemplateDeadlineReminder,
		"Project deadline reminder",
		map[string]interface{}{
			"userName":     user.Name,
			"projects":     []map[string]interface{}{deadlineRow(project, now)},
			"dashboardUrl": d.baseURL + "/dashboard",
		})

	return nil
}

// DeadlineDigestEmail sends one email listing every project approaching its
// deadline for the user. Used by the batch digest; the error is returned so
// the caller can count failures.
func (d *Dispatcher) DeadlineDigestEmail(user *models.User, projects []models.Project, now time.Time) error {
	rows := make([]map[string]interface{}, 0, len(projects))

	for i := range projects {
		rows = append(rows, deadlineRow(&projects[i], now))
	}

	html, err := d.templates.Render(templates.TemplateDeadlineReminder, map[string]interface{}{
		"userName":     user.Name,
		"projects":     rows,
		"dashboardUrl": d.baseURL + "/dashboard",
	})

	if err != nil {
		return err
	}

	return d.mailer.Send(user.Email, "Project deadline reminder", html)
}

// emailBestEffort runs the secondary email channel for a persisted
// notification: preference gate, render, send, flag update. Nothing here
// may fail the dispatch; every error is logged and dropped.
func (d *Dispatcher) emailBestEffort(
	notification *models.Notification,
	user *models.User,
	gate func(*models.NotificationSettings) bool,
	templateName string,
	subject string,
	data map[string]interface{},
) {
	settings, err := d.settings.Get(user.ID)

	if err != nil {
		d.log.WithError(err).WithField("user_id", user.ID).Warn("Failed to load notification settings, skipping email")
		return
	}

	if !gate(settings) {
		return
	}

	html, err := d.templates.Render(templateName, data)

	if err != nil {
		d.log.WithError(err).WithField("template", templateName).Warn("Failed to render email template, skipping email")
		return
	}

	if err := d.mailer.Send(user.Email, subject, html); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"user_id":         user.ID,
			"notification_id": notification.ID,
		}).Warn("Failed to send notification email")
		return
	}

	if err := d.repo.MarkEmailSent(notification.ID, d.clock()); err != nil {
		d.log.WithError(err).WithField("notification_id", notification.ID).Warn("Failed to record email delivery")
	}
}

func (d *Dispatcher) projectURL(projectID uint) string {
	return fmt.Sprintf("%s/projects/%d", d.baseURL, projectID)
}

func deadlineRow(project *models.Project, now time.Time) map[string]interface{} {
	row := map[string]interface{}{
		"name":     project.Name,
		"deadline": formatDeadline(project.Deadline),
		"status":   project.Status,
	}

	if project.Deadline != nil {
		until := project.Deadline.Sub(now)
		row["timeLeft"] = humanizeTimeLeft(until)
		row["isUrgent"] = until <= 24*time.Hour
	} else {
		row["timeLeft"] = ""
		row["isUrgent"] = false
	}

	return row
}

func formatDeadline(deadline *time.Time) string {
	if deadline == nil {
		return "not set"
	}
	return deadline.Format(deadlineFormat)
}

func humanizeTimeLeft(until time.Duration) string {
	if until <= 0 {
		return "overdue"
	}

	days := int(until.Hours() / 24)

	switch {
	case days == 0:
		return "less than a day"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
