package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/templates"
	"github.com/planhub-dev/planhub/internal/types"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *Repository, *SettingsStore, *fakeMailer, time.Time) {
	t.Helper()

	db := newTestDB(t)
	repo := NewRepository(db)
	settings := NewSettingsStore(db)
	m := &fakeMailer{}
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	d := NewDispatcher(repo, settings, templates.NewRegistry(), m, fixedClock(now), newTestLogger(), "https://app.example.com")

	return d, repo, settings, m, now
}

func testDeadline(now time.Time, days int) *time.Time {
	deadline := now.AddDate(0, 0, days)
	return &deadline
}

func TestDispatcherProjectAssignment(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	db := repo.db
	requester := createTestUser(t, db, "alice")
	assignee := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", requester.ID, testDeadline(now, 3))

	err := d.ProjectAssignment(project, assignee, requester)
	require.NoError(t, err)

	items, total, err := repo.ListForUser(assignee.ID, ListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	notification := items[0]
	assert.Equal(t, types.KindAssignment, notification.Kind)
	require.NotNil(t, notification.SenderID)
	assert.Equal(t, requester.ID, *notification.SenderID)
	require.NotNil(t, notification.ProjectID)
	assert.Equal(t, project.ID, *notification.ProjectID)
	assert.True(t, notification.EmailSent)
	require.NotNil(t, notification.EmailSentAt)
	assert.True(t, notification.EmailSentAt.Equal(now))

	require.Len(t, m.sent, 1)
	assert.Equal(t, assignee.Email, m.sent[0].To)
	assert.Contains(t, m.sent[0].Body, "Launch")
	assert.Contains(t, m.sent[0].Body, "https://app.example.com/projects/")
}

func TestDispatcherSelfAssignmentIsNoOp(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	db := repo.db
	requester := createTestUser(t, db, "alice")
	project := createTestProject(t, db, "Solo", requester.ID, testDeadline(now, 3))

	err := d.ProjectAssignment(project, requester, requester)
	require.NoError(t, err)

	_, total, err := repo.ListForUser(requester.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, m.sent)
}

func TestDispatcherMailerFailureDoesNotFailDispatch(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	m.err = errMailDown
	db := repo.db
	requester := createTestUser(t, db, "alice")
	assignee := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", requester.ID, testDeadline(now, 3))

	err := d.ProjectAssignment(project, assignee, requester)
	require.NoError(t, err)

	// The in-app record persists; only the email flag stays unset.
	items, total, err := repo.ListForUser(assignee.ID, ListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.False(t, items[0].EmailSent)
	assert.Nil(t, items[0].EmailSentAt)
}

func TestDispatcherEmailGateSkipsSend(t *testing.T) {
	d, repo, settings, m, now := newTestDispatcher(t)
	db := repo.db
	requester := createTestUser(t, db, "alice")
	assignee := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", requester.ID, testDeadline(now, 3))

	_, err := settings.Update(assignee.ID, SettingsPatch{EmailAssignment: boolPtr(false)})
	require.NoError(t, err)

	err = d.ProjectAssignment(project, assignee, requester)
	require.NoError(t, err)

	items, total, err := repo.ListForUser(assignee.ID, ListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.False(t, items[0].EmailSent)
	assert.Empty(t, m.sent)
}

func TestDispatcherStatusChangeSkipsActorAndDuplicates(t *testing.T) {
	d, repo, _, m, _ := newTestDispatcher(t)
	db := repo.db
	requester := createTestUser(t, db, "alice")
	assignee := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", requester.ID, nil)
	project.Status = types.StatusCompleted

	targets := []*models.User{requester, assignee, requester, nil}

	err := d.StatusChange(project, targets, assignee, types.StatusInProgress)
	require.NoError(t, err)

	// The actor gets nothing even though they are the assignee.
	_, total, err := repo.ListForUser(assignee.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)

	// The requester appears twice in targets but is notified once.
	items, total, err := repo.ListForUser(requester.ID, ListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, types.KindStatusChange, items[0].Kind)
	assert.Contains(t, items[0].Body, types.StatusInProgress)
	assert.Contains(t, items[0].Body, types.StatusCompleted)

	require.Len(t, m.sent, 1)
	assert.Equal(t, requester.Email, m.sent[0].To)
}

func TestDispatcherDeadlineReminderSiteGate(t *testing.T) {
	d, repo, settings, m, now := newTestDispatcher(t)
	db := repo.db
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, "Launch", user.ID, testDeadline(now, 1))

	_, err := settings.Update(user.ID, SettingsPatch{SiteNotifications: boolPtr(false)})
	require.NoError(t, err)

	// Unlike the email gates, the site gate suppresses the record itself.
	err = d.DeadlineReminder(project, user)
	require.NoError(t, err)

	_, total, err := repo.ListForUser(user.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, m.sent)
}

func TestDispatcherDeadlineReminderCreatesRecordAndEmail(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	db := repo.db
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, "Launch", user.ID, testDeadline(now, 1))

	err := d.DeadlineReminder(project, user)
	require.NoError(t, err)

	items, total, err := repo.ListForUser(user.ID, ListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, types.KindDeadlineReminder, items[0].Kind)
	assert.Nil(t, items[0].SenderID)

	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].Body, "Launch")
	assert.Contains(t, m.sent[0].Body, "1 day")
}

func TestDispatcherDeadlineDigestEmail(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	db := repo.db
	user := createTestUser(t, db, "alice")

	soon := createTestProject(t, db, "Soon", user.ID, testDeadline(now, 1))
	later := createTestProject(t, db, "Later", user.ID, testDeadline(now, 5))

	err := d.DeadlineDigestEmail(user, []models.Project{*soon, *later}, now)
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, user.Email, m.sent[0].To)
	assert.Contains(t, m.sent[0].Body, "Soon")
	assert.Contains(t, m.sent[0].Body, "Later")

	// The digest is email-only; no in-app record is written.
	_, total, err := repo.ListForUser(user.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDispatcherDeadlineDigestEmailReturnsSendError(t *testing.T) {
	d, repo, _, m, now := newTestDispatcher(t)
	m.err = errMailDown
	db := repo.db
	user := createTestUser(t, db, "alice")
	project := createTestProject(t, db, "Launch", user.ID, testDeadline(now, 1))

	err := d.DeadlineDigestEmail(user, []models.Project{*project}, now)
	assert.ErrorIs(t, err, errMailDown)
}

func TestHumanizeTimeLeft(t *testing.T) {
	assert.Equal(t, "overdue", humanizeTimeLeft(-time.Hour))
	assert.Equal(t, "less than a day", humanizeTimeLeft(6*time.Hour))
	assert.Equal(t, "1 day", humanizeTimeLeft(30*time.Hour))
	assert.Equal(t, "3 days", humanizeTimeLeft(80*time.Hour))
}

func TestFormatDeadline(t *testing.T) {
	assert.Equal(t, "not set", formatDeadline(nil))

	at := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-04 15:30", formatDeadline(&at))
}
