package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhub-dev/planhub/internal/models"
)

type fakeDirectory struct {
	users    []models.User
	projects map[uint][]models.Project
	windows  map[uint][2]time.Time
	listErr  error
	queryErr error
}

func (d *fakeDirectory) ListActiveUsers() ([]models.User, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.users, nil
}

func (d *fakeDirectory) ProjectsNearDeadline(userID uint, from, to time.Time) ([]models.Project, error) {
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	if d.windows == nil {
		d.windows = make(map[uint][2]time.Time)
	}
	d.windows[userID] = [2]time.Time{from, to}
	return d.projects[userID], nil
}

func (d *fakeDirectory) GetProject(id uint) (*models.Project, error) {
	return nil, nil
}

type fakeReminderDispatcher struct {
	reminders []uint // project IDs in dispatch order
	digests   map[uint]int
	failFor   map[uint]bool // project or user IDs that fail
}

func (f *fakeReminderDispatcher) DeadlineReminder(project *models.Project, user *models.User) error {
	if f.failFor[project.ID] {
		return errors.New("dispatch failed")
	}
	f.reminders = append(f.reminders, project.ID)
	return nil
}

func (f *fakeReminderDispatcher) DeadlineDigestEmail(user *models.User, projects []models.Project, now time.Time) error {
	if f.failFor[user.ID] {
		return errMailDown
	}
	if f.digests == nil {
		f.digests = make(map[uint]int)
	}
	f.digests[user.ID] = len(projects)
	return nil
}

func scanProject(id uint, name string) models.Project {
	p := models.Project{Name: name, Status: "in_progress"}
	p.ID = id
	return p
}

func scanUser(id uint, name string) models.User {
	u := models.User{Name: name, Email: name + "@example.com", IsActive: true}
	u.ID = id
	return u
}

func TestScannerRunCountsPairs(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	dir := &fakeDirectory{
		users: []models.User{scanUser(1, "alice"), scanUser(2, "bob")},
		projects: map[uint][]models.Project{
			1: {scanProject(10, "a"), scanProject(11, "b")},
			2: {scanProject(12, "c")},
		},
	}
	dispatcher := &fakeReminderDispatcher{}

	scanner := NewScanner(dispatcher, settings, dir, nil, newTestLogger())

	result, err := scanner.Run()

	require.NoError(t, err)
	assert.Equal(t, 3, result.SentCount)
	assert.Zero(t, result.FailedCount)
	assert.ElementsMatch(t, []uint{10, 11, 12}, dispatcher.reminders)
}

func TestScannerRunUsesLeadDayWindow(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	_, err := settings.Update(1, SettingsPatch{ReminderLeadDays: intPtr(3)})
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dir := &fakeDirectory{users: []models.User{scanUser(1, "alice")}}

	scanner := NewScanner(&fakeReminderDispatcher{}, settings, dir, fixedClock(now), newTestLogger())

	_, err = scanner.Run()
	require.NoError(t, err)

	window := dir.windows[1]
	assert.True(t, window[0].Equal(now))
	assert.True(t, window[1].Equal(now.AddDate(0, 0, 3)))
}

func TestScannerRunPartialFailure(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	dir := &fakeDirectory{
		users: []models.User{scanUser(1, "alice")},
		projects: map[uint][]models.Project{
			1: {scanProject(10, "a"), scanProject(11, "b"), scanProject(12, "c")},
		},
	}
	dispatcher := &fakeReminderDispatcher{failFor: map[uint]bool{11: true}}

	scanner := NewScanner(dispatcher, settings, dir, nil, newTestLogger())

	result, err := scanner.Run()

	// A failed pair is counted and skipped, never aborting the run.
	require.NoError(t, err)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.ElementsMatch(t, []uint{10, 12}, dispatcher.reminders)
}

func TestScannerRunAbortsOnQueryError(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	dir := &fakeDirectory{
		users:    []models.User{scanUser(1, "alice")},
		queryErr: errors.New("db down"),
	}

	scanner := NewScanner(&fakeReminderDispatcher{}, settings, dir, nil, newTestLogger())

	_, err := scanner.Run()
	assert.Error(t, err)
}

func TestScannerRunDigest(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	// bob has opted out of email reminders, carol has nothing due.
	_, err := settings.Update(2, SettingsPatch{EmailDeadlineReminder: boolPtr(false)})
	require.NoError(t, err)

	dir := &fakeDirectory{
		users: []models.User{scanUser(1, "alice"), scanUser(2, "bob"), scanUser(3, "carol")},
		projects: map[uint][]models.Project{
			1: {scanProject(10, "a"), scanProject(11, "b")},
			2: {scanProject(12, "c")},
		},
	}
	dispatcher := &fakeReminderDispatcher{}

	scanner := NewScanner(dispatcher, settings, dir, nil, newTestLogger())

	result, err := scanner.RunDigest()

	require.NoError(t, err)
	assert.Equal(t, 1, result.SentCount)
	assert.Zero(t, result.FailedCount)

	// One digest for alice covering both projects; nothing for bob or carol.
	assert.Equal(t, map[uint]int{1: 2}, dispatcher.digests)
}

func TestScannerRunDigestCountsFailuresPerUser(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	dir := &fakeDirectory{
		users: []models.User{scanUser(1, "alice"), scanUser(2, "bob")},
		projects: map[uint][]models.Project{
			1: {scanProject(10, "a")},
			2: {scanProject(11, "b")},
		},
	}
	dispatcher := &fakeReminderDispatcher{failFor: map[uint]bool{2: true}}

	scanner := NewScanner(dispatcher, settings, dir, nil, newTestLogger())

	result, err := scanner.RunDigest()

	require.NoError(t, err)
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
}
