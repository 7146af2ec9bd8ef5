package directory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}))

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, active bool) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         types.RoleUser,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}

func createProject(t *testing.T, db *gorm.DB, p models.Project) *models.Project {
	t.Helper()

	if p.Status == "" {
		p.Status = types.StatusInProgress
	}
	if p.Priority == "" {
		p.Priority = types.PriorityMedium
	}
	if p.CreatedBy == 0 {
		p.CreatedBy = p.RequesterID
	}
	require.NoError(t, db.Create(&p).Error)

	return &p
}

func deadlineAt(t time.Time) *time.Time { return &t }

func TestListActiveUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	active := createUser(t, db, "alice", true)
	createUser(t, db, "bob", false)

	users, err := svc.ListActiveUsers()

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, active.ID, users[0].ID)
}

func TestProjectsNearDeadlineWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice", true)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := now.AddDate(0, 0, 3)

	inWindow := createProject(t, db, models.Project{
		Name:        "due soon",
		RequesterID: user.ID,
		Deadline:    deadlineAt(now.AddDate(0, 0, 2)),
	})
	createProject(t, db, models.Project{
		Name:        "due later",
		RequesterID: user.ID,
		Deadline:    deadlineAt(now.AddDate(0, 0, 9)),
	})
	createProject(t, db, models.Project{
		Name:        "already past",
		RequesterID: user.ID,
		Deadline:    deadlineAt(now.AddDate(0, 0, -1)),
	})
	createProject(t, db, models.Project{
		Name:        "no deadline",
		RequesterID: user.ID,
	})

	projects, err := svc.ProjectsNearDeadline(user.ID, now, windowEnd)

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, inWindow.ID, projects[0].ID)
}

func TestProjectsNearDeadlineWindowIsInclusive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice", true)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := now.AddDate(0, 0, 3)

	createProject(t, db, models.Project{
		Name:        "at window start",
		RequesterID: user.ID,
		Deadline:    deadlineAt(now),
	})
	createProject(t, db, models.Project{
		Name:        "at window end",
		RequesterID: user.ID,
		Deadline:    deadlineAt(windowEnd),
	})

	projects, err := svc.ProjectsNearDeadline(user.ID, now, windowEnd)

	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectsNearDeadlineExcludesTerminalAndArchived(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "alice", true)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := deadlineAt(now.AddDate(0, 0, 1))

	createProject(t, db, models.Project{
		Name:        "completed",
		RequesterID: user.ID,
		Status:      types.StatusCompleted,
		Deadline:    due,
	})
	createProject(t, db, models.Project{
		Name:        "cancelled",
		RequesterID: user.ID,
		Status:      types.StatusCancelled,
		Deadline:    due,
	})
	createProject(t, db, models.Project{
		Name:        "archived",
		RequesterID: user.ID,
		IsArchived:  true,
		Deadline:    due,
	})
	paused := createProject(t, db, models.Project{
		Name:        "paused",
		RequesterID: user.ID,
		Status:      types.StatusPaused,
		Deadline:    due,
	})

	projects, err := svc.ProjectsNearDeadline(user.ID, now, now.AddDate(0, 0, 3))

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, paused.ID, projects[0].ID)
}

func TestProjectsNearDeadlineMatchesAssigneeOrRequester(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := createUser(t, db, "alice", true)
	bob := createUser(t, db, "bob", true)
	carol := createUser(t, db, "carol", true)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := deadlineAt(now.AddDate(0, 0, 1))

	requested := createProject(t, db, models.Project{
		Name:        "requested by alice",
		RequesterID: alice.ID,
		AssigneeID:  &bob.ID,
		Deadline:    due,
	})
	assigned := createProject(t, db, models.Project{
		Name:        "assigned to alice",
		RequesterID: bob.ID,
		AssigneeID:  &alice.ID,
		Deadline:    due,
	})

	projects, err := svc.ProjectsNearDeadline(alice.ID, now, now.AddDate(0, 0, 3))
	require.NoError(t, err)

	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uint{requested.ID, assigned.ID}, ids)

	projects, err = svc.ProjectsNearDeadline(carol.ID, now, now.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGetProjectMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	project, err := svc.GetProject(12345)

	require.NoError(t, err)
	assert.Nil(t, project)
}
