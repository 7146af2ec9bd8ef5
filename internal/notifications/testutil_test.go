package notifications

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Notification{},
		&models.NotificationSettings{},
	)
	require.NoError(t, err)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(new(strings.Builder))
	return log
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Role:         "user",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, requesterID uint, deadline *time.Time) *models.Project {
	t.Helper()

	project := models.Project{
		Name:        name,
		RequesterID: requesterID,
		Status:      "in_progress",
		Priority:    "medium",
		Deadline:    deadline,
		CreatedBy:   requesterID,
	}
	require.NoError(t, db.Create(&project).Error)

	return &project
}

// fakeMailer records sends and optionally fails every call.
type fakeMailer struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

var errMailDown = errors.New("smtp connection refused")
