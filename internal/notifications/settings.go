package notifications

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/planhub-dev/planhub/internal/models"
)

// SettingsStore reads and writes per-user notification preferences. A user
// without a row gets the default record, persisted lazily on first access.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// SettingsPatch carries a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	EmailDeadlineReminder *bool `json:"emailDeadlineReminder"`
	EmailStatusChange     *bool `json:"emailStatusChange"`
	EmailAssignment       *bool `json:"emailAssignment"`
	EmailWeeklyReport     *bool `json:"emailWeeklyReport"`
	SiteNotifications     *bool `json:"siteNotifications"`
	ReminderLeadDays      *int  `json:"reminderLeadDays"`
}

func defaultSettings(userID uint) models.NotificationSettings {
	return models.NotificationSettings{
		UserID:                userID,
		EmailDeadlineReminder: true,
		EmailStatusChange:     true,
		EmailAssignment:       true,
		EmailWeeklyReport:     false,
		SiteNotifications:     true,
		ReminderLeadDays:      1,
	}
}

// Get returns the user's settings, creating the default row if none exists.
// Concurrent first reads race on the insert; ON CONFLICT DO NOTHING plus a
// re-read keeps the row unique without locking.
func (s *SettingsStore) Get(userID uint) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings

	err := s.db.Where("user_id = ?", userID).First(&settings).Error

	if err == nil {
		return &settings, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := defaultSettings(userID)

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&defaults).Error

	if err != nil {
		return nil, err
	}

	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}

	return &settings, nil
}

// Update merges the provided fields into the user's settings, creating the
// row from defaults first when absent.
func (s *SettingsStore) Update(userID uint, patch SettingsPatch) (*models.NotificationSettings, error) {
	if patch.ReminderLeadDays != nil {
		days := *patch.ReminderLeadDays
		if days < MinReminderLeadDays || days > MaxReminderLeadDays {
			return nil, ErrInvalidLeadDays
		}
	}

	settings, err := s.Get(userID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.EmailDeadlineReminder != nil {
		updates["email_deadline_reminder"] = *patch.EmailDeadlineReminder
	}
	if patch.EmailStatusChange != nil {
		updates["email_status_change"] = *patch.EmailStatusChange
	}
	if patch.EmailAssignment != nil {
		updates["email_assignment"] = *patch.EmailAssignment
	}
	if patch.EmailWeeklyReport != nil {
		updates["email_weekly_report"] = *patch.EmailWeeklyReport
	}
	if patch.SiteNotifications != nil {
		updates["site_notifications"] = *patch.SiteNotifications
	}
	if patch.ReminderLeadDays != nil {
		updates["reminder_lead_days"] = *patch.ReminderLeadDays
	}

	if len(updates) == 0 {
		return settings, nil
	}

	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	return settings, nil
}
