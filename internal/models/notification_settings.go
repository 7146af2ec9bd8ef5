package models

import "gorm.io/gorm"

// NotificationSettings holds the per-user delivery gates. Exactly one row
// exists per user; absent rows are created lazily with these defaults.
type NotificationSettings struct {
	gorm.Model

	UserID                uint `gorm:"not null;uniqueIndex"`
	EmailDeadlineReminder bool `gorm:"not null;default:true"`
	EmailStatusChange     bool `gorm:"not null;default:true"`
	EmailAssignment       bool `gorm:"not null;default:true"`
	EmailWeeklyReport     bool `gorm:"not null;default:false"`
	SiteNotifications     bool `gorm:"not null;default:true"`
	ReminderLeadDays      int  `gorm:"not null;default:1"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
