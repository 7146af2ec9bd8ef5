package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model

	UserID      uint   `gorm:"not null;index:idx_notifications_user_read"`
	SenderID    *uint  `gorm:"index"`
	Kind        string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Body        string `gorm:"not null"`
	ProjectID   *uint  `gorm:"index"`
	IsRead      bool   `gorm:"not null;default:false;index:idx_notifications_user_read"`
	EmailSent   bool   `gorm:"not null;default:false"`
	EmailSentAt *time.Time
	Metadata    datatypes.JSONMap

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Sender  *User    `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
