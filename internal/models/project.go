package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Name          string `gorm:"not null"`
	Description   string
	RequesterID   uint       `gorm:"not null;index"`
	AssigneeID    *uint      `gorm:"index"`
	Status        string     `gorm:"not null;default:not_started;index:idx_projects_status_deadline"`
	Priority      string     `gorm:"not null;default:medium"`
	Deadline      *time.Time `gorm:"index:idx_projects_status_deadline"`
	DocumentURL   string
	DocumentTitle string
	Notes         string
	WorkHours     float64 `gorm:"not null;default:0"`
	IsArchived    bool    `gorm:"not null;default:false"`
	CreatedBy     uint    `gorm:"not null"`
	UpdatedBy     *uint

	// Relationships
	Requester User  `gorm:"foreignKey:RequesterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee  *User `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
