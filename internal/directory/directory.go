// Package directory provides the database-backed user and project query
// collaborator consumed by the reminder scanner.
package directory

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/types"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListActiveUsers() ([]models.User, error) {
	var users []models.User

	err := s.db.Where("is_active = ?", true).Find(&users).Error

	return users, err
}

func (s *Service) ProjectsNearDeadline(userID uint, from, to time.Time) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.
		Where("(assignee_id = ? OR requester_id = ?)", userID, userID).
		Where("deadline >= ? AND deadline <= ?", from, to).
		Where("status NOT IN ?", types.TerminalStatuses).
		Where("is_archived = ?", false).
		Find(&projects).Error

	return projects, err
}

// GetProject returns nil without error when the project does not exist.
func (s *Service) GetProject(id uint) (*models.Project, error) {
	var project models.Project

	err := s.db.First(&project, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}
