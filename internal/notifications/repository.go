package notifications

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/types"
)

// Repository persists notification records. Every query is scoped to the
// owning user; acting on another user's notification behaves exactly like
// acting on a missing one.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type CreateParams struct {
	UserID    uint
	SenderID  *uint
	Kind      string
	Title     string
	Body      string
	ProjectID *uint
	Metadata  map[string]interface{}
}

type ListParams struct {
	Page     int
	PageSize int
	IsRead   *bool
	Kind     string
}

func (r *Repository) Create(params CreateParams) (*models.Notification, error) {
	notification := models.Notification{
		UserID:    params.UserID,
		SenderID:  params.SenderID,
		Kind:      params.Kind,
		Title:     params.Title,
		Body:      params.Body,
		ProjectID: params.ProjectID,
		Metadata:  params.Metadata,
	}

	if err := r.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *Repository) ListForUser(userID uint, params ListParams) ([]models.Notification, int64, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = types.DefaultNotificationPageSize
	}
	if pageSize > types.MaxNotificationPageSize {
		pageSize = types.MaxNotificationPageSize
	}

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if params.IsRead != nil {
		query = query.Where("is_read = ?", *params.IsRead)
	}

	if params.Kind != "" {
		query = query.Where("kind = ?", params.Kind)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification

	err := query.
		Preload("Sender").
		Preload("Project").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&notifications).Error

	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead flips the read flag. Marking an already-read notification is a
// no-op success; the flag never transitions back to unread.
func (r *Repository) MarkRead(id, userID uint) (*models.Notification, error) {
	notification, err := r.findOwned(id, userID)

	if err != nil {
		return nil, err
	}

	if notification.IsRead {
		return notification, nil
	}

	if err := r.db.Model(notification).Update("is_read", true).Error; err != nil {
		return nil, err
	}

	return notification, nil
}

func (r *Repository) MarkAllRead(userID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)

	return result.RowsAffected, result.Error
}

func (r *Repository) Delete(id, userID uint) (*models.Notification, error) {
	notification, err := r.findOwned(id, userID)

	if err != nil {
		return nil, err
	}

	if err := r.db.Delete(notification).Error; err != nil {
		return nil, err
	}

	return notification, nil
}

func (r *Repository) DeleteAllRead(userID uint) (int64, error) {
	result := r.db.
		Where("user_id = ? AND is_read = ?", userID, true).
		Delete(&models.Notification{})

	return result.RowsAffected, result.Error
}

func (r *Repository) CountUnread(userID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error

	return count, err
}

// MarkEmailSent records that the email echo for a notification went out.
func (r *Repository) MarkEmailSent(id uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": at,
		}).Error
}

func (r *Repository) findOwned(id, userID uint) (*models.Notification, error) {
	var notification models.Notification

	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &notification, nil
}
