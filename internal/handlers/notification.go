package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/notifications"
	"github.com/planhub-dev/planhub/internal/types"
	"github.com/planhub-dev/planhub/internal/utils"
)

type NotificationHandler struct {
	repo    *notifications.Repository
	scanner *notifications.Scanner
	log     *logrus.Logger
}

func NewNotificationHandler(repo *notifications.Repository, scanner *notifications.Scanner, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{repo: repo, scanner: scanner, log: log}
}

type NotificationResponse struct {
	ID        uint                   `json:"id"`
	Kind      string                 `json:"kind"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	ProjectID *uint                  `json:"project_id,omitempty"`
	IsRead    bool                   `json:"is_read"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Sender    *types.UserResponse    `json:"sender,omitempty"`
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var query struct {
		Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
		Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
		IsRead *bool  `form:"is_read"`
		Kind   string `form:"kind" binding:"omitempty,oneof=deadline_reminder status_change assignment project_created project_updated"`
	}

	if err := ctx.BindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	items, total, err := h.repo.ListForUser(userID, notifications.ListParams{
		Page:     query.Page,
		PageSize: query.Limit,
		IsRead:   query.IsRead,
		Kind:     query.Kind,
	})

	if err != nil {
		h.log.WithError(err).Error("Failed to list notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	unreadCount, err := h.repo.CountUnread(userID)

	if err != nil {
		h.log.WithError(err).Error("Failed to count unread notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := make([]NotificationResponse, 0, len(items))

	for i := range items {
		response = append(response, notificationResponse(&items[i]))
	}

	totalPages := (total + int64(query.Limit) - 1) / int64(query.Limit)

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": response,
		"totalPages":    totalPages,
		"currentPage":   query.Page,
		"total":         total,
		"unreadCount":   unreadCount,
	})
}

func (h *NotificationHandler) MarkRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetNotificationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.repo.MarkRead(notificationID, userID)

	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			h.log.WithError(err).Error("Failed to mark notification as read")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      "Notification marked as read",
		"notification": notificationResponse(notification),
	})
}

func (h *NotificationHandler) MarkAllRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.repo.MarkAllRead(userID)

	if err != nil {
		h.log.WithError(err).Error("Failed to mark all notifications as read")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"count":   count,
	})
}

func (h *NotificationHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetNotificationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.repo.Delete(notificationID, userID); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			h.log.WithError(err).Error("Failed to delete notification")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) DeleteRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.repo.DeleteAllRead(userID)

	if err != nil {
		h.log.WithError(err).Error("Failed to delete read notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Read notifications deleted",
		"count":   count,
	})
}

func (h *NotificationHandler) UnreadCount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.repo.CountUnread(userID)

	if err != nil {
		h.log.WithError(err).Error("Failed to count unread notifications")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// Scan triggers a reminder scan outside the regular schedule. Projects
// still inside the lead window are re-notified.
func (h *NotificationHandler) Scan(ctx *gin.Context) {
	result, err := h.scanner.Run()

	if err != nil {
		h.log.WithError(err).Error("Manual reminder scan failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder scan failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Reminder scan completed",
		"sentCount":   result.SentCount,
		"failedCount": result.FailedCount,
	})
}

func notificationResponse(notification *models.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:        notification.ID,
		Kind:      notification.Kind,
		Title:     notification.Title,
		Body:      notification.Body,
		ProjectID: notification.ProjectID,
		IsRead:    notification.IsRead,
		Metadata:  notification.Metadata,
		CreatedAt: notification.CreatedAt,
	}

	if notification.Sender != nil && notification.Sender.ID != 0 {
		sender := userResponse(notification.Sender)
		response.Sender = &sender
	}

	return response
}
