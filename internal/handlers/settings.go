package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/notifications"
	"github.com/planhub-dev/planhub/internal/utils"
)

type SettingsHandler struct {
	store *notifications.SettingsStore
	log   *logrus.Logger
}

func NewSettingsHandler(store *notifications.SettingsStore, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, log: log}
}

type SettingsResponse struct {
	EmailDeadlineReminder bool `json:"emailDeadlineReminder"`
	EmailStatusChange     bool `json:"emailStatusChange"`
	EmailAssignment       bool `json:"emailAssignment"`
	EmailWeeklyReport     bool `json:"emailWeeklyReport"`
	SiteNotifications     bool `json:"siteNotifications"`
	ReminderLeadDays      int  `json:"reminderLeadDays"`
}

func (h *SettingsHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	settings, err := h.store.Get(userID)

	if err != nil {
		h.log.WithError(err).Error("Failed to load notification settings")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"settings": settingsResponse(settings)})
}

func (h *SettingsHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var patch notifications.SettingsPatch

	if err := ctx.BindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	settings, err := h.store.Update(userID, patch)

	if err != nil {
		if errors.Is(err, notifications.ErrInvalidLeadDays) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			h.log.WithError(err).Error("Failed to update notification settings")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully",
		"settings": settingsResponse(settings),
	})
}

func settingsResponse(settings *models.NotificationSettings) SettingsResponse {
	return SettingsResponse{
		EmailDeadlineReminder: settings.EmailDeadlineReminder,
		EmailStatusChange:     settings.EmailStatusChange,
		EmailAssignment:       settings.EmailAssignment,
		EmailWeeklyReport:     settings.EmailWeeklyReport,
		SiteNotifications:     settings.SiteNotifications,
		ReminderLeadDays:      settings.ReminderLeadDays,
	}
}
