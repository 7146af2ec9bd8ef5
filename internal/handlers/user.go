package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/types"
)

type UserHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUserHandler(db *gorm.DB, log *logrus.Logger) *UserHandler {
	return &UserHandler{db: db, log: log}
}

// List returns all active users, used by assignee pickers.
func (h *UserHandler) List(ctx *gin.Context) {
	var users []models.User

	if err := h.db.Where("is_active = ?", true).Order("name").Find(&users).Error; err != nil {
		h.log.WithError(err).Error("Failed to list users")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"users": response})
}
