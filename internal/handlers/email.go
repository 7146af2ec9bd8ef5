package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/mailer"
	"github.com/planhub-dev/planhub/internal/notifications"
	"github.com/planhub-dev/planhub/internal/templates"
)

// EmailHandler exposes the admin-only email surface: test sends, template
// inspection, and the manual deadline digest.
type EmailHandler struct {
	templates *templates.Registry
	mailer    mailer.Mailer
	scanner   *notifications.Scanner
	log       *logrus.Logger
}

func NewEmailHandler(registry *templates.Registry, m mailer.Mailer, scanner *notifications.Scanner, log *logrus.Logger) *EmailHandler {
	return &EmailHandler{templates: registry, mailer: m, scanner: scanner, log: log}
}

type TestEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type PreviewRequest struct {
	Data map[string]interface{} `json:"data"`
}

func (h *EmailHandler) TestSend(ctx *gin.Context) {
	var body TestEmailRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.mailer.Send(body.To, body.Subject, body.Content); err != nil {
		h.log.WithError(err).Error("Failed to send test email")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Test email sent successfully"})
}

func (h *EmailHandler) ListTemplates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"templates": h.templates.Names()})
}

func (h *EmailHandler) Preview(ctx *gin.Context) {
	templateName := ctx.Param("template_name")

	var body PreviewRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	html, err := h.templates.Render(templateName, body.Data)

	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			h.log.WithError(err).Error("Failed to render template preview")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"html": html})
}

func (h *EmailHandler) SendReminders(ctx *gin.Context) {
	result, err := h.scanner.RunDigest()

	if err != nil {
		h.log.WithError(err).Error("Deadline digest run failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reminder emails"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Reminder emails sent",
		"sentCount":   result.SentCount,
		"failedCount": result.FailedCount,
	})
}
