package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/middleware"
	"github.com/planhub-dev/planhub/internal/models"
	"github.com/planhub-dev/planhub/internal/notifications"
	"github.com/planhub-dev/planhub/internal/types"
	"github.com/planhub-dev/planhub/internal/utils"
)

type ProjectHandler struct {
	db         *gorm.DB
	dispatcher *notifications.Dispatcher
	log        *logrus.Logger
}

func NewProjectHandler(db *gorm.DB, dispatcher *notifications.Dispatcher, log *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{db: db, dispatcher: dispatcher, log: log}
}

type CreateProjectRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	AssigneeID    *uint      `json:"assignee_id"`
	Status        string     `json:"status" binding:"omitempty,oneof=not_started in_progress completed paused cancelled"`
	Priority      string     `json:"priority" binding:"omitempty,oneof=high medium low"`
	Deadline      *time.Time `json:"deadline"`
	DocumentURL   string     `json:"document_url"`
	DocumentTitle string     `json:"document_title"`
	Notes         string     `json:"notes"`
}

type UpdateProjectRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	AssigneeID    *uint      `json:"assignee_id"`
	Status        *string    `json:"status" binding:"omitempty,oneof=not_started in_progress completed paused cancelled"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=high medium low"`
	Deadline      *time.Time `json:"deadline"`
	DocumentURL   *string    `json:"document_url"`
	DocumentTitle *string    `json:"document_title"`
	Notes         *string    `json:"notes"`
	WorkHours     *float64   `json:"work_hours"`
	IsArchived    *bool      `json:"is_archived"`
}

type ProjectResponse struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	RequesterID   uint                `json:"requester_id"`
	AssigneeID    *uint               `json:"assignee_id"`
	Status        string              `json:"status"`
	Priority      string              `json:"priority"`
	Deadline      *time.Time          `json:"deadline"`
	DocumentURL   string              `json:"document_url"`
	DocumentTitle string              `json:"document_title"`
	Notes         string              `json:"notes"`
	WorkHours     float64             `json:"work_hours"`
	IsArchived    bool                `json:"is_archived"`
	CreatedAt     time.Time           `json:"created_at"`
	Requester     *types.UserResponse `json:"requester,omitempty"`
	Assignee      *types.UserResponse `json:"assignee,omitempty"`
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status == "" {
		body.Status = types.StatusNotStarted
	}

	if body.Priority == "" {
		body.Priority = types.PriorityMedium
	}

	project := models.Project{
		Name:          body.Name,
		Description:   body.Description,
		RequesterID:   currentUser.ID,
		AssigneeID:    body.AssigneeID,
		Status:        body.Status,
		Priority:      body.Priority,
		Deadline:      body.Deadline,
		DocumentURL:   body.DocumentURL,
		DocumentTitle: body.DocumentTitle,
		Notes:         body.Notes,
		CreatedBy:     currentUser.ID,
	}

	if err := h.db.Create(&project).Error; err != nil {
		h.log.WithError(err).Error("Failed to create project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if project.AssigneeID != nil && *project.AssigneeID != currentUser.ID {
		h.notifyAssignment(&project, *project.AssigneeID, currentUser)
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": projectResponse(&project),
	})
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var query struct {
		Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
		Limit       int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
		Status      string `form:"status" binding:"omitempty,oneof=not_started in_progress completed paused cancelled"`
		Priority    string `form:"priority" binding:"omitempty,oneof=high medium low"`
		AssigneeID  *uint  `form:"assignee_id"`
		RequesterID *uint  `form:"requester_id"`
		Search      string `form:"search"`
		View        string `form:"view" binding:"omitempty,oneof=new thisweek history mine"`
		SortBy      string `form:"sort_by,default=created_at" binding:"omitempty,oneof=created_at deadline priority name"`
		SortOrder   string `form:"sort_order,default=desc" binding:"omitempty,oneof=asc desc"`
	}

	if err := ctx.BindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	dbQuery := h.db.Model(&models.Project{})

	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	if query.Priority != "" {
		dbQuery = dbQuery.Where("priority = ?", query.Priority)
	}

	if query.AssigneeID != nil {
		dbQuery = dbQuery.Where("assignee_id = ?", *query.AssigneeID)
	}

	if query.RequesterID != nil {
		dbQuery = dbQuery.Where("requester_id = ?", *query.RequesterID)
	}

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		dbQuery = dbQuery.Where("name ILIKE ? OR description ILIKE ? OR notes ILIKE ?", pattern, pattern, pattern)
	}

	now := time.Now()

	switch query.View {
	case "new":
		dbQuery = dbQuery.Where("status = ? AND is_archived = ?", types.StatusNotStarted, false)
	case "thisweek":
		dbQuery = dbQuery.Where("deadline >= ? AND deadline <= ? AND is_archived = ?", now, now.AddDate(0, 0, 7), false)
	case "history":
		dbQuery = dbQuery.Where("is_archived = ? OR status IN ?", true, types.TerminalStatuses)
	case "mine":
		dbQuery = dbQuery.Where("(requester_id = ? OR assignee_id = ?) AND is_archived = ?", currentUser.ID, currentUser.ID, false)
	default:
		dbQuery = dbQuery.Where("is_archived = ?", false)
	}

	var total int64

	if err := dbQuery.Count(&total).Error; err != nil {
		h.log.WithError(err).Error("Failed to count projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	var projects []models.Project

	err = dbQuery.
		Preload("Requester").
		Preload("Assignee").
		Order(query.SortBy + " " + query.SortOrder).
		Limit(query.Limit).
		Offset((query.Page - 1) * query.Limit).
		Find(&projects).Error

	if err != nil {
		h.log.WithError(err).Error("Failed to retrieve projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	totalPages := (total + int64(query.Limit) - 1) / int64(query.Limit)

	ctx.JSON(http.StatusOK, gin.H{
		"projects":    response,
		"totalPages":  totalPages,
		"currentPage": query.Page,
		"total":       total,
	})
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	err = h.db.Preload("Requester").Preload("Assignee").First(&project, projectID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			h.log.WithError(err).Error("Failed to retrieve project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(&project))
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			h.log.WithError(err).Error("Failed to retrieve project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	canEdit := project.RequesterID == currentUser.ID ||
		(project.AssigneeID != nil && *project.AssigneeID == currentUser.ID) ||
		currentUser.Role == types.RoleAdmin

	if !canEdit {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to modify this project"})
		return
	}

	oldStatus := project.Status
	oldAssigneeID := project.AssigneeID

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.AssigneeID != nil {
		updates["assignee_id"] = *body.AssigneeID
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}
	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}
	if body.Deadline != nil {
		updates["deadline"] = *body.Deadline
	}
	if body.DocumentURL != nil {
		updates["document_url"] = *body.DocumentURL
	}
	if body.DocumentTitle != nil {
		updates["document_title"] = *body.DocumentTitle
	}
	if body.Notes != nil {
		updates["notes"] = *body.Notes
	}
	if body.WorkHours != nil {
		updates["work_hours"] = *body.WorkHours
	}
	if body.IsArchived != nil {
		updates["is_archived"] = *body.IsArchived
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	updates["updated_by"] = currentUser.ID

	if err := h.db.Model(&project).Updates(updates).Error; err != nil {
		h.log.WithError(err).Error("Failed to update project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if err := h.db.First(&project, project.ID).Error; err != nil {
		h.log.WithError(err).Error("Failed to refresh project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if body.Status != nil && oldStatus != project.Status {
		h.notifyStatusChange(&project, currentUser, oldStatus)
	}

	assigneeChanged := body.AssigneeID != nil &&
		(oldAssigneeID == nil || *oldAssigneeID != *body.AssigneeID)

	if assigneeChanged && *body.AssigneeID != currentUser.ID {
		h.notifyAssignment(&project, *body.AssigneeID, currentUser)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": projectResponse(&project),
	})
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			h.log.WithError(err).Error("Failed to retrieve project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	canDelete := project.RequesterID == currentUser.ID || currentUser.Role == types.RoleAdmin

	if !canDelete {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this project"})
		return
	}

	if err := h.db.Delete(&project).Error; err != nil {
		h.log.WithError(err).Error("Failed to delete project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) Stats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var statusStats []statusCount

	err = h.db.Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Where("is_archived = ?", false).
		Group("status").
		Scan(&statusStats).Error

	if err != nil {
		h.log.WithError(err).Error("Failed to aggregate project stats")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	var totalProjects int64

	if err := h.db.Model(&models.Project{}).Where("is_archived = ?", false).Count(&totalProjects).Error; err != nil {
		h.log.WithError(err).Error("Failed to count projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	var myProjects int64

	err = h.db.Model(&models.Project{}).
		Where("(requester_id = ? OR assignee_id = ?) AND is_archived = ?", currentUser.ID, currentUser.ID, false).
		Count(&myProjects).Error

	if err != nil {
		h.log.WithError(err).Error("Failed to count user projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	var overdueProjects int64

	err = h.db.Model(&models.Project{}).
		Where("deadline < ? AND status NOT IN ? AND is_archived = ?", time.Now(), types.TerminalStatuses, false).
		Count(&overdueProjects).Error

	if err != nil {
		h.log.WithError(err).Error("Failed to count overdue projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"statusStats":     statusStats,
		"totalProjects":   totalProjects,
		"myProjects":      myProjects,
		"overdueProjects": overdueProjects,
	})
}

// notifyAssignment dispatches the assignment event. A dispatch failure is
// logged but never fails the project mutation that triggered it.
func (h *ProjectHandler) notifyAssignment(project *models.Project, assigneeID uint, actor middleware.AuthenticatedUser) {
	var assignee models.User

	if err := h.db.First(&assignee, assigneeID).Error; err != nil {
		h.log.WithError(err).WithField("assignee_id", assigneeID).Warn("Failed to load assignee for notification")
		return
	}

	requester := actorUser(actor)

	if err := h.dispatcher.ProjectAssignment(project, &assignee, requester); err != nil {
		h.log.WithError(err).WithField("project_id", project.ID).Warn("Failed to dispatch assignment notification")
	}
}

func (h *ProjectHandler) notifyStatusChange(project *models.Project, actor middleware.AuthenticatedUser, oldStatus string) {
	var targets []*models.User

	var requester models.User

	if err := h.db.First(&requester, project.RequesterID).Error; err == nil {
		targets = append(targets, &requester)
	} else {
		h.log.WithError(err).WithField("user_id", project.RequesterID).Warn("Failed to load requester for notification")
	}

	if project.AssigneeID != nil {
		var assignee models.User

		if err := h.db.First(&assignee, *project.AssigneeID).Error; err == nil {
			targets = append(targets, &assignee)
		} else {
			h.log.WithError(err).WithField("user_id", *project.AssigneeID).Warn("Failed to load assignee for notification")
		}
	}

	if err := h.dispatcher.StatusChange(project, targets, actorUser(actor), oldStatus); err != nil {
		h.log.WithError(err).WithField("project_id", project.ID).Warn("Failed to dispatch status change notification")
	}
}

func actorUser(actor middleware.AuthenticatedUser) *models.User {
	user := models.User{
		Name:  actor.Name,
		Email: actor.Email,
		Role:  actor.Role,
	}
	user.ID = actor.ID
	return &user
}

func projectResponse(project *models.Project) ProjectResponse {
	response := ProjectResponse{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		RequesterID:   project.RequesterID,
		AssigneeID:    project.AssigneeID,
		Status:        project.Status,
		Priority:      project.Priority,
		Deadline:      project.Deadline,
		DocumentURL:   project.DocumentURL,
		DocumentTitle: project.DocumentTitle,
		Notes:         project.Notes,
		WorkHours:     project.WorkHours,
		IsArchived:    project.IsArchived,
		CreatedAt:     project.CreatedAt,
	}

	if project.Requester.ID != 0 {
		requester := userResponse(&project.Requester)
		response.Requester = &requester
	}

	if project.Assignee != nil && project.Assignee.ID != 0 {
		assignee := userResponse(project.Assignee)
		response.Assignee = &assignee
	}

	return response
}
