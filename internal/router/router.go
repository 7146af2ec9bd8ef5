package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planhub-dev/planhub/internal/handlers"
	"github.com/planhub-dev/planhub/internal/middleware"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Projects      *handlers.ProjectHandler
	Notifications *handlers.NotificationHandler
	Settings      *handlers.SettingsHandler
	Emails        *handlers.EmailHandler
}

func New(db *gorm.DB, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.AuthMiddleware(db), h.Auth.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(db), h.Auth.UpdateUser)
		}

		users := api.Group("/users", middleware.AuthMiddleware(db))
		{
			users.GET("", h.Users.List)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware(db))
		{
			projects.POST("", h.Projects.Create)
			projects.GET("", h.Projects.List)
			projects.GET("/stats/overview", h.Projects.Stats)
			projects.GET("/:project_id", h.Projects.Get)
			projects.PUT("/:project_id", h.Projects.Update)
			projects.DELETE("/:project_id", h.Projects.Delete)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware(db))
		{
			notifications.GET("", h.Notifications.List)
			notifications.GET("/unread-count", h.Notifications.UnreadCount)
			notifications.PUT("/read-all", h.Notifications.MarkAllRead)
			notifications.PUT("/:notification_id/read", h.Notifications.MarkRead)
			notifications.DELETE("/read", h.Notifications.DeleteRead)
			notifications.DELETE("/:notification_id", h.Notifications.Delete)
			notifications.POST("/scan", middleware.AdminMiddleware(), h.Notifications.Scan)

			notifications.GET("/settings", h.Settings.Get)
			notifications.PUT("/settings", h.Settings.Update)
		}

		emails := api.Group("/emails", middleware.AuthMiddleware(db), middleware.AdminMiddleware())
		{
			emails.POST("/test", h.Emails.TestSend)
			emails.GET("/templates", h.Emails.ListTemplates)
			emails.POST("/templates/:template_name/preview", h.Emails.Preview)
			emails.POST("/send-reminders", h.Emails.SendReminders)
		}
	}

	return r
}
