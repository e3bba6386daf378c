package main

import (
	"fitcoach-web/internal/audit"
	"fitcoach-web/internal/guard"
	"fitcoach-web/internal/webapp"
	"fitcoach-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h webapp.Handlers, auditSvc *audit.Service) {
	// The guard runs before every handler; denials are audited best-effort.
	r.Use(guard.Middleware(func(c *gin.Context, d guard.Decision) {
		if d.Action != guard.RedirectForbidden {
			return
		}
		err := auditSvc.LogAccessDenied(
			c.Request.Context(),
			d.Role.String(),
			c.ClientIP(),
			c.Request.URL.Path,
			"role not allowed for area",
		)
		if err != nil {
			logger.FromGin(c).Warn("audit append failed", "err", err)
		}
	}))

	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// auth entry points
	r.GET("/login", h.LoginView)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterView)
	r.POST("/register", h.Register)
	r.POST("/complete-registration", h.CompleteRegistration)
	r.POST("/logout", h.Logout)
	r.GET("/forbidden", h.Forbidden)

	// ADMIN area: guard admits Admin and Owner only.
	admin := r.Group("/admin")
	{
		admin.GET("", h.AdminHome)
		admin.GET("/users", h.AdminUsers)
		admin.POST("/users/:id/block", h.BlockUser)
		admin.POST("/users/:id/unblock", h.UnblockUser)
	}

	// PERSONAL (trainer) area.
	personal := r.Group("/personal")
	{
		personal.GET("", h.PersonalHome)
		personal.GET("/students", h.PersonalStudents)
		personal.POST("/invite", h.InviteStudent)
		personal.GET("/workouts", h.ListWorkouts)
		personal.POST("/workouts", h.CreateWorkout)
	}

	// STUDENT area.
	student := r.Group("/student")
	{
		student.GET("", h.StudentHome)
		student.GET("/plan", h.ListWorkouts)
	}

	// Any authenticated role.
	r.GET("/profile", h.Profile)
}
