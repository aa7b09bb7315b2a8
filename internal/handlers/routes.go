package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/homecare-scheduler/internal/middleware"
	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

// Routes mounts the API on r. authLimit guards the /auth group.
func (h *Handler) Routes(r gin.IRouter, authLimit gin.HandlerFunc) {
	authRoutes := r.Group("/auth")
	if authLimit != nil {
		authRoutes.Use(authLimit)
	}
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware()) // Protect all /api routes
	{
		apiRoutes.GET("/patients", h.ListPatients)
		apiRoutes.GET("/doctors", h.ListDoctors)
		apiRoutes.GET("/schedule", h.GetSchedule)
		apiRoutes.GET("/activity", h.GetActivity)

		apiRoutes.GET("/user/me", h.GetCurrentUser)
		apiRoutes.PUT("/user/me", h.UpdateCurrentUser)
	}

	// Session changes and team membership are for coordinators only.
	edit := apiRoutes.Group("", middleware.RequireRole(models.RoleCoordinator))
	{
		edit.POST("/team/viewers", h.AddViewer)
		edit.DELETE("/session", h.ResetSession)
		edit.POST("/patients", h.AddPatient)
		edit.DELETE("/patients", h.RemovePatient)
		edit.POST("/doctors", h.AddDoctor)
		edit.DELETE("/doctors", h.RemoveDoctor)
		edit.POST("/schedule/generate", h.GenerateSchedule)
		edit.PATCH("/schedule/reschedule", h.Reschedule)
	}
}
