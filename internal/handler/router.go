package handler

import (
	"github.com/gin-gonic/gin"
)

// Routes groups the handlers and guards mounted by RegisterRoutes.
type Routes struct {
	APIPrefix string
	Intake    *IntakeHandler
	Review    *ReviewHandler
	Metrics   *MetricsHandler

	// IntakeGuard runs before public submissions, typically a rate limiter.
	IntakeGuard gin.HandlerFunc
	// AdminGuard protects the dashboard. Nil leaves it open.
	AdminGuard gin.HandlerFunc
}

// RegisterRoutes mounts operational endpoints at the root and the API under APIPrefix.
func RegisterRoutes(r *gin.Engine, routes Routes) {
	r.GET("/health", routes.Metrics.Health)
	r.GET("/ready", routes.Metrics.Ready)
	r.GET("/metrics", routes.Metrics.Prometheus)

	api := r.Group(routes.APIPrefix)
	api.GET("/batches", routes.Intake.Options)
	submit := []gin.HandlerFunc{routes.Intake.Submit}
	if routes.IntakeGuard != nil {
		submit = append([]gin.HandlerFunc{routes.IntakeGuard}, submit...)
	}
	api.POST("/applications", submit...)

	admin := api.Group("/admin")
	if routes.AdminGuard != nil {
		admin.Use(routes.AdminGuard)
	}
	admin.GET("/candidates", routes.Review.List)
	admin.GET("/candidates/export", routes.Review.Export)
	admin.GET("/candidates/:id", routes.Review.Get)
	admin.PATCH("/candidates/:id/flags", routes.Review.ToggleFlag)
	admin.GET("/system", routes.Metrics.Snapshot)
}
