package app

import (
	"onlinetest_backend/internal/middleware"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.GET("/api/v1/health", c.health.HealthCheck)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.Codec))

	// authoring surface, admins only
	admin := api.Group("/")
	admin.Use(middleware.RoleMiddleware(claims.RoleAdmin, claims.RoleSuperAdmin))
	{
		admin.POST("/topics", c.topic.Create)
		admin.GET("/topics", c.topic.List)
		admin.GET("/topics/:id", c.topic.Get)
		admin.PUT("/topics/:id", c.topic.Update)
		admin.DELETE("/topics/:id", c.topic.Delete)

		// question reads stay admin-only; employees only ever see
		// questions through a sitting, with the answer stripped
		admin.POST("/questions", c.question.Create)
		admin.GET("/questions", c.question.List)
		admin.GET("/questions/:id", c.question.Get)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/exams", c.exam.Create)
		admin.GET("/exams", c.exam.Search)
		admin.GET("/exams/:id", c.exam.Get)
		admin.PUT("/exams/:id", c.exam.Update)
		admin.DELETE("/exams/:id", c.exam.Delete)
		admin.GET("/exams/:id/assignments", c.assignment.ListByExam)

		admin.POST("/assignments", c.assignment.Assign)
		admin.DELETE("/assignments/:id", c.assignment.Revoke)

		admin.GET("/employees", c.employee.List)
	}

	// attempt reads are shared: employees review their own attempts,
	// admins review any attempt of their company
	shared := api.Group("/")
	shared.Use(middleware.RoleMiddleware())
	{
		shared.GET("/assignments/:id/attempts", c.submission.ListAttempts)
		shared.GET("/attempts/:id/review", c.submission.Review)
	}

	// sitting surface, employees only
	employee := api.Group("/")
	employee.Use(middleware.RoleMiddleware(claims.RoleEmployee))
	{
		employee.GET("/assignments/my", c.assignment.ListMine)
		employee.POST("/assignments/:id/start", c.assignment.Start)
		employee.POST("/submissions", c.submission.Submit)
		employee.GET("/dashboard/score-distribution", c.dashboard.ScoreDistribution)
	}
}
