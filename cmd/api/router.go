package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-records-backend/internal/shared/middleware"
	"employee-records-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupEmployeeRoutes(v1, c)
		setupTitleRoutes(v1, c)
	}

	return router
}

// ========================================
// EMPLOYEE ROUTES
// ========================================
func setupEmployeeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	employees := v1.Group("/employees")
	{
		employees.GET("", c.EmployeeHandler.ListEmployees)
		employees.GET("/search", c.EmployeeHandler.SearchEmployees)
		employees.GET("/:id", c.EmployeeHandler.GetEmployee)
		employees.POST("", c.EmployeeHandler.CreateEmployee)
		employees.GET("/:id/salaries", c.EmployeeHandler.GetSalaryHistory)
		employees.POST("/:id/salaries", c.EmployeeHandler.AddSalary)
	}
}

// ========================================
// TITLE ROUTES
// ========================================
func setupTitleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/titles", c.EmployeeHandler.GetTitleStats)
}

// healthCheckHandler reports database (and cache, when configured)
// connectivity.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}

		if c.Cache != nil {
			checks["cache"] = "ok"
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				checks["cache"] = err.Error()
			}
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
