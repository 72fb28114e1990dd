package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/app/controllers"
	"github.com/yigit/growthpath/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	taskController *controllers.TaskController,
	workController *controllers.WorkController,
	progressController *controllers.ProgressController,
	onboardingController *controllers.OnboardingController,
	observationController *controllers.ObservationController,
	adminController *controllers.AdminController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", healthController.Health)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/levels", progressController.ListLevels)
		authenticated.GET("/mentors", progressController.ListMentors)

		tasks := authenticated.Group("/tasks")
		{
			tasks.GET("", taskController.ListTasks)
			tasks.GET("/:id", taskController.GetTask)
			tasks.POST("/submit", taskController.SubmitTask)
		}

		works := authenticated.Group("/works")
		{
			works.GET("", workController.ListWorks)
			works.GET("/:id", workController.GetWork)
			works.POST("/:id/versions", workController.SubmitNewVersion)
			works.GET("/:id/versions", workController.ListVersions)
		}

		progress := authenticated.Group("/progress")
		{
			progress.GET("", progressController.GetProgress)
			progress.POST("/unlocks/sync", progressController.SyncUnlocks)
		}

		onboarding := authenticated.Group("/onboarding")
		{
			onboarding.GET("", onboardingController.GetStatus)
			onboarding.POST("/submit", onboardingController.Submit)
		}

		authenticated.GET("/observations", observationController.ListMine)
	}

	// --- Admin routes ---
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.AdminRequired())
	{
		admin.GET("/users", adminController.ListUsers)
		admin.GET("/users/:id", adminController.GetUser)
		admin.GET("/users/:id/observations", adminController.ListUserObservations)
		admin.GET("/stats", adminController.GetStats)
		admin.GET("/works", adminController.ListWorks)
		admin.GET("/works/:id", adminController.GetWork)
		admin.POST("/works/:id/approve", adminController.ApproveWork)
		admin.GET("/observations", adminController.ListObservations)
		admin.POST("/observations", adminController.CreateObservation)
	}
}
