package routes

import (
	"net/http"
	"slices"

	"freelance-backend/config"
	"freelance-backend/controllers"
	"freelance-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires. Reminders is optional.
type Handlers struct {
	Auth      *controllers.AuthController
	Projects  *controllers.ProjectController
	Clients   *controllers.ClientController
	Services  *controllers.ServiceController
	Dashboard *controllers.DashboardController
	Results   *controllers.ResultController
	Reminders *controllers.ReminderController

	Verify       utils.CredentialVerifier
	LoginLimiter *utils.IPRateLimiter
	CORSOrigins  []string
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(h.CORSOrigins) == 0 || slices.Contains(h.CORSOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = h.CORSOrigins
	}
	r.Use(cors.New(corsConfig))

	r.Use(config.PerformanceLogger())

	r.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Freelance Management API is running!",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":      "/api/auth",
				"projects":  "/api/projects",
				"clients":   "/api/clients",
				"services":  "/api/services",
				"dashboard": "/api/projects/stats/dashboard",
				"public":    "/api/public/projects/:id",
			},
		})
	})

	auth := r.Group("/api/auth")
	{
		throttled := auth.Group("")
		if h.LoginLimiter != nil {
			throttled.Use(h.LoginLimiter.Middleware())
		}
		throttled.POST("/register", h.Auth.Register)
		throttled.POST("/login", h.Auth.Login)

		auth.GET("/profile", utils.AuthMiddleware(h.Verify), h.Auth.GetProfile)
		auth.POST("/verify-token", utils.AuthMiddleware(h.Verify), h.Auth.VerifyToken)
	}

	// Result page routes, reachable without a credential
	public := r.Group("/api/public")
	{
		public.GET("/projects/:id", h.Results.GetResult)
		public.POST("/projects/:id/comments", h.Results.AddClientComment)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(h.Verify))
	{
		projects := api.Group("/projects")
		{
			projects.GET("", h.Projects.GetProjects)
			projects.POST("", h.Projects.CreateProject)
			projects.GET("/next-number", h.Dashboard.GetNextOrderNumber)
			projects.GET("/stats/dashboard", h.Dashboard.GetDashboardStats)
			projects.GET("/:id", h.Projects.GetProject)
			projects.PUT("/:id", h.Projects.UpdateProject)
			projects.DELETE("/:id", h.Projects.DeleteProject)
			projects.GET("/:id/comments", h.Projects.GetComments)
			projects.POST("/:id/comments", h.Projects.AddComment)
		}

		clients := api.Group("/clients")
		{
			clients.GET("", h.Clients.GetClients)
			clients.POST("", h.Clients.CreateClient)
			clients.GET("/:id", h.Clients.GetClient)
			clients.PUT("/:id", h.Clients.UpdateClient)
			clients.DELETE("/:id", h.Clients.DeleteClient)
		}

		services := api.Group("/services")
		{
			services.GET("", h.Services.GetServices)
			services.POST("", h.Services.CreateService)
			services.GET("/:id", h.Services.GetService)
			services.PUT("/:id", h.Services.UpdateService)
			services.DELETE("/:id", h.Services.DeleteService)
		}

		if h.Reminders != nil {
			reminders := api.Group("/reminders")
			{
				reminders.POST("/run", h.Reminders.RunReminders)
				reminders.GET("/logs", h.Reminders.GetReminderLogs)
			}
		}
	}

	return r
}
