package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freelance-backend/config"
	"freelance-backend/controllers"
	"freelance-backend/routes"
	"freelance-backend/services"
	"freelance-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	config.SetupLogger(cfg)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	accounts := services.NewAccountService(db, tokens, cfg.BcryptCost)
	projects := services.NewProjectService(db, cfg.OrderPrefix)
	comments := services.NewCommentService(db)

	var notifier services.Notifier = services.LogNotifier{}
	if cfg.TwilioConfigured() {
		notifier = services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
	}
	reminders := services.NewReminderService(db, notifier, cfg.ReminderToNumber, cfg.ReminderDaysAhead)
	if cfg.ReminderEnabled {
		scheduler, err := reminders.StartScheduler(cfg.ReminderCron)
		if err != nil {
			logrus.WithError(err).Fatal("failed to start reminder scheduler")
		}
		defer scheduler.Stop()
	}

	r := routes.SetupRouter(routes.Handlers{
		Auth:         &controllers.AuthController{Accounts: accounts},
		Projects:     &controllers.ProjectController{Projects: projects, Comments: comments},
		Clients:      &controllers.ClientController{Clients: services.NewClientService(db)},
		Services:     &controllers.ServiceController{Catalog: services.NewCatalogService(db)},
		Dashboard:    &controllers.DashboardController{Projects: projects},
		Results:      &controllers.ResultController{Projects: projects, Comments: comments},
		Reminders:    &controllers.ReminderController{Reminders: reminders},
		Verify:       accounts.VerifyUserID,
		LoginLimiter: utils.NewIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst, 15*time.Minute),
		CORSOrigins:  cfg.CORSOrigins,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server gracefully ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}
	logrus.Info("Server exiting")
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
