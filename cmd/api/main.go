package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/qonnected/qonnected-backend/api/routes"
	"github.com/qonnected/qonnected-backend/internal/config"
	"github.com/qonnected/qonnected-backend/internal/handlers"
	mongorepo "github.com/qonnected/qonnected-backend/internal/repositories/mongodb"
	"github.com/qonnected/qonnected-backend/internal/services"
	"github.com/qonnected/qonnected-backend/pkg/mailer"
	mongodb "github.com/qonnected/qonnected-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	paymentRepo := mongorepo.NewPaymentRepository(db)
	notificationRepo := mongorepo.NewNotificationRepository(db)
	proofStore, err := mongorepo.NewProofStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize proof store: %v", err)
	}

	// Outbound mail
	var mail mailer.Mailer
	if cfg.SMTP.MockMailer {
		mail = mailer.NewMockMailer()
	} else {
		mail = mailer.NewSMTPMailer(cfg)
	}

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	paymentService := services.NewPaymentService(paymentRepo, notificationRepo, proofStore, mail, cfg)
	dashboardService := services.NewDashboardService(paymentRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		PaymentHandler:      handlers.NewPaymentHandler(paymentService),
		ReviewHandler:       handlers.NewReviewHandler(paymentService),
		DashboardHandler:    handlers.NewDashboardHandler(dashboardService),
		UserHandler:         handlers.NewUserHandler(userService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
