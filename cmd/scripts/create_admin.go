package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/qonnected/qonnected-backend/internal/config"
	"github.com/qonnected/qonnected-backend/internal/models"
	mongorepo "github.com/qonnected/qonnected-backend/internal/repositories/mongodb"
	mongodb "github.com/qonnected/qonnected-backend/pkg/mongodb"
	"golang.org/x/crypto/bcrypt"
)

// Bootstraps the first admin account. Run once against a fresh database:
//
//	go run ./cmd/scripts -email admin@example.com -password ... -name "Admin"
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Administrator", "admin display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	userRepo := mongorepo.NewUserRepository(client.Database(cfg.MongoDB.Database))

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := &models.User{
		Email:         *email,
		Password:      string(hashed),
		FullName:      *name,
		Role:          models.RoleAdmin,
		Status:        models.UserStatusActive,
		EmailVerified: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s (%s)", admin.Email, admin.ID.Hex())
}
