package main

import (
	"context"
	"log"
	"os"

	"minigames_webapp/internal/db"
	"minigames_webapp/internal/repository"
	"minigames_webapp/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users)
	ctx := context.Background()

	email := "tester@example.com"

	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		u, err = auth.Register(ctx, email, "test-password-123", "Tester")
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d\n", u.ID)
	}

	service.InitJWT()
	token, err := service.GenerateSessionToken(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
