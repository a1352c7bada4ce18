package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/app/service"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/repository"
	"inkwell/internal/platform/avatar"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/database"
	"inkwell/internal/platform/mail"
	"inkwell/internal/platform/session"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database connected and migrated.")

	// 3. Initialize Session Store (Redis)
	rdb, err := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL, cfg.RememberTTL)
	log.Println("Redis session store connected.")

	// 4. Collaborators
	resetTokens := security.NewResetTokens(cfg.SecretKey, cfg.ResetTokenTTL)

	var mailer mail.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPassword)
	} else {
		mailer = mail.LogMailer{}
	}

	avatars, err := avatar.NewStorage(cfg.AvatarDir)
	if err != nil {
		log.Fatalf("Avatar storage init failed: %v", err)
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	postRepo := repository.NewPgPostRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, sessions, cfg.BcryptCost)
	accountService := service.NewAccountService(userRepo, resetTokens, mailer, cfg.BcryptCost, cfg.BaseURL)
	postService := service.NewPostService(postRepo, userRepo, cfg.PostsPerPage)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, accountService, postService, avatars, cfg.AvatarDir)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
