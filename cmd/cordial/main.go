package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/winslowhq/cordial/internal/api"
	"github.com/winslowhq/cordial/internal/cli"
	"github.com/winslowhq/cordial/internal/db"
	"github.com/winslowhq/cordial/internal/mail"
)

func main() {
	_ = godotenv.Load()

	dbPath := getEnv("DB_PATH", filepath.Join("data", "cordial.db"))

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) < 3 {
			log.Fatal("usage: cordial reset-password <email>")
		}
		if err := cli.RunResetPasswordCommand(dbPath, os.Args[2]); err != nil {
			log.Fatalf("reset-password failed: %v", err)
		}
		return
	}

	port := getEnv("PORT", "8080")
	appURL := getEnv("APP_URL", "http://localhost:"+port)
	cookieSecure := getEnv("COOKIE_SECURE", "false") == "true"
	redisAddr := getEnv("REDIS_ADDR", "")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var mailer mail.Enqueuer = mail.NoopEnqueuer{}
	if redisAddr != "" {
		mailer = mail.NewTaskEnqueuer(redisAddr)
		worker := mail.NewWorker(redisAddr, appURL, mail.SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@cordial.local"),
		})
		if err := worker.Start(lifecycleCtx); err != nil {
			log.Fatalf("mail worker init failed: %v", err)
		}
	}

	handler := api.NewHandler(database, api.Config{
		CookieSecure: cookieSecure,
		AppURL:       appURL,
		Mailer:       mailer,
		Google: api.GoogleOAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
	})

	app := fiber.New(fiber.Config{
		AppName:               "Cordial",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.SessionGate)

	app.Static("/static", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Cordial listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
