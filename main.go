package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-api/modules/api"
	"github.com/example/task-api/modules/auth"
	"github.com/example/task-api/modules/notification"
	"github.com/example/task-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Local development configuration; absence is fine in production.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevelFromEnv()),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then dependent modules.
	app.Register(auth.NewModule())         // Session collaborator (no dependencies)
	app.Register(notification.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule())         // Core domain (emits events)
	app.Register(api.NewModule())          // Application shell (depends on task, auth)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func logLevelFromEnv() mono.LogLevel {
	switch os.Getenv("LOG_LEVEL") {
	case "error":
		return mono.LogLevelError
	default:
		return mono.LogLevelInfo
	}
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /api/tasks         - List all tasks")
	log.Println("  POST   /api/tasks         - Create a task")
	log.Println("  GET    /api/tasks/:id     - Get a task by ID")
	log.Println("  PATCH  /api/tasks/:id     - Partially update a task")
	log.Println("  DELETE /api/tasks/:id     - Delete a task")
	log.Println("  *      /api/auth/*        - Session collaborator (sign-up, sign-in, sign-out, session)")
	log.Println("  GET    /api/              - API metadata")
	log.Println("")
	log.Println("Documentation:")
	log.Println("  GET    /doc               - OpenAPI document")
	log.Println("  GET    /reference, /llms  - Interactive API reference")
	log.Println("  GET    /llms.txt          - Plain-text API summary")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
