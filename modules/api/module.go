package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/example/task-api/modules/auth"
	"github.com/example/task-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the application shell: it composes the middleware chain,
// mounts the task router and the documentation exporter, and delegates
// the auth prefix to the session collaborator.
type APIModule struct {
	app         *fiber.App
	taskPort    task.TaskPort
	authPort    auth.AuthPort
	routes      []Route
	logger      *slog.Logger
	port        string
	env         string
	corsOrigins string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule configured from the environment.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://localhost:5173"
	}
	return &APIModule{
		logger:      slog.Default(),
		port:        port,
		env:         os.Getenv("APP_ENV"),
		corsOrigins: corsOrigins,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"task", "auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	}
}

// Start builds the Fiber app and begins serving.
func (m *APIModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}

	m.initApp()

	// Start server in goroutine with startup error detection.
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// initApp assembles the middleware chain and routes in their strict
// pipeline order.
func (m *APIModule) initApp() {
	m.app = fiber.New(fiber.Config{
		AppName:               apiTitle,
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	m.app.Use(favicon.New())
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))

	// Permissive cross-origin rules apply only to the auth prefix.
	m.app.Use(AuthPrefix, cors.New(cors.Config{
		AllowOrigins:     m.corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	m.app.Use(SessionMiddleware(m.authPort))
	m.app.All(AuthPrefix+"/*", DelegateAuth(m.authPort))

	handlers := NewHandlers(m.taskPort)
	m.routes = taskRoutes(handlers)
	for _, route := range m.routes {
		m.app.Add(route.Method, route.Path, route.Handler)
	}

	m.app.Get("/doc", m.handleOpenAPI)
	m.app.Get("/reference", m.handleReference)
	m.app.Get("/llms", m.handleReference)
	m.app.Get("/llms.txt", m.handleLLMsText)
	m.app.Get("/api/", m.handleAPIInfo)
	m.app.Get("/health", m.handleHealth)

	// Uniform body for anything no route matched.
	m.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	})
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// handleAPIInfo serves API metadata at the API root.
func (m *APIModule) handleAPIInfo(c *fiber.Ctx) error {
	return c.JSON(APIInfoResponse{
		Name:    apiTitle,
		Version: apiVersion,
		Docs: map[string]string{
			"openapi":   "/doc",
			"reference": "/reference",
			"llms":      "/llms.txt",
		},
	})
}

// handleHealth serves the shell's own health summary.
func (m *APIModule) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// errorHandler renders unhandled failures as a uniform body. In the
// production posture internal error details never reach the client.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if m.env != "production" || code < fiber.StatusInternalServerError {
			message = e.Message
		}
	} else if m.env != "production" {
		message = err.Error()
	}

	errorCode := "internal_error"
	if code < fiber.StatusInternalServerError {
		errorCode = "request_error"
	}
	return c.Status(code).JSON(ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
