package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	domain "github.com/example/task-api/domain/account"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule is the session collaborator. It owns users and sessions and
// the whole /api/auth/* surface; the rest of the system only sees the
// resolve-session and handle-request services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	dbURL   string
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule. Connection parameters come from the
// environment: DATABASE_URL selects Postgres, otherwise a local SQLite
// file at AUTH_DB_PATH is used.
func NewModule() *AuthModule {
	dbPath := os.Getenv("AUTH_DB_PATH")
	if dbPath == "" {
		dbPath = "auth.db"
	}
	return &AuthModule{
		dbURL:  os.Getenv("DATABASE_URL"),
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start opens the database, migrates the account schema and builds the
// service from environment configuration.
func (m *AuthModule) Start(_ context.Context) error {
	// TranslateError maps driver-specific unique violations onto
	// gorm.ErrDuplicatedKey, which CreateUser relies on under
	// concurrent sign-ups.
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	var (
		db  *gorm.DB
		err error
	)
	if m.dbURL != "" {
		db, err = gorm.Open(postgres.Open(m.dbURL), config)
	} else {
		db, err = gorm.Open(sqlite.Open(m.dbPath), config)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewAccountRepository(db)
	hasher := NewPasswordHasher(loadHashCost())
	tokens := NewTokenManager(loadTokenConfig())
	m.service = NewAuthService(repo, hasher, tokens)

	// Opportunistic cleanup of stale sessions at startup.
	if err := repo.DeleteExpiredSessions(); err != nil {
		log.Printf("[auth] Warning: failed to prune expired sessions: %v", err)
	}

	log.Printf("[auth] Module started (database: %s)", m.describeDB())
	return nil
}

// Stop closes the database connection.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.describeDB(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "resolve-session", json.Unmarshal, json.Marshal, m.resolveSession,
	); err != nil {
		return fmt.Errorf("failed to register resolve-session service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "handle-request", json.Unmarshal, json.Marshal, m.handleRequest,
	); err != nil {
		return fmt.Errorf("failed to register handle-request service: %w", err)
	}

	log.Printf("[auth] Registered services: resolve-session, handle-request")
	return nil
}

// resolveSession handles the resolve-session service request. Absent or
// invalid sessions produce Found=false, never an error.
func (m *AuthModule) resolveSession(ctx context.Context, req ResolveSessionRequest, _ *mono.Msg) (ResolveSessionResponse, error) {
	user, session, err := m.service.Resolve(ctx, req.Token)
	if err != nil {
		return ResolveSessionResponse{}, err
	}
	if user == nil {
		return ResolveSessionResponse{Found: false}, nil
	}
	return ResolveSessionResponse{
		Found:   true,
		User:    userInfo(user),
		Session: sessionInfo(session),
	}, nil
}

func (m *AuthModule) describeDB() string {
	if m.dbURL != "" {
		return "postgres"
	}
	return m.dbPath
}

// loadHashCost loads the bcrypt work factor from the environment.
func loadHashCost() int {
	raw := os.Getenv("AUTH_BCRYPT_COST")
	if raw == "" {
		return defaultHashCost
	}
	cost, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[auth] Warning: invalid AUTH_BCRYPT_COST %q, using default", raw)
		return defaultHashCost
	}
	return cost
}

// loadTokenConfig loads session token configuration from the environment.
func loadTokenConfig() TokenConfig {
	config := DefaultTokenConfig()
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		config.SecretKey = secret
	} else {
		log.Println("[auth] WARNING: AUTH_SECRET not set, using development default")
	}
	if issuer := os.Getenv("AUTH_BASE_URL"); issuer != "" {
		config.Issuer = issuer
	}
	return config
}
