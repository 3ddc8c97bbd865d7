package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"employee-records-backend/internal/config"
	infraCache "employee-records-backend/internal/infrastructure/cache"
	"employee-records-backend/internal/infrastructure/database"
	"employee-records-backend/pkg/cache"

	"employee-records-backend/internal/domains/employee"
	employeeHandler "employee-records-backend/internal/domains/employee/handler"
	employeeRepo "employee-records-backend/internal/domains/employee/repository"
	employeeService "employee-records-backend/internal/domains/employee/service"
)

// Container holds every dependency of the application; it is the root of
// the dependency graph. All members are singletons for the app lifetime.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Employee domain
	EmployeeRepo    employee.Repository
	EmployeeService employee.Service
	EmployeeHandler *employeeHandler.EmployeeHandler

	redis *infraCache.RedisCache
}

// NewContainer initializes the dependency graph in order:
// config -> infrastructure (DB, cache) -> repository -> service -> handler.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(ctx); err != nil {
		// The app works without the cache; title stats just hit the
		// database every time.
		log.Printf("[REDIS] Unavailable, running without cache: %v", err)
	} else {
		c.Cache = redisCache
		c.redis = redisCache
	}

	c.EmployeeRepo = employeeRepo.NewPostgresRepository(db.Pool)
	c.EmployeeService = employeeService.NewService(c.EmployeeRepo, c.Cache)
	c.EmployeeHandler = employeeHandler.NewEmployeeHandler(c.EmployeeService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[REDIS] Close failed: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
