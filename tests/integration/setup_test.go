package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/cache"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/storage/postgres"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

// TestEnv holds the shared containers and connections for the suite.
type TestEnv struct {
	DB    *gorm.DB
	Cache ports.Cache

	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
}

var testEnv *TestEnv

// SetupTestEnvironment initializes containers once per test binary.
// CI can point DATABASE_URL and REDIS_URL at external services instead.
func SetupTestEnvironment(t *testing.T) *TestEnv {
	t.Helper()

	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}
	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	db, err := postgres.NewConnection(os.Getenv("DATABASE_URL"), logger)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgres.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	appCache, err := cache.NewRedisCache(redisURL, logger)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	testEnv = &TestEnv{DB: db, Cache: appCache, Logger: logger}
	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	postgresContainer, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		pgcontainer.WithDatabase("studai_test"),
		pgcontainer.WithUsername("studai"),
		pgcontainer.WithPassword("studai_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	pgHost, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}
	pgPort, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}

	connStr := fmt.Sprintf("postgres://studai:studai_test@%s:%s/studai_test?sslmode=disable", pgHost, pgPort.Port())

	db, err := postgres.NewConnection(connStr, logger)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	if err := postgres.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	redisContainer, err := rediscontainer.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis host: %v", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get redis port: %v", err)
	}

	appCache, err := cache.NewRedisCache(
		fmt.Sprintf("redis://%s:%s", redisHost, redisPort.Port()), logger)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	testEnv = &TestEnv{
		DB:                db,
		Cache:             appCache,
		PostgresContainer: postgresContainer,
		RedisContainer:    redisContainer,
		Logger:            logger,
	}
	return testEnv
}

// CleanDatabase truncates all application tables between tests.
// Children go first to respect foreign keys.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := []string{
		"tickets",
		"notifications",
		"appointments",
		"materials",
		"courses",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("Failed to truncate %s: %v", table, err)
		}
	}
}

func TestMain(m *testing.M) {
	code := m.Run()

	if testEnv != nil {
		ctx := context.Background()
		if testEnv.Cache != nil {
			testEnv.Cache.Close()
		}
		if testEnv.PostgresContainer != nil {
			testEnv.PostgresContainer.Terminate(ctx)
		}
		if testEnv.RedisContainer != nil {
			testEnv.RedisContainer.Terminate(ctx)
		}
	}

	os.Exit(code)
}
