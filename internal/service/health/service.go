package health

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse is the readiness payload with per-dependency detail.
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Service runs liveness and readiness checks over the app's
// dependencies: the database, the cache, and the remote intent
// classifier. The classifier is reported degraded, never unhealthy,
// because the voice pipeline keeps working on local rules without it.
type Service struct {
	db            *sql.DB
	cache         ports.Cache
	classifierURL string
	httpClient    *http.Client
	startTime     time.Time
	version       string
	checkers      map[string]Checker
	log           *zap.Logger
	mu            sync.RWMutex
}

// Config holds health service configuration
type Config struct {
	Version       string
	DB            *sql.DB
	Cache         ports.Cache
	ClassifierURL string
}

func NewService(config *Config, log *zap.Logger) *Service {
	s := &Service{
		db:            config.DB,
		cache:         config.Cache,
		classifierURL: config.ClassifierURL,
		httpClient:    &http.Client{Timeout: 3 * time.Second},
		startTime:     time.Now(),
		version:       config.Version,
		checkers:      make(map[string]Checker),
		log:           log,
	}

	if config.DB != nil {
		s.RegisterChecker("database", s.checkDatabase)
	}
	if config.Cache != nil {
		s.RegisterChecker("cache", s.checkCache)
	}
	if config.ClassifierURL != "" {
		s.RegisterChecker("classifier", s.checkClassifier)
	}

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs every registered check concurrently and aggregates.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

func (s *Service) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "database", Timestamp: time.Now()}

	err := s.db.PingContext(ctx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("ping failed: %v", err)
		s.log.Warn("Database health check failed", zap.Error(err))
	} else {
		result.Status = StatusHealthy
		result.Message = "connection ok"
	}

	return result
}

func (s *Service) checkCache(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "cache", Timestamp: time.Now()}

	err := s.cache.Ping()
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("ping failed: %v", err)
		s.log.Warn("Cache health check failed", zap.Error(err))
	} else {
		result.Status = StatusHealthy
		result.Message = "connection ok"
	}

	return result
}

func (s *Service) checkClassifier(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "classifier", Timestamp: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.classifierURL+"/health", nil)
	if err != nil {
		result.Status = StatusDegraded
		result.Message = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	resp, err := s.httpClient.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusDegraded
		result.Message = "unreachable, local classification active"
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		result.Status = StatusDegraded
		result.Message = fmt.Sprintf("status %d, local classification active", resp.StatusCode)
		return result
	}

	result.Status = StatusHealthy
	result.Message = "connection ok"
	return result
}
