package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/observability/telemetry"
)

// NewConnection initializes a new PostgreSQL connection using GORM
func NewConnection(url string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	instrument(db)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates or updates the schema for all entities.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Material{},
		&domain.Appointment{},
		&domain.Notification{},
		&domain.Ticket{},
	)
}

// instrument records query latency for the metrics endpoint.
func instrument(db *gorm.DB) {
	db.Callback().Query().Before("gorm:query").Register("telemetry:before", func(tx *gorm.DB) {
		tx.InstanceSet("telemetry:start", time.Now())
	})
	db.Callback().Query().After("gorm:query").Register("telemetry:after", func(tx *gorm.DB) {
		if v, ok := tx.InstanceGet("telemetry:start"); ok {
			if start, ok := v.(time.Time); ok {
				telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
			}
		}
	})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
