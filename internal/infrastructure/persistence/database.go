package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/infrastructure/config"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const connectTimeout = 5 * time.Second

// ErrSchemaNotMigrated is returned by SchemaVersion when cmd/migrate has
// never run against the database
var ErrSchemaNotMigrated = errors.New("database schema has not been migrated")

// Database is the ledger's PostgreSQL connection pool
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the pool, logs SQL through zap and waits for the server
// to answer a ping
func NewDatabase(cfg *config.DatabaseConfig, zapLogger *zap.Logger) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(cfg.LogLevel), cfg.SlowQueryThresh),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	d := &Database{DB: db}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := d.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return d, nil
}

// PingContext checks that the database answers
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// SchemaVersion reads the version golang-migrate recorded. A dirty schema
// means a migration failed halfway and must be forced before serving.
func (d *Database) SchemaVersion(ctx context.Context) (version uint, dirty bool, err error) {
	var rows []struct {
		Version int64
		Dirty   bool
	}
	err = d.DB.WithContext(ctx).
		Raw("SELECT version, dirty FROM schema_migrations LIMIT 1").
		Scan(&rows).Error
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, ErrSchemaNotMigrated
	}
	return uint(rows[0].Version), rows[0].Dirty, nil
}

// Close closes the pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.Close()
}
