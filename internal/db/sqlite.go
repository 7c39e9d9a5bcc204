package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

// SQLiteService is the file-backed (or in-memory) alternative to Postgres,
// used for local runs and as the test storage engine.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(dsn string, log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to open sqlite database", "error", err, "dsn", dsn)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating sqlite tables...")
	if err := s.db.AutoMigrate(
		&types.Account{},
		&types.User{},
		&types.Product{},
		&types.Addon{},
		&types.AccountProduct{},
	); err != nil {
		s.log.Error("Auto migration failed for sqlite tables", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}
