package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "catalog", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.Account{},
		&types.User{},
		&types.Product{},
		&types.Addon{},
		&types.AccountProduct{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	// The check-then-insert paths in the services leave a race window;
	// these constraints are the storage-level backstop that turns the
	// losing request into a translatable duplicate-key error.
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		table string
		name  string
		ddl   string
	}{
		{
			table: "addon",
			name:  "fk_addon_product_id",
			ddl:   `FOREIGN KEY ("product_id") REFERENCES "product"("id") ON DELETE CASCADE`,
		},
		{
			table: "account_product",
			name:  "fk_account_product_account_id",
			ddl:   `FOREIGN KEY ("account_id") REFERENCES "account"("id") ON DELETE CASCADE`,
		},
		{
			table: "account_product",
			name:  "fk_account_product_product_id",
			ddl:   `FOREIGN KEY ("product_id") REFERENCES "product"("id") ON DELETE CASCADE`,
		},
		{
			table: "user",
			name:  "fk_user_account_id",
			ddl:   `FOREIGN KEY ("account_id") REFERENCES "account"("id") ON DELETE CASCADE`,
		},
	}
	for _, c := range constraints {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, c.table, c.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("failed to drop %s: %w", c.name, err)
		}
		add := fmt.Sprintf(`ALTER TABLE %q ADD CONSTRAINT %q %s`, c.table, c.name, c.ddl)
		if err := s.db.Exec(add).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
