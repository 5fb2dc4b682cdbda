package infra

import (
	"fmt"

	"github.com/snc99/Pay-Wise-BE/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies idempotent SQL patches that GORM cannot express (the partial
// unique indexes guarding the bookkeeping invariants).
// TranslateError is enabled so unique and foreign-key violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated and can be mapped
// centrally instead of per-controller.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates all tables and applies schema patches.
// Also used by integration tests against a disposable database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Admin{},
		&model.Customer{},
		&model.DebtCycle{},
		&model.Debt{},
		&model.Payment{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// One open cycle per customer. Concurrent debt creation races on this
		// index; the loser re-reads the winner's row (see DebtService).
		{"partial unique index: one open cycle per user", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_debt_cycles_open_user') THEN
    CREATE UNIQUE INDEX uni_debt_cycles_open_user
        ON debt_cycles (user_id)
        WHERE is_paid = false;
  END IF;
END $$`},
		// One active payment per cycle. Closes the race where two exact-amount
		// payments both observe is_paid=false before either commits.
		{"partial unique index: one active payment per cycle", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_payments_cycle_active') THEN
    CREATE UNIQUE INDEX uni_payments_cycle_active
        ON payments (cycle_id)
        WHERE deleted_at IS NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
