package migrations

import (
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateStore brings the ledger schema up to date. The migration files are
// embedded by the caller; dialect must be one of goose's dialect names
// ("postgres", "sqlite3").
func MigrateStore(db *gorm.DB, dialect string, migrationFS fs.FS) error {
	goose.SetLogger(&logger{})
	goose.SetBaseFS(migrationFS)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, ".")
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Fatalf(format, v...) }
