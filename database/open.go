package database

import (
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the configured relational database. Reads are routed
// to DB_REPLICA_DSN when it is set.
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DBDriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true,
		})
	case config.DBDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, errs.NewStorageFailure("create", "database directory", err)
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errs.NewConfigInvalidError("DB_DRIVER", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	if cfg.ReplicaDSN != "" && cfg.Driver == config.DBDriverPostgres {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  cfg.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, errs.NewDatabaseError("register replica for", "database", err)
		}
		zlog.Info().Msg("Read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewDatabaseError("access", "connection pool", err)
	}
	if cfg.Driver == config.DBDriverSQLite {
		// single writer; concurrent connections would hit SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(30 * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, errs.NewDatabaseError("ping", "database", err)
	}
	return db, nil
}

// newGormLogger routes gorm's log output through the global zerolog logger.
func newGormLogger() logger.Interface {
	return logger.New(
		stdlog.New(zlog.Logger, "", 0),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
