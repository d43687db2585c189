package infra

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"photowalk/internal/config"
	dbm "photowalk/internal/models/db_models"
)

// OpenDatabase connects to the configured database and migrates the walk
// tables. A connection failure is not fatal: it is logged and nil is
// returned, and every repository then reports ErrNoDatabase.
func OpenDatabase(cfg config.Config, log *zap.Logger) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		db, err = OpenSQLite(cfg.SQLitePath)
	default:
		if cfg.PostgresURL == "" {
			log.Warn("POSTGRES_URL is empty, running without a database")
			return nil
		}
		db, err = gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}
	if err != nil {
		log.Warn("Error connecting to database, running without one",
			zap.String("driver", cfg.DBDriver), zap.Error(err))
		return nil
	}

	if err := Migrate(db); err != nil {
		log.Warn("Error migrating database, running without one", zap.Error(err))
		CloseDatabase(db, log)
		return nil
	}

	log.Info("Database connected", zap.String("driver", cfg.DBDriver))
	return db
}

// OpenSQLite opens a sqlite file. ":memory:" databases are pinned to one
// connection so every query sees the same schema.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&dbm.Walk{},
		&dbm.Photo{},
		&dbm.WalkRoute{},
		&dbm.UploadedImage{},
	)
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Database connection closed successfully")
	}
}
