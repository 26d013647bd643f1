package database

import (
	"time"

	"chapter-api/internal/infrastructure/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config holds database configuration
type Config struct {
	DatabaseURL string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "chapter_api.",
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().Err(err).Msg("unable to connect to database")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// NewDB creates a new database connection using DSN
func NewDB(dsn string) (*gorm.DB, error) {
	return Connect(Config{
		DatabaseURL: dsn,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: 1 * time.Hour,
		LogLevel:    gormlogger.Silent,
	})
}
