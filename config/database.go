package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campus-event-chat/config/common"
	"campus-event-chat/config/logger"
	"campus-event-chat/entity"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) (*DBConfig, error) {
	db, err := initDatabase(config, log)
	if err != nil {
		return nil, err
	}
	return &DBConfig{DB: db, AppLogger: log}, nil
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

// Close releases the connection pool.
func (db *DBConfig) Close() error {
	conn, err := db.DB.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func dialector(cfg common.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.TimeZone,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) (*gorm.DB, error) {
	dbConfig := cfg.GetDatabaseConfig()
	dial, err := dialector(dbConfig)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		NamingStrategy: common.NamingStrategy(),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Http.Error.Error().Err(err).Str("driver", dbConfig.Driver).Msg("failed to connect to database")
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Http.Info.Info().Str("driver", dbConfig.Driver).Msg("Connection Opened to Database")

	conn, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}

	if err := db.AutoMigrate(entity.Models()...); err != nil {
		log.Http.Error.Error().Err(err).Msg("failed run migration")
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if dbConfig.Driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxIdleConns(10)
		conn.SetMaxOpenConns(100)
	}
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db, nil
}
