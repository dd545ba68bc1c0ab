package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// ConnectDatabase opens the MySQL store, retrying while the server starts up
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Error)
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	var (
		db  *gorm.DB
		err error
	)
	attempts := max(cfg.Database.ConnectAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = openDatabase(cfg.Database, gormLogger)
		if err == nil {
			break
		}
		if attempt < attempts {
			log.Printf("⏳ Database not ready (attempt %d/%d): %v", attempt, attempts, err)
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	if err != nil {
		return nil, err
	}

	DB = db
	log.Printf("✅ Database connected [%s:%s/%s]", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	return db, nil
}

func openDatabase(d DatabaseConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(buildDSN(d)), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(d.MaxIdleConns)
	sqlDB.SetMaxOpenConns(d.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(d.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// buildDSN returns the MySQL DSN. Timestamps are parsed in d.Timezone.
func buildDSN(d DatabaseConfig) string {
	tz := d.Timezone
	if tz == "" {
		tz = "Asia/Seoul"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, url.QueryEscape(tz))
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck pings the database
func HealthCheck(ctx context.Context) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
