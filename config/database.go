package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector memilih driver gorm sesuai DB_DRIVER.
func (d Database) Dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case "", "mysql":
		// loc=UTC supaya kolom DATE/TIME tidak bergeser zona waktu
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Name)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.User, d.Password, d.Name)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(d.Path + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
}

// InitDB membuka koneksi database dan mengatur pool.
func InitDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.DB.Dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}
