package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var ErrMissingAdminCredentials = errors.New("admin credentials are not configured")

type Config struct {
	Env      string `yaml:"env"`
	Port     string `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
	SeedData bool   `yaml:"seed_data"`

	DB    Database `yaml:"database"`
	Auth  Auth     `yaml:"auth"`
	HTTP  HTTP     `yaml:"http"`
	Redis Redis    `yaml:"redis"`
	AMQP  AMQP     `yaml:"amqp"`
}

type Database struct {
	Driver   string `yaml:"driver"` // mysql | postgres | sqlite
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"` // sqlite file
}

type Auth struct {
	AdminUsername     string        `yaml:"admin_username"`
	AdminPassword     string        `yaml:"admin_password"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	JWTSecret         string        `yaml:"jwt_secret"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

type HTTP struct {
	AllowedOrigin string `yaml:"cors_origin"`
	RateLimit     int    `yaml:"rate_limit"`
	RateInterval  int    `yaml:"rate_interval"` // detik
}

type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type AMQP struct {
	URL string `yaml:"url"`
}

// Default -> nilai bawaan sebelum file dan env dibaca
func Default() *Config {
	return &Config{
		Env:      "development",
		Port:     "8080",
		GinMode:  "debug",
		LogLevel: "info",
		DB: Database{
			Driver: "mysql",
			Host:   "127.0.0.1",
			Port:   "3306",
			User:   "root",
			Name:   "restaurant_db",
			Path:   "restaurant.db",
		},
		Auth: Auth{
			AdminUsername: "admin",
			TokenTTL:      24 * time.Hour,
		},
		HTTP: HTTP{
			AllowedOrigin: "*",
			RateLimit:     50,
			RateInterval:  1,
		},
		Redis: Redis{
			CacheTTL: 30 * time.Second,
		},
	}
}

// Load membaca CONFIG_FILE (opsional, yaml) lalu menimpa dengan environment variable.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (cfg *Config) applyEnv() {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setBool(&cfg.SeedData, "SEED_DATA")

	setString(&cfg.DB.Driver, "DB_DRIVER")
	setString(&cfg.DB.Host, "DB_HOST")
	setString(&cfg.DB.Port, "DB_PORT")
	setString(&cfg.DB.User, "DB_USER")
	setString(&cfg.DB.Password, "DB_PASSWORD")
	setString(&cfg.DB.Name, "DB_NAME")
	setString(&cfg.DB.Path, "DB_PATH")

	setString(&cfg.Auth.AdminUsername, "ADMIN_USERNAME")
	setString(&cfg.Auth.AdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setDuration(&cfg.Auth.TokenTTL, "TOKEN_TTL")

	setString(&cfg.HTTP.AllowedOrigin, "CORS_ORIGIN")
	setInt(&cfg.HTTP.RateLimit, "RATE_LIMIT")
	setInt(&cfg.HTTP.RateInterval, "RATE_INTERVAL")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setDuration(&cfg.Redis.CacheTTL, "CACHE_TTL")

	setString(&cfg.AMQP.URL, "AMQP_URL")
}

// finalize memastikan kredensial admin tersedia. Password plain di-hash sekali di sini
// supaya yang tersimpan di memori hanya hash bcrypt.
func (cfg *Config) finalize() error {
	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)

	if cfg.Auth.AdminUsername == "" {
		return ErrMissingAdminCredentials
	}
	if cfg.Auth.AdminPasswordHash == "" {
		if cfg.Auth.AdminPassword == "" {
			return ErrMissingAdminCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		cfg.Auth.AdminPasswordHash = string(hash)
	}
	cfg.Auth.AdminPassword = ""

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not configured")
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.HTTP.RateLimit <= 0 {
		cfg.HTTP.RateLimit = 50
	}
	if cfg.HTTP.RateInterval <= 0 {
		cfg.HTTP.RateInterval = 1
	}
	return nil
}

func (cfg *Config) IsProduction() bool {
	return cfg.Env == "production"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
