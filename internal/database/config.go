package database

import (
	"fmt"
	"time"

	"fintrack/internal/config"
)

// Config holds store connection configuration
type Config struct {
	Backend string
	Timeout time.Duration

	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	SQLitePath string

	MongoURI string
	MongoDB  string

	LocalDir string
}

// NewConfig derives the store configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Backend:    cfg.StoreBackend,
		Timeout:    cfg.StoreTimeout,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		SSLMode:    cfg.DBSSLMode,
		SQLitePath: cfg.SQLitePath,
		MongoURI:   cfg.MongoURI,
		MongoDB:    cfg.MongoDB,
		LocalDir:   cfg.LocalStoreDir,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the PostgreSQL connection URL used by golang-migrate
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
