package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel         string
	TelegramApiToken string
	TelegramChatID   string
	HTTPPort         string
	SweepInterval    time.Duration
	ReminderInterval time.Duration
	ReminderWindow   time.Duration
	DB               *DB
	Mongo            *Mongo
}

type DB struct {
	Host     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Mongo struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

var ErrEnvNotFound = errors.New("err env not found")

func (a *App) loadConfig(confFileName string) error {
	var cfg Config
	var db DB
	var mongo Mongo

	err := godotenv.Load(confFileName)
	if err != nil {
		return err
	}

	cfg.LogLevel = cfg.setDefault("LOG_LEVEL", "INFO")
	cfg.HTTPPort = cfg.setDefault("HTTP_PORT", "8080")

	if cfg.TelegramApiToken, err = cfg.set("TELEGRAM_API_TOKEN"); err != nil {
		return err
	}

	if cfg.TelegramChatID, err = cfg.set("TELEGRAM_CHAT_ID"); err != nil {
		return err
	}

	if cfg.SweepInterval, err = cfg.setDuration("SWEEP_INTERVAL", 10*time.Second); err != nil {
		return err
	}

	if cfg.ReminderInterval, err = cfg.setDuration("REMINDER_INTERVAL", 10*time.Second); err != nil {
		return err
	}

	if cfg.ReminderWindow, err = cfg.setDuration("REMINDER_WINDOW", 30*time.Second); err != nil {
		return err
	}

	if db.Host, err = cfg.set("PG_HOST"); err != nil {
		return err
	}

	if db.User, err = cfg.set("PG_USER"); err != nil {
		return err
	}

	if db.Password, err = cfg.set("PG_PASSWORD"); err != nil {
		return err
	}

	if db.DBName, err = cfg.set("PG_DBNAME"); err != nil {
		return err
	}

	if db.SSLMode, err = cfg.set("PG_SSL_MODE"); err != nil {
		return err
	}

	if mongo.Host, err = cfg.set("MONGO_HOST"); err != nil {
		return err
	}

	if mongo.Port, err = cfg.set("MONGO_PORT"); err != nil {
		return err
	}

	if mongo.User, err = cfg.set("MONGO_USER"); err != nil {
		return err
	}

	if mongo.Password, err = cfg.set("MONGO_PASSWORD"); err != nil {
		return err
	}

	if mongo.DBName, err = cfg.set("MONGO_DBNAME"); err != nil {
		return err
	}

	cfg.DB = &db
	cfg.Mongo = &mongo

	a.Config = &cfg

	return nil
}

func (d *DB) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode)
}

func (m *Mongo) DSN() string {
	return fmt.Sprintf("mongodb://%s:%s", m.Host, m.Port)
}

func (c *Config) set(key string) (string, error) {
	if os.Getenv(key) == "" {
		return "", ErrEnvNotFound
	}

	return os.Getenv(key), nil
}

func (c *Config) setDefault(key, def string) string {
	if os.Getenv(key) == "" {
		return def
	}

	return os.Getenv(key)
}

func (c *Config) setDuration(key string, def time.Duration) (time.Duration, error) {
	if os.Getenv(key) == "" {
		return def, nil
	}

	return time.ParseDuration(os.Getenv(key))
}
