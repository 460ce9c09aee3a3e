package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"github.com/jon4hz/playbox/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dsnPragmas enables foreign keys, which SQLite leaves off by default, and lets readers
// and a writer work side by side.
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New opens the store described by cfg, migrates it and optionally seeds the demo data set.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("database config is required")
	}

	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	path := cfg.Path()
	if cfg.Recreate {
		log.Info("recreating database", "path", path)
		for _, f := range []string{path, path + "-wal", path + "-shm"} {
			if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to remove database file: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path+dsnPragmas), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	c := &Client{db: db}
	if err := c.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Seed {
		if err := Seed(ctx, db); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Migrate creates or updates the schema.
func (c *Client) Migrate(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(
		&Playlist{},
		&Multimedia{},
		&PlaylistMultimedia{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DB returns the underlying gorm handle.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Close releases the connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats holds the row count of every table.
type Stats struct {
	Playlists   int64
	Multimedia  int64
	Memberships int64
}

// Stats counts the rows of every table.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	db := c.db.WithContext(ctx)
	if err := db.Model(&Playlist{}).Count(&s.Playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to count playlists: %w", err)
	}
	if err := db.Model(&Multimedia{}).Count(&s.Multimedia).Error; err != nil {
		return nil, fmt.Errorf("failed to count multimedia items: %w", err)
	}
	if err := db.Model(&PlaylistMultimedia{}).Count(&s.Memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to count memberships: %w", err)
	}
	return &s, nil
}

// newGormLogger routes gorm's own logging through charmbracelet/log. SQL tracing is only
// enabled at debug level, store errors are returned to the caller anyway.
func newGormLogger() logger.Interface {
	level := logger.Silent
	if log.GetLevel() == log.DebugLevel {
		level = logger.Info
	}
	return logger.New(log.Default().StandardLog(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
