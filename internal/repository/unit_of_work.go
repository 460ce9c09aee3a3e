package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/playbox/internal/database"
	"gorm.io/gorm"
)

// ErrFinished is returned when a unit of work is used after Commit or Close.
var ErrFinished = errors.New("unit of work already finished")

// Factory opens units of work on a store.
type Factory struct {
	db *gorm.DB
}

// NewFactory returns a factory for db.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// Begin opens a new unit of work. Every logical operation needs its own; a unit of work
// must not be shared between goroutines.
func (f *Factory) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &UnitOfWork{tx: tx}, nil
}

// UnitOfWork is one store transaction. Changes staged through its repositories become
// durable on Commit. Close discards everything that was not committed.
type UnitOfWork struct {
	tx       *gorm.DB
	finished bool
}

// Commit makes all staged changes durable.
func (u *UnitOfWork) Commit() error {
	if u.finished {
		return ErrFinished
	}
	u.finished = true
	if err := u.tx.Commit().Error; err != nil {
		if rbErr := u.tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
			log.Debug("rollback after failed commit", "error", rbErr)
		}
		return err
	}
	return nil
}

// Close rolls back if the unit of work was not committed. It never commits.
// Calling Close after Commit is a no-op, so it is safe to defer.
func (u *UnitOfWork) Close() error {
	if u.finished {
		return nil
	}
	u.finished = true
	return u.tx.Rollback().Error
}

// DB returns the transaction handle for queries that span several tables.
func (u *UnitOfWork) DB() *gorm.DB {
	return u.tx
}

// For returns a repository for T inside u. The zero value of M is used as entity mapper.
func For[T any, PT EntityPtr[T], M EntityMapper[T]](u *UnitOfWork) *Repository[T, PT] {
	var mapper M
	return NewRepository[T, PT](u.tx, mapper)
}

// Playlists returns the playlist repository of u.
func (u *UnitOfWork) Playlists() *Repository[database.Playlist, *database.Playlist] {
	return For[database.Playlist, *database.Playlist, PlaylistMapper](u)
}

// Media returns the multimedia repository of u.
func (u *UnitOfWork) Media() *Repository[database.Multimedia, *database.Multimedia] {
	return For[database.Multimedia, *database.Multimedia, MultimediaMapper](u)
}

// Memberships returns the playlist membership repository of u.
func (u *UnitOfWork) Memberships() *Repository[database.PlaylistMultimedia, *database.PlaylistMultimedia] {
	return For[database.PlaylistMultimedia, *database.PlaylistMultimedia, PlaylistMultimediaMapper](u)
}
