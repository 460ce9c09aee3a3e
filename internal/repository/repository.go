package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an update or delete targets a row that does not exist.
var ErrNotFound = errors.New("record not found")

// EntityPtr is satisfied by pointers to entities that carry a uuid identity.
type EntityPtr[T any] interface {
	*T
	Key() uuid.UUID
	SetKey(uuid.UUID)
}

// Include eagerly loads related rows into a query.
type Include = func(*gorm.DB) *gorm.DB

// Preload returns an Include for the given association path, e.g. "Memberships.Multimedia".
func Preload(path string) Include {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(path)
	}
}

// Include paths used by the facades.
var (
	IncludePlaylistMedia   = Preload("Memberships.Multimedia")
	IncludeMediumPlaylists = Preload("Memberships.Playlist")
	IncludeMembershipLinks = func(db *gorm.DB) *gorm.DB {
		return db.Preload("Playlist").Preload("Multimedia")
	}
)

// Repository provides CRUD access to one entity table inside a unit of work.
// Nothing is durable before the owning unit of work commits.
type Repository[T any, PT EntityPtr[T]] struct {
	db     *gorm.DB
	mapper EntityMapper[T]
}

// NewRepository binds a repository to db, usually the transaction of a unit of work.
func NewRepository[T any, PT EntityPtr[T]](db *gorm.DB, mapper EntityMapper[T]) *Repository[T, PT] {
	return &Repository[T, PT]{
		db:     db,
		mapper: mapper,
	}
}

// Get returns a lazily evaluated query over all rows of the table. Every call yields a
// fresh query.
func (r *Repository[T, PT]) Get(ctx context.Context, includes ...Include) Query[T] {
	return Query[T]{
		db: r.db.WithContext(ctx).Model(new(T)).Scopes(includes...).Session(&gorm.Session{}),
	}
}

// Exists reports whether a row with the identity of entity exists. An entity without an
// identity never exists.
func (r *Repository[T, PT]) Exists(ctx context.Context, entity PT) (bool, error) {
	if entity == nil || entity.Key() == uuid.Nil {
		return false, nil
	}
	count, err := r.Get(ctx).ByID(entity.Key()).Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stages entity for insertion. The identity must already be set. With includes the
// row is read back with its relations loaded.
func (r *Repository[T, PT]) Insert(ctx context.Context, entity PT, includes ...Include) (PT, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return nil, err
	}
	if len(includes) == 0 {
		return entity, nil
	}
	return r.find(ctx, entity.Key(), includes...)
}

// Update loads the stored row, merges entity into it with the entity mapper and stages the
// merged row. The merged row is returned.
func (r *Repository[T, PT]) Update(ctx context.Context, entity PT, includes ...Include) (PT, error) {
	existing, err := r.find(ctx, entity.Key(), includes...)
	if err != nil {
		return nil, err
	}

	r.mapper.ApplyUpdate((*T)(existing), (*T)(entity))

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete stages the removal of the row with the given identity.
func (r *Repository[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(existing).Error
}

func (r *Repository[T, PT]) find(ctx context.Context, id uuid.UUID, includes ...Include) (PT, error) {
	found, err := r.Get(ctx, includes...).ByID(id).First()
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %T %s", ErrNotFound, found, id)
	}
	return PT(found), nil
}

// Query is a composable query over one table. It runs when List, First or Count is called.
type Query[T any] struct {
	db *gorm.DB
}

// Where adds a condition.
func (q Query[T]) Where(query any, args ...any) Query[T] {
	return Query[T]{db: q.db.Where(query, args...)}
}

// ByID restricts the query to one identity.
func (q Query[T]) ByID(id uuid.UUID) Query[T] {
	return q.Where("id = ?", id)
}

// Order adds an ORDER BY clause.
func (q Query[T]) Order(value any) Query[T] {
	return Query[T]{db: q.db.Order(value)}
}

// List runs the query and returns all matching rows.
func (q Query[T]) List() ([]T, error) {
	var rows []T
	if err := q.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// First runs the query and returns one matching row, or nil when nothing matches.
func (q Query[T]) First() (*T, error) {
	var row T
	err := q.db.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Count runs the query as a count.
func (q Query[T]) Count() (int64, error) {
	var count int64
	if err := q.db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
