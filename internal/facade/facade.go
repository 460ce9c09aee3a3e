// Package facade is the entry point for business callers. Every call opens its own unit of
// work, so a facade holds no state between calls and is safe for concurrent use.
package facade

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/repository"
	"github.com/samber/lo"
)

// ModelMapper maps entities of type T to the three projections and back.
type ModelMapper[T, N, S, D any] interface {
	MapToNameOnly(*T) N
	MapToSummary(*T) S
	MapToDetail(*T) D
	MapToEntity(D) (*T, error)
}

// DetailModel is a detail projection that lists its nested collection fields.
type DetailModel interface {
	HasNestedCollections() bool
}

// saveHook runs inside the unit of work of Save, after the root row was staged.
type saveHook[PT any] func(ctx context.Context, uow *repository.UnitOfWork, model, saved PT) error

// Facade implements the operations shared by all aggregates.
type Facade[T any, PT repository.EntityPtr[T], M repository.EntityMapper[T], N, S any, D DetailModel] struct {
	uows      *repository.Factory
	mapper    ModelMapper[T, N, S, D]
	aggregate Aggregate
	observers observers

	// eager loads for the detail and summary projections
	detail  []repository.Include
	summary []repository.Include

	afterSave saveHook[PT]
}

// Option configures a facade.
type Option func(*options)

type options struct {
	observers observers
}

// WithObserver registers o for committed changes.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observers = append(opts.observers, o)
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (f *Facade[T, PT, M, N, S, D]) repo(uow *repository.UnitOfWork) *repository.Repository[T, PT] {
	return repository.For[T, PT, M](uow)
}

// read runs fn in a unit of work that is never committed.
func (f *Facade[T, PT, M, N, S, D]) read(ctx context.Context, fn func(*repository.UnitOfWork) error) error {
	uow, err := f.uows.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close() //nolint:errcheck
	return fn(uow)
}

// write runs fn in a unit of work and commits it when fn succeeds. Constraint failures of
// staged changes and of the commit are translated.
func (f *Facade[T, PT, M, N, S, D]) write(ctx context.Context, fn func(*repository.UnitOfWork) error) error {
	uow, err := f.uows.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close() //nolint:errcheck

	if err := fn(uow); err != nil {
		return translate(err)
	}
	if err := uow.Commit(); err != nil {
		log.Error("failed to commit", "aggregate", f.aggregate, "error", err)
		return translate(err)
	}
	return nil
}

// Get returns the detail projection of the row with the given identity, or nil when there
// is none.
func (f *Facade[T, PT, M, N, S, D]) Get(ctx context.Context, id uuid.UUID) (*D, error) {
	var row *T
	err := f.read(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		row, err = f.repo(uow).Get(ctx, f.detail...).ByID(id).First()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", f.aggregate, err)
	}
	if row == nil {
		return nil, nil
	}
	return lo.ToPtr(f.mapper.MapToDetail(row)), nil
}

// List returns all rows as name only projections, ordered by title.
func (f *Facade[T, PT, M, N, S, D]) List(ctx context.Context) ([]N, error) {
	rows, err := f.list(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row T, _ int) N { return f.mapper.MapToNameOnly(&row) }), nil
}

// ListSummary returns all rows as summary projections, ordered by title.
func (f *Facade[T, PT, M, N, S, D]) ListSummary(ctx context.Context) ([]S, error) {
	return f.summaries(ctx, nil)
}

func (f *Facade[T, PT, M, N, S, D]) summaries(ctx context.Context, filter func(repository.Query[T]) repository.Query[T]) ([]S, error) {
	rows, err := f.list(ctx, f.summary, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row T, _ int) S { return f.mapper.MapToSummary(&row) }), nil
}

func (f *Facade[T, PT, M, N, S, D]) list(ctx context.Context, includes []repository.Include, filter func(repository.Query[T]) repository.Query[T]) ([]T, error) {
	var rows []T
	err := f.read(ctx, func(uow *repository.UnitOfWork) error {
		q := f.repo(uow).Get(ctx, includes...)
		if filter != nil {
			q = filter(q)
		}
		var err error
		rows, err = q.Order("title").List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.aggregate, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Save inserts or updates the row described by model. A model whose identity is not stored
// yet gets a fresh identity and is inserted. Models with nested collections are rejected
// before the store is touched.
func (f *Facade[T, PT, M, N, S, D]) Save(ctx context.Context, model D) (D, error) {
	var zero D
	if model.HasNestedCollections() {
		return zero, fmt.Errorf("%w: %s cannot be saved together with its nested collections", ErrInvalidArgument, f.aggregate)
	}

	entity, err := f.mapper.MapToEntity(model)
	if err != nil {
		return zero, err
	}
	incoming := PT(entity)

	var (
		saved  *T
		action Action
	)
	err = f.write(ctx, func(uow *repository.UnitOfWork) error {
		repo := f.repo(uow)

		exists, err := repo.Exists(ctx, incoming)
		if err != nil {
			return err
		}

		var staged PT
		if exists {
			action = ActionUpdated
			staged, err = repo.Update(ctx, incoming)
		} else {
			action = ActionAdded
			incoming.SetKey(uuid.New())
			staged, err = repo.Insert(ctx, incoming)
		}
		if err != nil {
			return err
		}

		if f.afterSave != nil {
			if err := f.afterSave(ctx, uow, incoming, staged); err != nil {
				return err
			}
		}

		saved, err = repo.Get(ctx, f.detail...).ByID(staged.Key()).First()
		if err == nil && saved == nil {
			err = fmt.Errorf("%w: %s vanished before commit", ErrNotFound, staged.Key())
		}
		return err
	})
	if err != nil {
		return zero, fmt.Errorf("failed to save %s: %w", f.aggregate, err)
	}

	id := PT(saved).Key()
	f.observers.publish(Event{Action: action, Aggregate: f.aggregate, ID: id})
	return f.mapper.MapToDetail(saved), nil
}

// Delete removes the row with the given identity. Rows that are still referenced through a
// restricting relation cannot be deleted.
func (f *Facade[T, PT, M, N, S, D]) Delete(ctx context.Context, id uuid.UUID) error {
	err := f.write(ctx, func(uow *repository.UnitOfWork) error {
		return f.repo(uow).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", f.aggregate, id, err)
	}
	f.observers.publish(Event{Action: ActionRemoved, Aggregate: f.aggregate, ID: id})
	return nil
}
