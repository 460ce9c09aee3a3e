package facade

import (
	"context"
	"fmt"

	"github.com/ccoveille/go-safecast"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/jon4hz/playbox/internal/repository"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Library bundles the facades of all aggregates.
type Library struct {
	Playlists *PlaylistFacade
	Media     *MediumFacade

	uows *repository.Factory
}

// NewLibrary returns the facades for the store behind uows. Options apply to every facade.
func NewLibrary(uows *repository.Factory, opts ...Option) *Library {
	return &Library{
		Playlists: NewPlaylistFacade(uows, opts...),
		Media:     NewMediumFacade(uows, opts...),
		uows:      uows,
	}
}

// Overview summarizes the whole library.
type Overview struct {
	Playlists       int                        `json:"playlists"`
	Media           int                        `json:"media"`
	Memberships     int                        `json:"memberships"`
	PlaylistsByType map[database.MediaType]int `json:"playlistsByType"`
	MediaByType     map[database.MediaType]int `json:"mediaByType"`
	// TotalDuration of all media in seconds.
	TotalDuration int `json:"totalDuration"`
}

// Overview reads playlists, media and memberships concurrently, each in its own unit of work.
func (l *Library) Overview(ctx context.Context) (*Overview, error) {
	var (
		playlists   []models.PlaylistNameOnly
		media       []models.MediumSummary
		memberships int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playlists, err = l.Playlists.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		media, err = l.Media.ListSummary(ctx)
		return err
	})
	g.Go(func() error {
		uow, err := l.uows.Begin(ctx)
		if err != nil {
			return err
		}
		defer uow.Close() //nolint:errcheck
		memberships, err = uow.Memberships().Get(ctx).Count()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build library overview: %w", err)
	}

	links, err := safecast.ToInt(memberships)
	if err != nil {
		return nil, fmt.Errorf("failed to convert membership count: %w", err)
	}

	return &Overview{
		Playlists:   len(playlists),
		Media:       len(media),
		Memberships: links,
		PlaylistsByType: lo.CountValuesBy(playlists, func(p models.PlaylistNameOnly) database.MediaType {
			return p.Type
		}),
		MediaByType: lo.CountValuesBy(media, func(m models.MediumSummary) database.MediaType {
			return m.Type
		}),
		TotalDuration: lo.SumBy(media, durationOf),
	}, nil
}
