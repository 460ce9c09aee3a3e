package facade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/jon4hz/playbox/internal/repository"
	"github.com/samber/lo"
)

// PlaylistFacade serves playlists and their memberships.
type PlaylistFacade struct {
	*Facade[database.Playlist, *database.Playlist, repository.PlaylistMapper,
		models.PlaylistNameOnly, models.PlaylistSummary, models.PlaylistDetail]
}

// NewPlaylistFacade returns a playlist facade on the given unit of work factory.
func NewPlaylistFacade(uows *repository.Factory, opts ...Option) *PlaylistFacade {
	o := buildOptions(opts)
	return &PlaylistFacade{
		Facade: &Facade[database.Playlist, *database.Playlist, repository.PlaylistMapper,
			models.PlaylistNameOnly, models.PlaylistSummary, models.PlaylistDetail]{
			uows:      uows,
			mapper:    models.PlaylistMapper{},
			aggregate: AggregatePlaylist,
			observers: o.observers,
			detail:    []repository.Include{repository.IncludePlaylistMedia},
			summary:   []repository.Include{repository.IncludePlaylistMedia},
		},
	}
}

// ByType returns the playlists of the given type.
func (f *PlaylistFacade) ByType(ctx context.Context, t database.MediaType) ([]models.PlaylistSummary, error) {
	return f.summaries(ctx, func(q repository.Query[database.Playlist]) repository.Query[database.Playlist] {
		return q.Where("type = ?", t)
	})
}

// ByName returns the playlists whose title starts with prefix, ignoring case. An empty
// prefix returns all playlists.
func (f *PlaylistFacade) ByName(ctx context.Context, prefix string) ([]models.PlaylistSummary, error) {
	all, err := f.ListSummary(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(p models.PlaylistSummary, _ int) bool {
		return hasPrefixFold(p.Title, prefix)
	}), nil
}

// Sorted returns the playlists sorted by key. A non-empty t restricts the result to one type
// before sorting.
func (f *PlaylistFacade) Sorted(ctx context.Context, key PlaylistSortKey, order SortOrder, t database.MediaType) ([]models.PlaylistSummary, error) {
	var (
		playlists []models.PlaylistSummary
		err       error
	)
	if t != "" {
		playlists, err = f.ByType(ctx, t)
	} else {
		playlists, err = f.ListSummary(ctx)
	}
	if err != nil {
		return nil, err
	}
	sortPlaylists(playlists, key, order)
	return playlists, nil
}

// MediaSorted returns the media of a playlist, optionally filtered by a case-insensitive
// substring of title or author, sorted by key. A missing or empty playlist yields an empty
// slice.
func (f *PlaylistFacade) MediaSorted(ctx context.Context, playlistID uuid.UUID, filterBy MediaFilterKey, filterText string, key MediaSortKey, order SortOrder) ([]models.MediumSummary, error) {
	media, err := f.media(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	media = lo.Filter(media, func(m models.MediumSummary, _ int) bool {
		return matchesFilter(m, filterBy, filterText)
	})
	sortMedia(media, key, order)
	return media, nil
}

// MediaByTitle returns the media of a playlist whose title starts with prefix, ignoring
// case, sorted by title. An empty prefix returns all media of the playlist.
func (f *PlaylistFacade) MediaByTitle(ctx context.Context, playlistID uuid.UUID, prefix string) ([]models.MediumSummary, error) {
	media, err := f.media(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	media = lo.Filter(media, func(m models.MediumSummary, _ int) bool {
		return hasPrefixFold(m.Title, prefix)
	})
	sortMedia(media, MediaSortTitle, Ascending)
	return media, nil
}

func (f *PlaylistFacade) media(ctx context.Context, playlistID uuid.UUID) ([]models.MediumSummary, error) {
	var playlist *database.Playlist
	err := f.read(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		playlist, err = uow.Playlists().Get(ctx, repository.IncludePlaylistMedia).ByID(playlistID).First()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist media: %w", err)
	}
	if playlist == nil {
		return []models.MediumSummary{}, nil
	}

	mapper := models.MediumMapper{}
	return lo.Map(playlist.Memberships, func(pm database.PlaylistMultimedia, _ int) models.MediumSummary {
		return mapper.MapMembershipToSummary(&pm)
	}), nil
}

// AddMedium links a medium to a playlist. The medium has to be of the playlist type. A
// missing playlist or medium and a medium that is already linked are rejected by the store.
func (f *PlaylistFacade) AddMedium(ctx context.Context, playlistID, mediumID uuid.UUID) (models.MediumSummary, error) {
	var link *database.PlaylistMultimedia
	err := f.write(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		link, err = addMembership(ctx, uow, playlistID, mediumID)
		return err
	})
	if err != nil {
		return models.MediumSummary{}, fmt.Errorf("failed to add medium %s to playlist %s: %w", mediumID, playlistID, err)
	}
	f.observers.publish(Event{Action: ActionUpdated, Aggregate: AggregatePlaylist, ID: playlistID})
	return models.MediumMapper{}.MapMembershipToSummary(link), nil
}

// RemoveMedium unlinks a medium from a playlist. The medium itself is kept.
func (f *PlaylistFacade) RemoveMedium(ctx context.Context, playlistID, mediumID uuid.UUID) error {
	err := f.write(ctx, func(uow *repository.UnitOfWork) error {
		link, err := findMembership(ctx, uow, playlistID, mediumID)
		if err != nil {
			return err
		}
		if link == nil {
			return fmt.Errorf("%w: medium %s is not part of playlist %s", ErrNotFound, mediumID, playlistID)
		}
		return uow.Memberships().Delete(ctx, link.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to remove medium from playlist: %w", err)
	}
	f.observers.publish(Event{Action: ActionUpdated, Aggregate: AggregatePlaylist, ID: playlistID})
	return nil
}

func findMembership(ctx context.Context, uow *repository.UnitOfWork, playlistID, mediumID uuid.UUID) (*database.PlaylistMultimedia, error) {
	return uow.Memberships().Get(ctx).
		Where("playlist_id = ? AND multimedia_id = ?", playlistID, mediumID).
		First()
}

// addMembership stages a new membership. Type mismatches are caught here, missing rows and
// duplicates are left to the store constraints.
func addMembership(ctx context.Context, uow *repository.UnitOfWork, playlistID, mediumID uuid.UUID) (*database.PlaylistMultimedia, error) {
	playlist, err := uow.Playlists().Get(ctx).ByID(playlistID).First()
	if err != nil {
		return nil, err
	}
	medium, err := uow.Media().Get(ctx).ByID(mediumID).First()
	if err != nil {
		return nil, err
	}
	if playlist != nil && medium != nil && playlist.Type != medium.Type {
		return nil, &models.ArgumentError{
			Field:  "MultimediaID",
			Reason: fmt.Sprintf("%s medium cannot be added to a %s playlist", medium.Type, playlist.Type),
		}
	}

	link, err := models.NewMembership(playlistID, mediumID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return uow.Memberships().Insert(ctx, link, repository.IncludeMembershipLinks)
}
