package facade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/jon4hz/playbox/internal/repository"
	"github.com/samber/lo"
)

// MediumFacade serves multimedia items.
type MediumFacade struct {
	*Facade[database.Multimedia, *database.Multimedia, repository.MultimediaMapper,
		models.MediumNameOnly, models.MediumSummary, models.MediumDetail]
}

// NewMediumFacade returns a medium facade on the given unit of work factory.
func NewMediumFacade(uows *repository.Factory, opts ...Option) *MediumFacade {
	o := buildOptions(opts)
	return &MediumFacade{
		Facade: &Facade[database.Multimedia, *database.Multimedia, repository.MultimediaMapper,
			models.MediumNameOnly, models.MediumSummary, models.MediumDetail]{
			uows:      uows,
			mapper:    models.MediumMapper{},
			aggregate: AggregateMedium,
			observers: o.observers,
			detail:    []repository.Include{repository.IncludeMediumPlaylists},
			afterSave: linkBackReference,
		},
	}
}

// linkBackReference checks that every playlist the saved medium belongs to still accepts
// its type, then stages the playlist membership carried by the model unless the medium is
// already part of that playlist.
func linkBackReference(ctx context.Context, uow *repository.UnitOfWork, model, saved *database.Multimedia) error {
	links, err := uow.Memberships().Get(ctx, repository.Preload("Playlist")).
		Where("multimedia_id = ?", saved.ID).
		List()
	if err != nil {
		return err
	}
	for _, pm := range links {
		if pm.Playlist != nil && pm.Playlist.Type != saved.Type {
			return &models.ArgumentError{
				Field:  "Format",
				Reason: fmt.Sprintf("%s medium cannot stay in %s playlist %q", saved.Type, pm.Playlist.Type, pm.Playlist.Title),
			}
		}
	}

	for _, pm := range model.Memberships {
		existing, err := findMembership(ctx, uow, pm.PlaylistID, saved.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := addMembership(ctx, uow, pm.PlaylistID, saved.ID); err != nil {
			return err
		}
	}
	return nil
}

// ByType returns the media of the given type.
func (f *MediumFacade) ByType(ctx context.Context, t database.MediaType) ([]models.MediumSummary, error) {
	return f.summaries(ctx, func(q repository.Query[database.Multimedia]) repository.Query[database.Multimedia] {
		return q.Where("type = ?", t)
	})
}

// ByTitle returns the media whose title starts with prefix, ignoring case. An empty prefix
// returns all media.
func (f *MediumFacade) ByTitle(ctx context.Context, prefix string) ([]models.MediumSummary, error) {
	all, err := f.ListSummary(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(m models.MediumSummary, _ int) bool {
		return hasPrefixFold(m.Title, prefix)
	}), nil
}

// NotInPlaylist returns the media of the playlist type that are not part of the playlist
// yet. A missing playlist yields an empty slice.
func (f *MediumFacade) NotInPlaylist(ctx context.Context, playlistID uuid.UUID) ([]models.MediumSummary, error) {
	var media []database.Multimedia
	err := f.read(ctx, func(uow *repository.UnitOfWork) error {
		playlist, err := uow.Playlists().Get(ctx).ByID(playlistID).First()
		if err != nil || playlist == nil {
			return err
		}
		linked := uow.DB().WithContext(ctx).
			Model(&database.PlaylistMultimedia{}).
			Select("multimedia_id").
			Where("playlist_id = ?", playlistID)
		media, err = uow.Media().Get(ctx).
			Where("type = ?", playlist.Type).
			Where("id NOT IN (?)", linked).
			Order("title").
			List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list media outside playlist %s: %w", playlistID, err)
	}

	mapper := models.MediumMapper{}
	return lo.Map(media, func(m database.Multimedia, _ int) models.MediumSummary {
		return mapper.MapToSummary(&m)
	}), nil
}
