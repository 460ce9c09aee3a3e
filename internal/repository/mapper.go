package repository

import (
	"github.com/jon4hz/playbox/internal/database"
)

// EntityMapper merges the user mutable fields of incoming into existing.
// Implementations never touch identities and never perform I/O.
type EntityMapper[T any] interface {
	ApplyUpdate(existing, incoming *T)
}

var (
	_ EntityMapper[database.Playlist]           = PlaylistMapper{}
	_ EntityMapper[database.Multimedia]         = MultimediaMapper{}
	_ EntityMapper[database.PlaylistMultimedia] = PlaylistMultimediaMapper{}
)

// PlaylistMapper merges playlists. The playlist type is fixed at creation and not copied.
type PlaylistMapper struct{}

func (PlaylistMapper) ApplyUpdate(existing, incoming *database.Playlist) {
	existing.Title = incoming.Title
	existing.Description = incoming.Description
}

// MultimediaMapper merges multimedia items, including their variant columns.
type MultimediaMapper struct{}

func (MultimediaMapper) ApplyUpdate(existing, incoming *database.Multimedia) {
	existing.Title = incoming.Title
	existing.Description = incoming.Description
	existing.Author = incoming.Author
	existing.Duration = incoming.Duration
	existing.ReleaseYear = incoming.ReleaseYear
	existing.URL = incoming.URL
	applyVariant(existing, incoming)
}

// PlaylistMultimediaMapper merges membership rows. When both sides carry the linked item
// the item is merged as well, but only in memory: Repository.Update writes the membership
// row alone, so the item has to be saved through its own repository.
type PlaylistMultimediaMapper struct{}

func (PlaylistMultimediaMapper) ApplyUpdate(existing, incoming *database.PlaylistMultimedia) {
	existing.AddedDate = incoming.AddedDate
	if existing.Multimedia != nil && incoming.Multimedia != nil {
		MultimediaMapper{}.ApplyUpdate(existing.Multimedia, incoming.Multimedia)
	}
}

// applyVariant copies the discriminator together with the variant columns so the three
// always change as one. An inconsistent combination is rejected by the store on save.
func applyVariant(existing, incoming *database.Multimedia) {
	existing.Type = incoming.Type
	existing.Format = incoming.Format
	existing.Genre = incoming.Genre
}
