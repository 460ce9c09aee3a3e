package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/samber/lo"
)

// MediumNameOnly is the lightest medium projection, used for plain lists.
type MediumNameOnly struct {
	ID    uuid.UUID          `json:"id"`
	Title string             `json:"title"`
	Type  database.MediaType `json:"type"`
}

// MediumSummary adds author and duration. AddedDate is only set when the medium was read
// through a playlist membership.
type MediumSummary struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Author    string             `json:"author"`
	Duration  *int               `json:"duration,omitempty"`
	Type      database.MediaType `json:"type"`
	AddedDate *time.Time         `json:"addedDate,omitempty"`
}

// MediumDetail is the full medium projection, used for reads and writes.
//
// Type is derived from Format and Genre when saving. When it is set it has to agree with
// them. PlaylistID optionally names a playlist the medium is linked to on save; on reads it
// holds the playlist of a medium that belongs to exactly one playlist.
type MediumDetail struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title" validate:"required,notblank"`
	Description string             `json:"description,omitempty"`
	Author      string             `json:"author,omitempty"`
	Duration    *int               `json:"duration,omitempty" validate:"omitempty,gte=0"`
	ReleaseYear *int               `json:"releaseYear,omitempty" validate:"omitempty,releaseyear"`
	URL         string             `json:"url,omitempty" validate:"omitempty,url"`
	Type        database.MediaType `json:"type,omitempty"`
	Format      string             `json:"format"`
	Genre       string             `json:"genre"`
	PlaylistID  uuid.UUID          `json:"playlistId,omitzero"`

	// Playlists is read only. A medium is never saved together with it.
	Playlists []PlaylistNameOnly `json:"playlists,omitempty"`
}

// HasNestedCollections reports whether d carries child rows.
func (d MediumDetail) HasNestedCollections() bool {
	return len(d.Playlists) > 0
}

// IsEmpty reports whether d is the empty medium returned for a missing entity.
func (d MediumDetail) IsEmpty() bool {
	return d.ID == uuid.Nil && d.Title == ""
}

// MediumMapper maps multimedia entities to and from their projections. Mapping a nil
// entity yields the zero value of the projection, which is the empty medium.
type MediumMapper struct{}

func (MediumMapper) MapToNameOnly(m *database.Multimedia) MediumNameOnly {
	if m == nil {
		return MediumNameOnly{}
	}
	return MediumNameOnly{
		ID:    m.ID,
		Title: m.Title,
		Type:  m.Type,
	}
}

func (MediumMapper) MapToSummary(m *database.Multimedia) MediumSummary {
	if m == nil {
		return MediumSummary{}
	}
	return MediumSummary{
		ID:       m.ID,
		Title:    m.Title,
		Author:   m.Author,
		Duration: m.Duration,
		Type:     m.Type,
	}
}

// MapMembershipToSummary maps the medium of a membership and stamps the date it was added.
func (mm MediumMapper) MapMembershipToSummary(pm *database.PlaylistMultimedia) MediumSummary {
	if pm == nil || pm.Multimedia == nil {
		return MediumSummary{}
	}
	s := mm.MapToSummary(pm.Multimedia)
	s.AddedDate = lo.ToPtr(pm.AddedDate)
	return s
}

func (MediumMapper) MapToDetail(m *database.Multimedia) MediumDetail {
	if m == nil {
		return MediumDetail{}
	}
	d := MediumDetail{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Author:      m.Author,
		Duration:    m.Duration,
		ReleaseYear: m.ReleaseYear,
		URL:         m.URL,
		Type:        m.Type,
		Format:      m.Format,
		Genre:       m.Genre,
	}
	if len(m.Memberships) == 1 {
		d.PlaylistID = m.Memberships[0].PlaylistID
	}
	d.Playlists = lo.FilterMap(m.Memberships, func(pm database.PlaylistMultimedia, _ int) (PlaylistNameOnly, bool) {
		if pm.Playlist == nil {
			return PlaylistNameOnly{}, false
		}
		return PlaylistMapper{}.MapToNameOnly(pm.Playlist), true
	})
	if len(d.Playlists) == 0 {
		d.Playlists = nil
	}
	return d
}

// MapToEntity builds a multimedia entity from d. The concrete variant is resolved from
// Format and Genre. A set PlaylistID becomes a membership of the entity.
func (MediumMapper) MapToEntity(d MediumDetail) (*database.Multimedia, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fromValidation(err)
	}

	variant, err := ResolveVariant(d.Format, d.Genre)
	if err != nil {
		return nil, err
	}
	if d.Type != "" {
		t, ok := database.ParseMediaType(string(d.Type))
		if !ok || t != variant.Type() {
			return nil, &ArgumentError{
				Field:  "Type",
				Reason: fmt.Sprintf("%q does not match format %q and genre %q", d.Type, d.Format, d.Genre),
			}
		}
	}

	m := &database.Multimedia{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Author:      lo.CoalesceOrEmpty(d.Author, database.UnknownAuthor),
		Duration:    d.Duration,
		ReleaseYear: d.ReleaseYear,
		URL:         d.URL,
	}
	m.SetVariant(variant)

	if d.PlaylistID != uuid.Nil {
		m.Memberships = []database.PlaylistMultimedia{{
			PlaylistID:   d.PlaylistID,
			MultimediaID: d.ID,
		}}
	}
	return m, nil
}

// ResolveVariant picks the concrete variant for a format and genre. An audio format is
// tried first, with audio book genres checked before music genres; a video format comes
// last.
func ResolveVariant(format, genre string) (database.Variant, error) {
	if f, ok := database.ParseAudioFormat(format); ok {
		if g, ok := database.ParseAudioBookGenre(genre); ok {
			return database.AudioBook{Format: f, Genre: g}, nil
		}
		if g, ok := database.ParseMusicGenre(genre); ok {
			return database.Music{Format: f, Genre: g}, nil
		}
		return nil, &ArgumentError{Field: "Genre", Reason: fmt.Sprintf("%q is not a music or audio book genre", genre)}
	}
	if f, ok := database.ParseVideoFormat(format); ok {
		if g, ok := database.ParseVideoGenre(genre); ok {
			return database.Video{Format: f, Genre: g}, nil
		}
		return nil, &ArgumentError{Field: "Genre", Reason: fmt.Sprintf("%q is not a video genre", genre)}
	}
	return nil, &ArgumentError{Field: "Format", Reason: fmt.Sprintf("unknown format %q", format)}
}

// NewMembership links a medium to a playlist. Both identities are required.
func NewMembership(playlistID, mediumID uuid.UUID, added time.Time) (*database.PlaylistMultimedia, error) {
	if playlistID == uuid.Nil {
		return nil, &ArgumentError{Field: "PlaylistID", Reason: "identity is empty"}
	}
	if mediumID == uuid.Nil {
		return nil, &ArgumentError{Field: "MultimediaID", Reason: "identity is empty"}
	}
	return &database.PlaylistMultimedia{
		ID:           uuid.New(),
		PlaylistID:   playlistID,
		MultimediaID: mediumID,
		AddedDate:    added,
	}, nil
}
