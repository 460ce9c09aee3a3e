package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/samber/lo"
)

// PlaylistNameOnly is the lightest playlist projection.
type PlaylistNameOnly struct {
	ID    uuid.UUID          `json:"id"`
	Title string             `json:"title"`
	Type  database.MediaType `json:"type"`
}

// PlaylistSummary carries the computed media count and total duration. Media is filled
// when the memberships of the playlist were loaded.
type PlaylistSummary struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title" validate:"required,notblank"`
	Description   string             `json:"description,omitempty"`
	Type          database.MediaType `json:"type"`
	MediaCount    int                `json:"mediaCount"`
	TotalDuration int                `json:"totalDuration"`
	Media         []MediumDetail     `json:"media,omitempty"`
}

// PlaylistDetail has the same shape as PlaylistSummary.
type PlaylistDetail PlaylistSummary

// HasNestedCollections reports whether d carries child rows.
func (d PlaylistDetail) HasNestedCollections() bool {
	return len(d.Media) > 0
}

// IsEmpty reports whether d is the empty playlist returned for a missing entity.
func (d PlaylistDetail) IsEmpty() bool {
	return d.ID == uuid.Nil && d.Title == ""
}

// PlaylistMapper maps playlist entities to and from their projections. Mapping a nil
// entity yields the zero value of the projection, which is the empty playlist.
type PlaylistMapper struct{}

func (PlaylistMapper) MapToNameOnly(p *database.Playlist) PlaylistNameOnly {
	if p == nil {
		return PlaylistNameOnly{}
	}
	return PlaylistNameOnly{
		ID:    p.ID,
		Title: p.Title,
		Type:  p.Type,
	}
}

// MapToSummary counts the memberships of p and sums the durations of the loaded media.
// Missing durations count as zero.
func (PlaylistMapper) MapToSummary(p *database.Playlist) PlaylistSummary {
	if p == nil {
		return PlaylistSummary{}
	}
	s := PlaylistSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		MediaCount:  len(p.Memberships),
		TotalDuration: lo.SumBy(p.Memberships, func(pm database.PlaylistMultimedia) int {
			if pm.Multimedia == nil || pm.Multimedia.Duration == nil {
				return 0
			}
			return *pm.Multimedia.Duration
		}),
	}
	s.Media = lo.FilterMap(p.Memberships, func(pm database.PlaylistMultimedia, _ int) (MediumDetail, bool) {
		if pm.Multimedia == nil {
			return MediumDetail{}, false
		}
		d := MediumMapper{}.MapToDetail(pm.Multimedia)
		d.PlaylistID = p.ID
		return d, true
	})
	if len(s.Media) == 0 {
		s.Media = nil
	}
	return s
}

func (pm PlaylistMapper) MapToDetail(p *database.Playlist) PlaylistDetail {
	return PlaylistDetail(pm.MapToSummary(p))
}

// MapToEntity builds a playlist entity from d. Media are never carried over.
func (PlaylistMapper) MapToEntity(d PlaylistDetail) (*database.Playlist, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fromValidation(err)
	}
	t, ok := database.ParseMediaType(string(d.Type))
	if !ok {
		return nil, &ArgumentError{Field: "Type", Reason: fmt.Sprintf("unknown media type %q", d.Type)}
	}
	return &database.Playlist{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Type:        t,
	}, nil
}
