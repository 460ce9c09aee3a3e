package database

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a named collection of multimedia items of a single type.
type Playlist struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	Title       string    `gorm:"not null;index"`
	Description string
	// Type is fixed at creation.
	Type      MediaType `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Memberships are removed together with the playlist.
	Memberships []PlaylistMultimedia `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE;"`
}

// Key returns the identity of the row.
func (p *Playlist) Key() uuid.UUID { return p.ID }

// SetKey assigns the identity of the row.
func (p *Playlist) SetKey(id uuid.UUID) { p.ID = id }

// PlaylistMultimedia links one playlist to one multimedia item.
type PlaylistMultimedia struct {
	ID           uuid.UUID   `gorm:"type:text;primaryKey"`
	PlaylistID   uuid.UUID   `gorm:"type:text;not null;uniqueIndex:idx_playlist_multimedia"`
	MultimediaID uuid.UUID   `gorm:"type:text;not null;uniqueIndex:idx_playlist_multimedia;index"`
	AddedDate    time.Time   `gorm:"not null"`
	Playlist     *Playlist   `gorm:"foreignKey:PlaylistID"`
	Multimedia   *Multimedia `gorm:"foreignKey:MultimediaID"`
}

// TableName overrides the default table name.
func (PlaylistMultimedia) TableName() string {
	return "playlist_multimedia"
}

// Key returns the identity of the row.
func (pm *PlaylistMultimedia) Key() uuid.UUID { return pm.ID }

// SetKey assigns the identity of the row.
func (pm *PlaylistMultimedia) SetKey(id uuid.UUID) { pm.ID = id }
