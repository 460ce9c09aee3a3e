package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnknownAuthor is stored when a multimedia item has no author.
const UnknownAuthor = "Unknown"

// ErrVariantMismatch is returned when a row's format and genre do not belong to its media type.
var ErrVariantMismatch = errors.New("format and genre do not belong to the media type")

// Variant is the concrete shape of a multimedia item: Music, Video or AudioBook.
// The unexported methods seal the set.
type Variant interface {
	Type() MediaType
	format() string
	genre() string
}

// Music is the variant of a song or album track.
type Music struct {
	Format AudioFormat
	Genre  MusicGenre
}

func (Music) Type() MediaType   { return MediaTypeMusic }
func (m Music) format() string { return string(m.Format) }
func (m Music) genre() string  { return string(m.Genre) }

// AudioBook is the variant of a narrated book.
type AudioBook struct {
	Format AudioFormat
	Genre  AudioBookGenre
}

func (AudioBook) Type() MediaType   { return MediaTypeAudioBook }
func (a AudioBook) format() string { return string(a.Format) }
func (a AudioBook) genre() string  { return string(a.Genre) }

// Video is the variant of a film or clip.
type Video struct {
	Format VideoFormat
	Genre  VideoGenre
}

func (Video) Type() MediaType   { return MediaTypeVideo }
func (v Video) format() string { return string(v.Format) }
func (v Video) genre() string  { return string(v.Genre) }

// Multimedia is a single row of the multimedia table. All three variants share the table,
// Type is the discriminator and Format/Genre hold the variant specific values.
type Multimedia struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	Type        MediaType `gorm:"type:varchar(16);not null;index"`
	Title       string    `gorm:"not null;index"`
	Description string
	Author      string `gorm:"not null"`
	// Duration in seconds.
	Duration    *int
	ReleaseYear *int
	URL         string
	Format      string `gorm:"type:varchar(8);not null"`
	Genre       string `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Deleting a row that is still part of a playlist is rejected.
	Memberships []PlaylistMultimedia `gorm:"foreignKey:MultimediaID;constraint:OnDelete:RESTRICT;"`
}

// TableName overrides the default table name.
func (Multimedia) TableName() string {
	return "multimedia_items"
}

// Key returns the identity of the row.
func (m *Multimedia) Key() uuid.UUID { return m.ID }

// SetKey assigns the identity of the row.
func (m *Multimedia) SetKey(id uuid.UUID) { m.ID = id }

// SetVariant stores v and its discriminator on the row.
func (m *Multimedia) SetVariant(v Variant) {
	m.Type = v.Type()
	m.Format = v.format()
	m.Genre = v.genre()
}

// Variant decodes the concrete variant selected by the discriminator.
func (m *Multimedia) Variant() (Variant, error) {
	switch m.Type {
	case MediaTypeMusic:
		format, okFormat := ParseAudioFormat(m.Format)
		genre, okGenre := ParseMusicGenre(m.Genre)
		if okFormat && okGenre {
			return Music{Format: format, Genre: genre}, nil
		}
	case MediaTypeAudioBook:
		format, okFormat := ParseAudioFormat(m.Format)
		genre, okGenre := ParseAudioBookGenre(m.Genre)
		if okFormat && okGenre {
			return AudioBook{Format: format, Genre: genre}, nil
		}
	case MediaTypeVideo:
		format, okFormat := ParseVideoFormat(m.Format)
		genre, okGenre := ParseVideoGenre(m.Genre)
		if okFormat && okGenre {
			return Video{Format: format, Genre: genre}, nil
		}
	default:
		return nil, fmt.Errorf("unknown media type %q", m.Type)
	}
	return nil, fmt.Errorf("%w: %s with format %q and genre %q", ErrVariantMismatch, m.Type, m.Format, m.Genre)
}

// BeforeSave rejects rows whose variant columns are inconsistent.
func (m *Multimedia) BeforeSave(_ *gorm.DB) error {
	v, err := m.Variant()
	if err != nil {
		return err
	}
	// normalise the spelling of format and genre
	m.SetVariant(v)
	if m.Author == "" {
		m.Author = UnknownAuthor
	}
	if m.Duration != nil && *m.Duration < 0 {
		return fmt.Errorf("duration must not be negative: %d", *m.Duration)
	}
	return nil
}
