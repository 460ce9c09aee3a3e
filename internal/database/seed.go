package database

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identities of the demo data set.
var (
	SeedPlaylistRockClassics  = uuid.MustParse("a1000000-0000-4000-8000-000000000001")
	SeedPlaylistLateNightJazz = uuid.MustParse("a1000000-0000-4000-8000-000000000002")
	SeedPlaylistMovieNight    = uuid.MustParse("a1000000-0000-4000-8000-000000000003")
	SeedPlaylistBedtime       = uuid.MustParse("a1000000-0000-4000-8000-000000000004")

	SeedMediumAmericanIdiot    = uuid.MustParse("b2000000-0000-4000-8000-000000000001")
	SeedMediumBohemianRhapsody = uuid.MustParse("b2000000-0000-4000-8000-000000000002")
	SeedMediumTakeFive         = uuid.MustParse("b2000000-0000-4000-8000-000000000003")
	SeedMediumSpiritedAway     = uuid.MustParse("b2000000-0000-4000-8000-000000000004")
	SeedMediumAlien            = uuid.MustParse("b2000000-0000-4000-8000-000000000005")
	SeedMediumTheHobbit        = uuid.MustParse("b2000000-0000-4000-8000-000000000006")
	SeedMediumDune             = uuid.MustParse("b2000000-0000-4000-8000-000000000007")
)

func seedPlaylists() []Playlist {
	return []Playlist{
		{ID: SeedPlaylistRockClassics, Title: "Rock Classics", Description: "Guitars, loud.", Type: MediaTypeMusic},
		{ID: SeedPlaylistLateNightJazz, Title: "Late Night Jazz", Type: MediaTypeMusic},
		{ID: SeedPlaylistMovieNight, Title: "Movie Night", Description: "Friday picks", Type: MediaTypeVideo},
		{ID: SeedPlaylistBedtime, Title: "bedtime stories", Type: MediaTypeAudioBook},
	}
}

func seedMedia() []Multimedia {
	media := []struct {
		item    Multimedia
		variant Variant
	}{
		{
			item: Multimedia{
				ID: SeedMediumAmericanIdiot, Title: "American Idiot", Author: "Green Day",
				Duration: lo.ToPtr(176), ReleaseYear: lo.ToPtr(2004),
			},
			variant: Music{Format: AudioFormatMp3, Genre: MusicGenrePunk},
		},
		{
			item: Multimedia{
				ID: SeedMediumBohemianRhapsody, Title: "Bohemian Rhapsody", Author: "Queen",
				Duration: lo.ToPtr(354), ReleaseYear: lo.ToPtr(1975),
				URL: "https://example.com/queen/bohemian-rhapsody.flac",
			},
			variant: Music{Format: AudioFormatFlac, Genre: MusicGenreRock},
		},
		{
			item: Multimedia{
				ID: SeedMediumTakeFive, Title: "Take Five", Author: "Dave Brubeck",
				Duration: lo.ToPtr(324), ReleaseYear: lo.ToPtr(1959),
			},
			variant: Music{Format: AudioFormatWav, Genre: MusicGenreJazz},
		},
		{
			item: Multimedia{
				ID: SeedMediumSpiritedAway, Title: "Spirited Away", Author: "Hayao Miyazaki",
				Description: "A girl wanders into the world of spirits.",
				Duration:    lo.ToPtr(7500), ReleaseYear: lo.ToPtr(2001),
			},
			variant: Video{Format: VideoFormatMkv, Genre: VideoGenreFantasy},
		},
		{
			item: Multimedia{
				ID: SeedMediumAlien, Title: "Alien", Author: "Ridley Scott",
				Duration: lo.ToPtr(7020), ReleaseYear: lo.ToPtr(1979),
			},
			variant: Video{Format: VideoFormatMp4, Genre: VideoGenreSciFi},
		},
		{
			item: Multimedia{
				ID: SeedMediumTheHobbit, Title: "The Hobbit", Author: "J. R. R. Tolkien",
				Duration: lo.ToPtr(40920), ReleaseYear: lo.ToPtr(1937),
			},
			variant: AudioBook{Format: AudioFormatMp3, Genre: AudioBookGenreFantasy},
		},
		{
			item: Multimedia{
				ID: SeedMediumDune, Title: "Dune", Author: "Frank Herbert",
			},
			variant: AudioBook{Format: AudioFormatAac, Genre: AudioBookGenreSciFi},
		},
	}

	items := make([]Multimedia, 0, len(media))
	for _, m := range media {
		item := m.item
		item.SetVariant(m.variant)
		items = append(items, item)
	}
	return items
}

func seedMemberships() []PlaylistMultimedia {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 12, 0, 0, 0, time.UTC) }
	return []PlaylistMultimedia{
		{ID: uuid.MustParse("c3000000-0000-4000-8000-000000000001"), PlaylistID: SeedPlaylistRockClassics, MultimediaID: SeedMediumAmericanIdiot, AddedDate: day(2)},
		{ID: uuid.MustParse("c3000000-0000-4000-8000-000000000002"), PlaylistID: SeedPlaylistRockClassics, MultimediaID: SeedMediumBohemianRhapsody, AddedDate: day(1)},
		{ID: uuid.MustParse("c3000000-0000-4000-8000-000000000003"), PlaylistID: SeedPlaylistMovieNight, MultimediaID: SeedMediumSpiritedAway, AddedDate: day(3)},
		{ID: uuid.MustParse("c3000000-0000-4000-8000-000000000004"), PlaylistID: SeedPlaylistMovieNight, MultimediaID: SeedMediumAlien, AddedDate: day(4)},
		{ID: uuid.MustParse("c3000000-0000-4000-8000-000000000005"), PlaylistID: SeedPlaylistBedtime, MultimediaID: SeedMediumTheHobbit, AddedDate: day(5)},
	}
}

// Seed fills an empty store with the demo data set. A store that already holds playlists
// or multimedia items is left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var playlists, media int64
		if err := tx.Model(&Playlist{}).Count(&playlists).Error; err != nil {
			return fmt.Errorf("failed to count playlists: %w", err)
		}
		if err := tx.Model(&Multimedia{}).Count(&media).Error; err != nil {
			return fmt.Errorf("failed to count multimedia items: %w", err)
		}
		if playlists > 0 || media > 0 {
			log.Debug("store is not empty, skipping seed", "playlists", playlists, "media", media)
			return nil
		}

		pl := seedPlaylists()
		if err := tx.Omit(clause.Associations).Create(&pl).Error; err != nil {
			return fmt.Errorf("failed to seed playlists: %w", err)
		}
		mm := seedMedia()
		if err := tx.Omit(clause.Associations).Create(&mm).Error; err != nil {
			return fmt.Errorf("failed to seed multimedia items: %w", err)
		}
		links := seedMemberships()
		if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
			return fmt.Errorf("failed to seed memberships: %w", err)
		}

		log.Info("seeded demo data", "playlists", len(pl), "media", len(mm), "memberships", len(links))
		return nil
	})
}
