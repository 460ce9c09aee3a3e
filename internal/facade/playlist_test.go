package facade

import (
	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/samber/lo"
)

func titlesOf[T any](items []T, title func(T) string) []string {
	return lo.Map(items, func(item T, _ int) string { return title(item) })
}

func playlistTitle(p models.PlaylistSummary) string { return p.Title }
func mediumTitle(m models.MediumSummary) string     { return m.Title }

// TestGet tests detail reads including computed fields
func (suite *FacadeTestSuite) TestGet() {
	rock, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	suite.Require().NotNil(rock)
	suite.Equal("Rock Classics", rock.Title)
	suite.Equal(2, rock.MediaCount)
	suite.Equal(176+354, rock.TotalDuration)
	suite.Len(rock.Media, 2)
	for _, m := range rock.Media {
		suite.Equal(database.SeedPlaylistRockClassics, m.PlaylistID)
	}

	jazz, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistLateNightJazz)
	suite.Require().NoError(err)
	suite.Zero(jazz.MediaCount)
	suite.Zero(jazz.TotalDuration)
	suite.Empty(jazz.Media)

	missing, err := suite.library.Playlists.Get(suite.ctx, uuid.New())
	suite.NoError(err)
	suite.Nil(missing)
}

// TestList tests the name only and summary listings
func (suite *FacadeTestSuite) TestList() {
	names, err := suite.library.Playlists.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(names, 4)

	summaries, err := suite.library.Playlists.ListSummary(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(summaries, 4)
	counts := lo.SliceToMap(summaries, func(p models.PlaylistSummary) (string, int) { return p.Title, p.MediaCount })
	suite.Equal(map[string]int{
		"Rock Classics":   2,
		"Late Night Jazz": 0,
		"Movie Night":     2,
		"bedtime stories": 1,
	}, counts)
}

// TestSave_ExistenceGated tests that save updates stored rows and inserts new ones
func (suite *FacadeTestSuite) TestSave_ExistenceGated() {
	before := suite.stats()

	rock, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	update := *rock
	update.Media = nil
	update.Title = "Rock Legends"

	saved, err := suite.library.Playlists.Save(suite.ctx, update)
	suite.Require().NoError(err)
	suite.Equal(database.SeedPlaylistRockClassics, saved.ID)
	suite.Equal("Rock Legends", saved.Title)
	suite.Equal(2, saved.MediaCount, "memberships survive an update")
	suite.Equal(before.Playlists, suite.stats().Playlists)

	created, err := suite.library.Playlists.Save(suite.ctx, models.PlaylistDetail{
		Title: "Podcasts I Like",
		Type:  database.MediaTypeAudioBook,
	})
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, created.ID)
	suite.Equal(before.Playlists+1, suite.stats().Playlists)

	unknown := uuid.New()
	fresh, err := suite.library.Playlists.Save(suite.ctx, models.PlaylistDetail{ID: unknown, Title: "New", Type: database.MediaTypeVideo})
	suite.Require().NoError(err)
	suite.NotEqual(unknown, fresh.ID, "an unknown identity is replaced")
	suite.Equal(before.Playlists+2, suite.stats().Playlists)

	suite.Equal([]Event{
		{Action: ActionUpdated, Aggregate: AggregatePlaylist, ID: database.SeedPlaylistRockClassics},
		{Action: ActionAdded, Aggregate: AggregatePlaylist, ID: created.ID},
		{Action: ActionAdded, Aggregate: AggregatePlaylist, ID: fresh.ID},
	}, suite.events.all())
}

// TestSave_TypeIsFixed tests that updates never change the playlist type
func (suite *FacadeTestSuite) TestSave_TypeIsFixed() {
	saved, err := suite.library.Playlists.Save(suite.ctx, models.PlaylistDetail{
		ID:    database.SeedPlaylistLateNightJazz,
		Title: "Late Night Jazz",
		Type:  database.MediaTypeVideo,
	})
	suite.Require().NoError(err)
	suite.Equal(database.MediaTypeMusic, saved.Type)
}

// TestSave_CollectionGuard tests that nested collections are rejected without touching the store
func (suite *FacadeTestSuite) TestSave_CollectionGuard() {
	before := suite.stats()

	rock, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(rock.Media)
	rock.Title = "Changed"

	_, err = suite.library.Playlists.Save(suite.ctx, *rock)
	suite.ErrorIs(err, ErrInvalidArgument)

	idiot, err := suite.library.Media.Get(suite.ctx, database.SeedMediumAmericanIdiot)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(idiot.Playlists)
	_, err = suite.library.Media.Save(suite.ctx, *idiot)
	suite.ErrorIs(err, ErrInvalidArgument)

	suite.Equal(before, suite.stats())
	stored, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	suite.Equal("Rock Classics", stored.Title)
	suite.Empty(suite.events.all())
}

// TestDelete tests the cascading playlist delete
func (suite *FacadeTestSuite) TestDelete() {
	before := suite.stats()

	suite.Require().NoError(suite.library.Playlists.Delete(suite.ctx, database.SeedPlaylistRockClassics))

	after := suite.stats()
	suite.Equal(before.Playlists-1, after.Playlists)
	suite.Equal(before.Memberships-2, after.Memberships)
	suite.Equal(before.Multimedia, after.Multimedia)

	err := suite.library.Playlists.Delete(suite.ctx, database.SeedPlaylistRockClassics)
	suite.ErrorIs(err, ErrNotFound)
}

// TestByType tests filtering playlists by type
func (suite *FacadeTestSuite) TestByType() {
	videos, err := suite.library.Playlists.ByType(suite.ctx, database.MediaTypeVideo)
	suite.Require().NoError(err)
	suite.Equal([]string{"Movie Night"}, titlesOf(videos, playlistTitle))

	none, err := suite.library.Playlists.ByType(suite.ctx, "Podcast")
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

// TestByName tests the case-insensitive prefix search
func (suite *FacadeTestSuite) TestByName() {
	tests := []struct {
		prefix string
		want   []string
	}{
		{prefix: "", want: []string{"Late Night Jazz", "Movie Night", "Rock Classics", "bedtime stories"}},
		{prefix: "ROCK", want: []string{"Rock Classics"}},
		{prefix: "B", want: []string{"bedtime stories"}},
		{prefix: "night", want: []string{}},
		{prefix: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.prefix, func() {
			got, err := suite.library.Playlists.ByName(suite.ctx, tt.prefix)
			suite.Require().NoError(err)
			suite.Equal(tt.want, titlesOf(got, playlistTitle))
		})
	}
}

// TestSorted tests sorting playlists by each key
func (suite *FacadeTestSuite) TestSorted() {
	tests := []struct {
		name  string
		key   PlaylistSortKey
		order SortOrder
		typ   database.MediaType
		want  []string
	}{
		{
			name: "title ignores case",
			key:  PlaylistSortTitle, order: Ascending,
			want: []string{"bedtime stories", "Late Night Jazz", "Movie Night", "Rock Classics"},
		},
		{
			name: "title descending",
			key:  PlaylistSortTitle, order: Descending,
			want: []string{"Rock Classics", "Movie Night", "Late Night Jazz", "bedtime stories"},
		},
		{
			name: "media count descending keeps ties stable",
			key:  PlaylistSortMediaCount, order: Descending,
			want: []string{"Movie Night", "Rock Classics", "bedtime stories", "Late Night Jazz"},
		},
		{
			name: "total duration",
			key:  PlaylistSortTotalDuration, order: Ascending,
			want: []string{"Late Night Jazz", "Rock Classics", "Movie Night", "bedtime stories"},
		},
		{
			name: "filtered by type",
			key:  PlaylistSortMediaCount, order: Ascending, typ: database.MediaTypeMusic,
			want: []string{"Late Night Jazz", "Rock Classics"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.library.Playlists.Sorted(suite.ctx, tt.key, tt.order, tt.typ)
			suite.Require().NoError(err)
			suite.Equal(tt.want, titlesOf(got, playlistTitle))
		})
	}
}

// TestMediaSorted tests filtering and sorting the media of a playlist
func (suite *FacadeTestSuite) TestMediaSorted() {
	rock := database.SeedPlaylistRockClassics
	tests := []struct {
		name     string
		filterBy MediaFilterKey
		filter   string
		key      MediaSortKey
		order    SortOrder
		want     []string
	}{
		{name: "title filter", filterBy: MediaFilterTitle, filter: "Bohemian", key: MediaSortTitle, order: Ascending, want: []string{"Bohemian Rhapsody"}},
		{name: "no filter ascending", filterBy: MediaFilterTitle, key: MediaSortTitle, order: Ascending, want: []string{"American Idiot", "Bohemian Rhapsody"}},
		{name: "no filter descending", filterBy: MediaFilterTitle, key: MediaSortTitle, order: Descending, want: []string{"Bohemian Rhapsody", "American Idiot"}},
		{name: "substring ignores case", filterBy: MediaFilterTitle, filter: "IDIOT", key: MediaSortTitle, order: Ascending, want: []string{"American Idiot"}},
		{name: "author filter", filterBy: MediaFilterAuthor, filter: "queen", key: MediaSortTitle, order: Ascending, want: []string{"Bohemian Rhapsody"}},
		{name: "filter without matches", filterBy: MediaFilterAuthor, filter: "Beatles", key: MediaSortTitle, order: Ascending, want: []string{}},
		{name: "duration descending", key: MediaSortDuration, order: Descending, want: []string{"Bohemian Rhapsody", "American Idiot"}},
		{name: "added date", key: MediaSortAddedDate, order: Ascending, want: []string{"Bohemian Rhapsody", "American Idiot"}},
		{name: "author", key: MediaSortAuthor, order: Ascending, want: []string{"American Idiot", "Bohemian Rhapsody"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.library.Playlists.MediaSorted(suite.ctx, rock, tt.filterBy, tt.filter, tt.key, tt.order)
			suite.Require().NoError(err)
			suite.Equal(tt.want, titlesOf(got, mediumTitle))
			for _, m := range got {
				suite.NotNil(m.AddedDate)
			}
		})
	}
}

// TestMedia_EmptyAndMissingPlaylist tests that empty and unknown playlists yield no media
func (suite *FacadeTestSuite) TestMedia_EmptyAndMissingPlaylist() {
	for _, id := range []uuid.UUID{database.SeedPlaylistLateNightJazz, uuid.New()} {
		sorted, err := suite.library.Playlists.MediaSorted(suite.ctx, id, MediaFilterNone, "", MediaSortTitle, Ascending)
		suite.Require().NoError(err)
		suite.NotNil(sorted)
		suite.Empty(sorted)

		byTitle, err := suite.library.Playlists.MediaByTitle(suite.ctx, id, "")
		suite.Require().NoError(err)
		suite.NotNil(byTitle)
		suite.Empty(byTitle)
	}
}

// TestMediaByTitle tests the prefix search inside a playlist
func (suite *FacadeTestSuite) TestMediaByTitle() {
	all, err := suite.library.Playlists.MediaByTitle(suite.ctx, database.SeedPlaylistRockClassics, "")
	suite.Require().NoError(err)
	suite.Equal([]string{"American Idiot", "Bohemian Rhapsody"}, titlesOf(all, mediumTitle))

	b, err := suite.library.Playlists.MediaByTitle(suite.ctx, database.SeedPlaylistRockClassics, "boh")
	suite.Require().NoError(err)
	suite.Equal([]string{"Bohemian Rhapsody"}, titlesOf(b, mediumTitle))

	none, err := suite.library.Playlists.MediaByTitle(suite.ctx, database.SeedPlaylistRockClassics, "Rhapsody")
	suite.Require().NoError(err)
	suite.Empty(none)
}

// TestAddAndRemoveMedium tests membership changes
func (suite *FacadeTestSuite) TestAddAndRemoveMedium() {
	jazz, five := database.SeedPlaylistLateNightJazz, database.SeedMediumTakeFive

	added, err := suite.library.Playlists.AddMedium(suite.ctx, jazz, five)
	suite.Require().NoError(err)
	suite.Equal("Take Five", added.Title)
	suite.NotNil(added.AddedDate)

	_, err = suite.library.Playlists.AddMedium(suite.ctx, jazz, five)
	suite.ErrorIs(err, ErrInvalidOperation)
	suite.ErrorIs(err, ErrConstraintViolation)

	_, err = suite.library.Playlists.AddMedium(suite.ctx, jazz, database.SeedMediumAlien)
	suite.ErrorIs(err, ErrInvalidArgument)

	_, err = suite.library.Playlists.AddMedium(suite.ctx, jazz, uuid.New())
	suite.ErrorIs(err, ErrConstraintViolation)

	_, err = suite.library.Playlists.AddMedium(suite.ctx, uuid.New(), five)
	suite.ErrorIs(err, ErrConstraintViolation)

	detail, err := suite.library.Playlists.Get(suite.ctx, jazz)
	suite.Require().NoError(err)
	suite.Equal(1, detail.MediaCount)
	suite.Equal(324, detail.TotalDuration)

	suite.Require().NoError(suite.library.Playlists.RemoveMedium(suite.ctx, jazz, five))
	err = suite.library.Playlists.RemoveMedium(suite.ctx, jazz, five)
	suite.ErrorIs(err, ErrNotFound)

	medium, err := suite.library.Media.Get(suite.ctx, five)
	suite.Require().NoError(err)
	suite.NotNil(medium, "removing a membership keeps the medium")
}
