package facade

import (
	"github.com/google/uuid"
	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/models"
	"github.com/samber/lo"
)

// TestMediumGet tests the detail read with playlist back links
func (suite *FacadeTestSuite) TestMediumGet() {
	idiot, err := suite.library.Media.Get(suite.ctx, database.SeedMediumAmericanIdiot)
	suite.Require().NoError(err)
	suite.Require().NotNil(idiot)
	suite.Equal(database.MediaTypeMusic, idiot.Type)
	suite.Equal("Mp3", idiot.Format)
	suite.Equal("Punk", idiot.Genre)
	suite.Equal(database.SeedPlaylistRockClassics, idiot.PlaylistID)
	suite.Equal([]models.PlaylistNameOnly{
		{ID: database.SeedPlaylistRockClassics, Title: "Rock Classics", Type: database.MediaTypeMusic},
	}, idiot.Playlists)

	dune, err := suite.library.Media.Get(suite.ctx, database.SeedMediumDune)
	suite.Require().NoError(err)
	suite.Nil(dune.Duration)
	suite.Empty(dune.Playlists)
	suite.Equal(uuid.Nil, dune.PlaylistID)
}

// TestMediumSave_RoundTrip tests that a saved medium reads back unchanged
func (suite *FacadeTestSuite) TestMediumSave_RoundTrip() {
	before := suite.stats()
	model := models.MediumDetail{
		Title:       "Kind of Blue",
		Description: "Modal jazz",
		Author:      "Miles Davis",
		Duration:    lo.ToPtr(2740),
		ReleaseYear: lo.ToPtr(1959),
		URL:         "https://example.com/kind-of-blue.flac",
		Type:        database.MediaTypeMusic,
		Format:      "Flac",
		Genre:       "Jazz",
	}

	saved, err := suite.library.Media.Save(suite.ctx, model)
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, saved.ID)
	model.ID = saved.ID
	suite.Equal(model, saved)
	suite.Equal(before.Multimedia+1, suite.stats().Multimedia)

	saved.Title = "Kind of Blue (Legacy Edition)"
	updated, err := suite.library.Media.Save(suite.ctx, saved)
	suite.Require().NoError(err)
	suite.Equal(saved, updated)
	suite.Equal(before.Multimedia+1, suite.stats().Multimedia)
}

// TestMediumSave_SwitchVariant tests that an update can move a medium to another variant
func (suite *FacadeTestSuite) TestMediumSave_SwitchVariant() {
	dune, err := suite.library.Media.Get(suite.ctx, database.SeedMediumDune)
	suite.Require().NoError(err)

	dune.Type = ""
	dune.Format = "mkv"
	dune.Genre = "scifi"
	saved, err := suite.library.Media.Save(suite.ctx, *dune)
	suite.Require().NoError(err)
	suite.Equal(database.MediaTypeVideo, saved.Type)
	suite.Equal("Mkv", saved.Format)
	suite.Equal("SciFi", saved.Genre)

	dune.Format, dune.Genre = "Mp3", "Horror"
	_, err = suite.library.Media.Save(suite.ctx, *dune)
	suite.ErrorIs(err, ErrInvalidArgument)
}

// TestMediumSave_SwitchVariantInPlaylist tests that a linked medium keeps the type of its playlists
func (suite *FacadeTestSuite) TestMediumSave_SwitchVariantInPlaylist() {
	before := suite.stats()
	idiot, err := suite.library.Media.Get(suite.ctx, database.SeedMediumAmericanIdiot)
	suite.Require().NoError(err)

	idiot.Playlists = nil
	idiot.PlaylistID = uuid.Nil
	idiot.Type = ""
	idiot.Format, idiot.Genre = "Mkv", "Drama"
	_, err = suite.library.Media.Save(suite.ctx, *idiot)
	suite.Require().ErrorIs(err, ErrInvalidArgument)
	var argErr *models.ArgumentError
	suite.Require().ErrorAs(err, &argErr)
	suite.Equal("Format", argErr.Field)

	stored, err := suite.library.Media.Get(suite.ctx, database.SeedMediumAmericanIdiot)
	suite.Require().NoError(err)
	suite.Equal(database.MediaTypeMusic, stored.Type)
	suite.Equal("Mp3", stored.Format)

	rock, err := suite.library.Playlists.Get(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	for _, m := range rock.Media {
		suite.Equal(database.MediaTypeMusic, m.Type, m.Title)
	}
	suite.Equal(before, suite.stats())
	suite.Empty(suite.events.all())

	// staying in the music family is fine
	idiot.Format, idiot.Genre = "Flac", "Rock"
	saved, err := suite.library.Media.Save(suite.ctx, *idiot)
	suite.Require().NoError(err)
	suite.Equal(database.MediaTypeMusic, saved.Type)
	suite.Equal(database.SeedPlaylistRockClassics, saved.PlaylistID)
}

// TestMediumSave_BackReference tests that a playlist id on save links the medium
func (suite *FacadeTestSuite) TestMediumSave_BackReference() {
	before := suite.stats()

	saved, err := suite.library.Media.Save(suite.ctx, models.MediumDetail{
		Title:      "So What",
		Author:     "Miles Davis",
		Format:     "Mp3",
		Genre:      "Jazz",
		PlaylistID: database.SeedPlaylistLateNightJazz,
	})
	suite.Require().NoError(err)
	suite.Equal(database.SeedPlaylistLateNightJazz, saved.PlaylistID)
	suite.Require().Len(saved.Playlists, 1)
	suite.Equal("Late Night Jazz", saved.Playlists[0].Title)
	suite.Equal(before.Memberships+1, suite.stats().Memberships)

	// saving again with the same back reference does not add a second link
	saved.Playlists = nil
	_, err = suite.library.Media.Save(suite.ctx, saved)
	suite.Require().NoError(err)
	suite.Equal(before.Memberships+1, suite.stats().Memberships)

	_, err = suite.library.Media.Save(suite.ctx, models.MediumDetail{
		Title: "Wrong Shelf", Format: "Mp4", Genre: "Drama",
		PlaylistID: database.SeedPlaylistLateNightJazz,
	})
	suite.ErrorIs(err, ErrInvalidArgument)

	_, err = suite.library.Media.Save(suite.ctx, models.MediumDetail{
		Title: "Nowhere", Format: "Mp3", Genre: "Jazz",
		PlaylistID: uuid.New(),
	})
	suite.ErrorIs(err, ErrInvalidOperation)
	suite.ErrorIs(err, ErrConstraintViolation)

	after := suite.stats()
	suite.Equal(before.Multimedia+1, after.Multimedia, "failed saves are rolled back")
	suite.Equal(before.Memberships+1, after.Memberships)
}

// TestMediumDelete tests that referenced media cannot be deleted
func (suite *FacadeTestSuite) TestMediumDelete() {
	before := suite.stats()

	err := suite.library.Media.Delete(suite.ctx, database.SeedMediumAmericanIdiot)
	suite.ErrorIs(err, ErrInvalidOperation)
	suite.ErrorIs(err, ErrConstraintViolation)
	suite.Equal(before, suite.stats(), "the referencing membership stays intact")

	suite.Require().NoError(suite.library.Media.Delete(suite.ctx, database.SeedMediumTakeFive))
	suite.Equal(before.Multimedia-1, suite.stats().Multimedia)

	err = suite.library.Media.Delete(suite.ctx, uuid.New())
	suite.ErrorIs(err, ErrNotFound)

	suite.Equal([]Event{
		{Action: ActionRemoved, Aggregate: AggregateMedium, ID: database.SeedMediumTakeFive},
	}, suite.events.all())
}

// TestMediumQueries tests the medium specific listings
func (suite *FacadeTestSuite) TestMediumQueries() {
	books, err := suite.library.Media.ByType(suite.ctx, database.MediaTypeAudioBook)
	suite.Require().NoError(err)
	suite.Equal([]string{"Dune", "The Hobbit"}, titlesOf(books, mediumTitle))

	all, err := suite.library.Media.ByTitle(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(all, 7)

	t, err := suite.library.Media.ByTitle(suite.ctx, "t")
	suite.Require().NoError(err)
	suite.Equal([]string{"Take Five", "The Hobbit"}, titlesOf(t, mediumTitle))

	outside, err := suite.library.Media.NotInPlaylist(suite.ctx, database.SeedPlaylistRockClassics)
	suite.Require().NoError(err)
	suite.Equal([]string{"Take Five"}, titlesOf(outside, mediumTitle))

	jazz, err := suite.library.Media.NotInPlaylist(suite.ctx, database.SeedPlaylistLateNightJazz)
	suite.Require().NoError(err)
	suite.Len(jazz, 3)

	missing, err := suite.library.Media.NotInPlaylist(suite.ctx, uuid.New())
	suite.Require().NoError(err)
	suite.NotNil(missing)
	suite.Empty(missing)
}

// TestOverview tests the concurrent library summary
func (suite *FacadeTestSuite) TestOverview() {
	overview, err := suite.library.Overview(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(&Overview{
		Playlists:   4,
		Media:       7,
		Memberships: 5,
		PlaylistsByType: map[database.MediaType]int{
			database.MediaTypeMusic:     2,
			database.MediaTypeVideo:     1,
			database.MediaTypeAudioBook: 1,
		},
		MediaByType: map[database.MediaType]int{
			database.MediaTypeMusic:     3,
			database.MediaTypeVideo:     2,
			database.MediaTypeAudioBook: 2,
		},
		TotalDuration: 176 + 354 + 324 + 7500 + 7020 + 40920,
	}, overview)
}
