package models

import (
	"fmt"

	"github.com/jon4hz/playbox/internal/database"
	"github.com/jon4hz/playbox/internal/facade"
	"github.com/jon4hz/playbox/internal/models"
)

// PlaylistQuery holds the query parameters of the playlist listing.
type PlaylistQuery struct {
	Type  string `form:"type"`
	Name  string `form:"name"`
	Sort  string `form:"sort"`
	Order string `form:"order"`
}

// PlaylistListing is the parsed form of a PlaylistQuery.
type PlaylistListing struct {
	Type  database.MediaType
	Name  string
	Sort  facade.PlaylistSortKey
	Order facade.SortOrder
	// Sorted is set when a sort key or order was requested explicitly.
	Sorted bool
}

// ToPlaylistListing validates q.
func ToPlaylistListing(q PlaylistQuery) (PlaylistListing, error) {
	t, err := ToMediaType(q.Type)
	if err != nil {
		return PlaylistListing{}, err
	}
	sort, err := facade.ParsePlaylistSortKey(q.Sort)
	if err != nil {
		return PlaylistListing{}, err
	}
	order, err := facade.ParseSortOrder(q.Order)
	if err != nil {
		return PlaylistListing{}, err
	}
	return PlaylistListing{
		Type:   t,
		Name:   q.Name,
		Sort:   sort,
		Order:  order,
		Sorted: q.Sort != "" || q.Order != "",
	}, nil
}

// PlaylistMediaQuery holds the query parameters of the media listing of a playlist.
// A set Prefix selects the title prefix search, the other fields are ignored then.
type PlaylistMediaQuery struct {
	FilterBy string  `form:"filterBy"`
	Filter   string  `form:"filter"`
	Sort     string  `form:"sort"`
	Order    string  `form:"order"`
	Prefix   *string `form:"prefix"`
}

// PlaylistMediaListing is the parsed form of a PlaylistMediaQuery.
type PlaylistMediaListing struct {
	FilterBy facade.MediaFilterKey
	Filter   string
	Sort     facade.MediaSortKey
	Order    facade.SortOrder
}

// ToPlaylistMediaListing validates q.
func ToPlaylistMediaListing(q PlaylistMediaQuery) (PlaylistMediaListing, error) {
	filterBy, err := facade.ParseMediaFilterKey(q.FilterBy)
	if err != nil {
		return PlaylistMediaListing{}, err
	}
	sort, err := facade.ParseMediaSortKey(q.Sort)
	if err != nil {
		return PlaylistMediaListing{}, err
	}
	order, err := facade.ParseSortOrder(q.Order)
	if err != nil {
		return PlaylistMediaListing{}, err
	}
	return PlaylistMediaListing{
		FilterBy: filterBy,
		Filter:   q.Filter,
		Sort:     sort,
		Order:    order,
	}, nil
}

// MediaQuery holds the query parameters of the media listing.
type MediaQuery struct {
	Type  string `form:"type"`
	Title string `form:"title"`
}

// AddMediumRequest is the body of a request that links a medium to a playlist.
type AddMediumRequest struct {
	MediumID string `json:"mediumId" binding:"required,uuid"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToMediaType parses an optional media type parameter. An empty string is no type.
func ToMediaType(s string) (database.MediaType, error) {
	if s == "" {
		return "", nil
	}
	t, ok := database.ParseMediaType(s)
	if !ok {
		return "", &models.ArgumentError{Field: "type", Reason: fmt.Sprintf("unknown media type %q", s)}
	}
	return t, nil
}
