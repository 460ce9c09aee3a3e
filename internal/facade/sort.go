package facade

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jon4hz/playbox/internal/models"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// PlaylistSortKey selects the playlist field to sort by.
type PlaylistSortKey string

const (
	PlaylistSortTitle         PlaylistSortKey = "title"
	PlaylistSortMediaCount    PlaylistSortKey = "mediaCount"
	PlaylistSortTotalDuration PlaylistSortKey = "totalDuration"
)

// MediaSortKey selects the medium field to sort by.
type MediaSortKey string

const (
	MediaSortTitle     MediaSortKey = "title"
	MediaSortAuthor    MediaSortKey = "author"
	MediaSortDuration  MediaSortKey = "duration"
	MediaSortAddedDate MediaSortKey = "addedDate"
)

// MediaFilterKey selects the medium field a filter text is matched against.
// MediaFilterNone disables filtering.
type MediaFilterKey string

const (
	MediaFilterNone   MediaFilterKey = ""
	MediaFilterTitle  MediaFilterKey = "title"
	MediaFilterAuthor MediaFilterKey = "author"
)

// ParseSortOrder parses s case-insensitively. An empty string is Ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	return parseKey(s, "order", Ascending, []SortOrder{Ascending, Descending})
}

// ParsePlaylistSortKey parses s case-insensitively. An empty string sorts by title.
func ParsePlaylistSortKey(s string) (PlaylistSortKey, error) {
	return parseKey(s, "sort", PlaylistSortTitle, []PlaylistSortKey{PlaylistSortTitle, PlaylistSortMediaCount, PlaylistSortTotalDuration})
}

// ParseMediaSortKey parses s case-insensitively. An empty string sorts by title.
func ParseMediaSortKey(s string) (MediaSortKey, error) {
	return parseKey(s, "sort", MediaSortTitle, []MediaSortKey{MediaSortTitle, MediaSortAuthor, MediaSortDuration, MediaSortAddedDate})
}

// ParseMediaFilterKey parses s case-insensitively. An empty string disables filtering.
func ParseMediaFilterKey(s string) (MediaFilterKey, error) {
	return parseKey(s, "filterBy", MediaFilterNone, []MediaFilterKey{MediaFilterTitle, MediaFilterAuthor})
}

func parseKey[T ~string](s, field string, fallback T, values []T) (T, error) {
	if s == "" {
		return fallback, nil
	}
	for _, v := range values {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return fallback, &models.ArgumentError{Field: field, Reason: fmt.Sprintf("unknown value %q", s)}
}

// compareTitle compares ordinally after upper casing both sides.
func compareTitle(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

func sortStable[E any](s []E, order SortOrder, cmpFn func(a, b E) int) {
	if order == Descending {
		slices.SortStableFunc(s, func(a, b E) int { return cmpFn(b, a) })
		return
	}
	slices.SortStableFunc(s, cmpFn)
}

func sortPlaylists(s []models.PlaylistSummary, key PlaylistSortKey, order SortOrder) {
	sortStable(s, order, func(a, b models.PlaylistSummary) int {
		switch key {
		case PlaylistSortMediaCount:
			return cmp.Compare(a.MediaCount, b.MediaCount)
		case PlaylistSortTotalDuration:
			return cmp.Compare(a.TotalDuration, b.TotalDuration)
		default:
			return compareTitle(a.Title, b.Title)
		}
	})
}

func sortMedia(s []models.MediumSummary, key MediaSortKey, order SortOrder) {
	sortStable(s, order, func(a, b models.MediumSummary) int {
		switch key {
		case MediaSortAuthor:
			return compareTitle(a.Author, b.Author)
		case MediaSortDuration:
			return cmp.Compare(durationOf(a), durationOf(b))
		case MediaSortAddedDate:
			return addedOf(a).Compare(addedOf(b))
		default:
			return compareTitle(a.Title, b.Title)
		}
	})
}

func durationOf(m models.MediumSummary) int {
	if m.Duration == nil {
		return 0
	}
	return *m.Duration
}

func addedOf(m models.MediumSummary) time.Time {
	if m.AddedDate == nil {
		return time.Time{}
	}
	return *m.AddedDate
}

// matchesFilter reports whether the selected field contains text, ignoring case.
func matchesFilter(m models.MediumSummary, key MediaFilterKey, text string) bool {
	if key == MediaFilterNone || text == "" {
		return true
	}
	field := m.Title
	if key == MediaFilterAuthor {
		field = m.Author
	}
	return strings.Contains(strings.ToUpper(field), strings.ToUpper(text))
}

// hasPrefixFold reports whether s starts with prefix, ignoring case. An empty prefix
// matches everything.
func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToUpper(s), strings.ToUpper(prefix))
}
