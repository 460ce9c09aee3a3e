package database

import "strings"

// MediaType is the kind of a multimedia item. It doubles as the type of a playlist and
// as the discriminator value of the multimedia table.
type MediaType string

const (
	MediaTypeMusic     MediaType = "Music"
	MediaTypeVideo     MediaType = "Video"
	MediaTypeAudioBook MediaType = "AudioBook"
)

// MediaTypes lists every media type.
var MediaTypes = []MediaType{MediaTypeMusic, MediaTypeVideo, MediaTypeAudioBook}

// AudioFormat is a container format shared by music and audio books.
type AudioFormat string

const (
	AudioFormatMp3  AudioFormat = "Mp3"
	AudioFormatWav  AudioFormat = "Wav"
	AudioFormatFlac AudioFormat = "Flac"
	AudioFormatAac  AudioFormat = "Aac"
)

// AudioFormats lists every audio format.
var AudioFormats = []AudioFormat{AudioFormatMp3, AudioFormatWav, AudioFormatFlac, AudioFormatAac}

// VideoFormat is a container format for videos.
type VideoFormat string

const (
	VideoFormatMp4 VideoFormat = "Mp4"
	VideoFormatAvi VideoFormat = "Avi"
	VideoFormatMkv VideoFormat = "Mkv"
	VideoFormatMov VideoFormat = "Mov"
)

// VideoFormats lists every video format.
var VideoFormats = []VideoFormat{VideoFormatMp4, VideoFormatAvi, VideoFormatMkv, VideoFormatMov}

// MusicGenre is the genre of a music item.
type MusicGenre string

const (
	MusicGenreJazz       MusicGenre = "Jazz"
	MusicGenreRock       MusicGenre = "Rock"
	MusicGenreHipHop     MusicGenre = "HipHop"
	MusicGenreClassical  MusicGenre = "Classical"
	MusicGenreElectronic MusicGenre = "Electronic"
	MusicGenrePop        MusicGenre = "Pop"
	MusicGenrePunk       MusicGenre = "Punk"
	MusicGenreAnime      MusicGenre = "Anime"
	MusicGenreOther      MusicGenre = "Other"
)

// MusicGenres lists every music genre.
var MusicGenres = []MusicGenre{
	MusicGenreJazz, MusicGenreRock, MusicGenreHipHop, MusicGenreClassical, MusicGenreElectronic,
	MusicGenrePop, MusicGenrePunk, MusicGenreAnime, MusicGenreOther,
}

// AudioBookGenre is the genre of an audio book.
type AudioBookGenre string

const (
	AudioBookGenreFiction    AudioBookGenre = "Fiction"
	AudioBookGenreNonFiction AudioBookGenre = "NonFiction"
	AudioBookGenreMystery    AudioBookGenre = "Mystery"
	AudioBookGenreFantasy    AudioBookGenre = "Fantasy"
	AudioBookGenreSciFi      AudioBookGenre = "SciFi"
	AudioBookGenreRomance    AudioBookGenre = "Romance"
	AudioBookGenreDystopia   AudioBookGenre = "Dystopia"
)

// AudioBookGenres lists every audio book genre.
var AudioBookGenres = []AudioBookGenre{
	AudioBookGenreFiction, AudioBookGenreNonFiction, AudioBookGenreMystery, AudioBookGenreFantasy,
	AudioBookGenreSciFi, AudioBookGenreRomance, AudioBookGenreDystopia,
}

// VideoGenre is the genre of a video.
type VideoGenre string

const (
	VideoGenreComedy   VideoGenre = "Comedy"
	VideoGenreHorror   VideoGenre = "Horror"
	VideoGenreThriller VideoGenre = "Thriller"
	VideoGenreFantasy  VideoGenre = "Fantasy"
	VideoGenreSciFi    VideoGenre = "SciFi"
	VideoGenreDrama    VideoGenre = "Drama"
	VideoGenreOther    VideoGenre = "Other"
)

// VideoGenres lists every video genre.
var VideoGenres = []VideoGenre{
	VideoGenreComedy, VideoGenreHorror, VideoGenreThriller, VideoGenreFantasy,
	VideoGenreSciFi, VideoGenreDrama, VideoGenreOther,
}

// ParseMediaType parses s case-insensitively.
func ParseMediaType(s string) (MediaType, bool) { return parseEnum(s, MediaTypes) }

// ParseAudioFormat parses s case-insensitively.
func ParseAudioFormat(s string) (AudioFormat, bool) { return parseEnum(s, AudioFormats) }

// ParseVideoFormat parses s case-insensitively.
func ParseVideoFormat(s string) (VideoFormat, bool) { return parseEnum(s, VideoFormats) }

// ParseMusicGenre parses s case-insensitively.
func ParseMusicGenre(s string) (MusicGenre, bool) { return parseEnum(s, MusicGenres) }

// ParseAudioBookGenre parses s case-insensitively.
func ParseAudioBookGenre(s string) (AudioBookGenre, bool) { return parseEnum(s, AudioBookGenres) }

// ParseVideoGenre parses s case-insensitively.
func ParseVideoGenre(s string) (VideoGenre, bool) { return parseEnum(s, VideoGenres) }

func parseEnum[T ~string](s string, values []T) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
