package models

import (
	"fmt"
	"strings"
	"time"
)

// Genre classifies an album. Stored as text.
type Genre string

const (
	GenreRock   Genre = "ROCK"
	GenrePop    Genre = "POP"
	GenreJazz   Genre = "JAZZ"
	GenreHipHop Genre = "HIPHOP"
	GenreOther  Genre = "OTHER"
)

// Genres lists every valid genre value.
var Genres = []Genre{GenreRock, GenrePop, GenreJazz, GenreHipHop, GenreOther}

// ParseGenre converts user input into a Genre, case-insensitively.
// An empty string maps to GenreOther, the default.
func ParseGenre(s string) (Genre, error) {
	if s == "" {
		return GenreOther, nil
	}
	g := Genre(strings.ToUpper(s))
	for _, known := range Genres {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown genre: %q", s)
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	_, err := ParseGenre(string(g))
	return err == nil
}

// Rating is the owner's opinion of an album on a 0-6 scale.
// Zero means the owner has not rated it yet.
type Rating int

const (
	RatingNoOpinion Rating = 0
	RatingTerrible  Rating = 1
	RatingBad       Rating = 2
	RatingAverage   Rating = 3
	RatingGood      Rating = 4
	RatingExcellent Rating = 5
	RatingBest      Rating = 6
)

// Valid reports whether r is within the rating scale.
func (r Rating) Valid() bool {
	return r >= RatingNoOpinion && r <= RatingBest
}

// DateLayout is the wire and storage format for album dates.
const DateLayout = "2006-01-02"

// Album is a single record in a user's catalog. Owned distinguishes the
// collection (true) from the wishlist (false). The (Title, Artist) pair is
// the album's identity: it is unique within one user's catalog regardless
// of the owned flag.
type Album struct {
	// ID is the unique identifier for the album (UUID format).
	ID string

	// UserID is the owning user. All catalog operations are scoped to it.
	UserID string

	// Title is the album title.
	Title string

	// Artist is the performing artist or band.
	Artist string

	// PubDate is the publication date. Optional; never in the future.
	PubDate *time.Time

	// Genre classifies the album. Defaults to GenreOther.
	Genre Genre

	// Rating is the owner's rating. Zero until the owner forms an opinion.
	Rating Rating

	// AddDate is the date the album entered the catalog. Set once on create.
	AddDate time.Time

	// Owned is true for collection albums, false for wishlist albums.
	Owned bool
}

// SameIdentity reports whether two albums are the same record from the
// user's point of view. Only title and artist participate; ratings, dates
// and genre do not.
func (a *Album) SameIdentity(other *Album) bool {
	if other == nil {
		return false
	}
	return a.Title == other.Title && a.Artist == other.Artist
}

// InCollection reports whether the album is owned.
func (a *Album) InCollection() bool { return a.Owned }

// OnWishlist reports whether the album is desired but not owned.
func (a *Album) OnWishlist() bool { return !a.Owned }

// HasValidPubDate reports whether the publication date is unset or not
// after today. Only the calendar date matters, not the time of day.
func (a *Album) HasValidPubDate() bool {
	if a.PubDate == nil {
		return true
	}
	return !toDate(*a.PubDate).After(toDate(time.Now()))
}

// toDate strips the time-of-day component.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (a *Album) String() string {
	return fmt.Sprintf("%s by %s", a.Title, a.Artist)
}
