// Package domain implements the catalog rules: one user, two disjoint album
// sets (collection and wishlist), and a unique (title, artist) identity
// across both. All persistence goes through storage.Store; the engine adds
// no locking of its own and performs at most one write per operation.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkozlowski/albumz/internal/models"
	"github.com/mkozlowski/albumz/internal/storage"
)

// Catalog enforces the album ownership rules for all users.
type Catalog struct {
	store storage.Store
}

// NewCatalog creates a Catalog backed by the given store.
func NewCatalog(store storage.Store) *Catalog {
	return &Catalog{store: store}
}

// ValidatePubDate checks a publication date on its own. Nil is always
// valid; a date after today fails with ErrInvalidPubDate.
func ValidatePubDate(pubDate *time.Time) error {
	a := models.Album{PubDate: pubDate}
	if !a.HasValidPubDate() {
		return ErrInvalidPubDate
	}
	return nil
}

// validateCandidate checks the fields a user can submit on add or edit.
// Candidate albums are input-only; the engine never writes through them.
func validateCandidate(candidate *models.Album) error {
	if strings.TrimSpace(candidate.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrInvalidAlbum)
	}
	if strings.TrimSpace(candidate.Artist) == "" {
		return fmt.Errorf("%w: artist must not be blank", ErrInvalidAlbum)
	}
	if !candidate.Genre.Valid() {
		return fmt.Errorf("%w: unknown genre %q", ErrInvalidAlbum, candidate.Genre)
	}
	if !candidate.Rating.Valid() {
		return fmt.Errorf("%w: rating %d out of range", ErrInvalidAlbum, candidate.Rating)
	}
	if err := ValidatePubDate(candidate.PubDate); err != nil {
		return err
	}
	return nil
}

// newAlbum builds a fresh album for persistence from a candidate, leaving
// the caller's value untouched.
func newAlbum(userID string, candidate *models.Album, owned bool) *models.Album {
	return &models.Album{
		UserID:  userID,
		Title:   candidate.Title,
		Artist:  candidate.Artist,
		PubDate: candidate.PubDate,
		Genre:   candidate.Genre,
		Rating:  candidate.Rating,
		Owned:   owned,
	}
}

// AddToCollection adds a candidate album to the user's collection.
// If the same (title, artist) is already owned it fails with
// ErrAlreadyInCollection; if it sits on the wishlist the existing record is
// promoted in place and no new row is created.
func (c *Catalog) AddToCollection(ctx context.Context, userID string, candidate *models.Album) (*models.Album, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	existing, err := c.store.FindAlbumByIdentity(ctx, userID, candidate.Title, candidate.Artist)
	if err != nil {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}
	if existing != nil {
		if existing.Owned {
			return nil, ErrAlreadyInCollection
		}
		existing.Owned = true
		if err := c.store.UpdateAlbum(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to promote album: %w", err)
		}
		slog.Debug("wishlist album promoted", "user_id", userID, "album_id", existing.ID)
		return existing, nil
	}

	album := newAlbum(userID, candidate, true)
	if err := c.store.CreateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("failed to save album: %w", err)
	}
	return album, nil
}

// AddToWishlist adds a candidate album to the user's wishlist. Any existing
// album with the same identity is a conflict, owned or not.
func (c *Catalog) AddToWishlist(ctx context.Context, userID string, candidate *models.Album) (*models.Album, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	existing, err := c.store.FindAlbumByIdentity(ctx, userID, candidate.Title, candidate.Artist)
	if err != nil {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}
	if existing != nil {
		if existing.Owned {
			return nil, ErrAlreadyInCollection
		}
		return nil, ErrAlreadyOnWishlist
	}

	album := newAlbum(userID, candidate, false)
	if err := c.store.CreateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("failed to save album: %w", err)
	}
	return album, nil
}

// EditAlbum overwrites the stored album's title, artist, publication date,
// genre and rating with the candidate's values. The owned flag is never
// touched by an edit. Renaming onto another album of the same user fails
// with the conflict matching that album's owned state, and the stored album
// is left unmodified.
func (c *Catalog) EditAlbum(ctx context.Context, userID, albumID string, candidate *models.Album) (*models.Album, error) {
	existing, err := c.store.GetAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album: %w", err)
	}
	if existing == nil {
		return nil, ErrAlbumNotFound
	}

	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	other, err := c.store.FindAlbumByIdentity(ctx, userID, candidate.Title, candidate.Artist)
	if err != nil {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}
	if other != nil && other.ID != existing.ID {
		if other.Owned {
			return nil, ErrAlreadyInCollection
		}
		return nil, ErrAlreadyOnWishlist
	}

	existing.Title = candidate.Title
	existing.Artist = candidate.Artist
	existing.PubDate = candidate.PubDate
	existing.Genre = candidate.Genre
	existing.Rating = candidate.Rating
	if err := c.store.UpdateAlbum(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save album: %w", err)
	}
	return existing, nil
}

// MoveToCollection flips a wishlist album to owned, keeping its identity.
func (c *Catalog) MoveToCollection(ctx context.Context, userID, albumID string) (*models.Album, error) {
	album, err := c.store.GetAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album: %w", err)
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	if album.Owned {
		return nil, ErrAlreadyInCollection
	}

	album.Owned = true
	if err := c.store.UpdateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("failed to save album: %w", err)
	}
	slog.Debug("album moved to collection", "user_id", userID, "album_id", album.ID)
	return album, nil
}

// GetAlbum returns one of the user's albums by id.
func (c *Catalog) GetAlbum(ctx context.Context, userID, albumID string) (*models.Album, error) {
	album, err := c.store.GetAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album: %w", err)
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// DeleteAlbum removes one of the user's albums. There is no soft delete.
func (c *Catalog) DeleteAlbum(ctx context.Context, userID, albumID string) error {
	album, err := c.store.GetAlbum(ctx, userID, albumID)
	if err != nil {
		return fmt.Errorf("failed to fetch album: %w", err)
	}
	if album == nil {
		return ErrAlbumNotFound
	}
	if err := c.store.DeleteAlbum(ctx, userID, albumID); err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}
	return nil
}

// Collection lists the user's owned albums, optionally filtered by a
// case-insensitive substring match against title or artist.
func (c *Catalog) Collection(ctx context.Context, userID, query string) ([]*models.Album, error) {
	albums, err := c.store.ListAlbums(ctx, userID, true, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	return albums, nil
}

// Wishlist lists the user's desired albums, with the same optional search.
func (c *Catalog) Wishlist(ctx context.Context, userID, query string) ([]*models.Album, error) {
	albums, err := c.store.ListAlbums(ctx, userID, false, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return albums, nil
}

// AverageRating returns the mean of the user's nonzero ratings, optionally
// restricted to one genre. Zero means no album has been rated yet.
func (c *Catalog) AverageRating(ctx context.Context, userID string, genre models.Genre) (float64, error) {
	if genre != "" && !genre.Valid() {
		return 0, fmt.Errorf("%w: unknown genre %q", ErrInvalidAlbum, genre)
	}
	avg, err := c.store.AverageRating(ctx, userID, genre)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}
