// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mkozlowski/albumz/internal/models"
)

// Store defines the interface for catalog persistence. Every album
// operation is scoped to the owning user; a different user's album with the
// same title and artist is invisible through this interface. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the domain engine.
type Store interface {
	// CreateAlbum persists a new album. The ID and AddDate fields are
	// populated by the store.
	CreateAlbum(ctx context.Context, album *models.Album) error

	// GetAlbum retrieves an album by id, scoped to the user.
	// Returns (nil, nil) when no such album exists for that user.
	GetAlbum(ctx context.Context, userID, albumID string) (*models.Album, error)

	// FindAlbumByIdentity retrieves the user's album with the exact
	// (title, artist) pair. Returns (nil, nil) when there is none.
	FindAlbumByIdentity(ctx context.Context, userID, title, artist string) (*models.Album, error)

	// UpdateAlbum overwrites an existing album's mutable fields.
	UpdateAlbum(ctx context.Context, album *models.Album) error

	// DeleteAlbum removes an album by id, scoped to the user.
	DeleteAlbum(ctx context.Context, userID, albumID string) error

	// ListAlbums returns the user's albums with the given owned state,
	// newest first. A non-empty query filters by case-insensitive
	// substring match against title or artist.
	ListAlbums(ctx context.Context, userID string, owned bool, query string) ([]*models.Album, error)

	// AverageRating returns the mean of the user's nonzero ratings,
	// optionally restricted to one genre (empty genre means all).
	// Returns 0 when no album has a rating.
	AverageRating(ctx context.Context, userID string, genre models.Genre) (float64, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login name.
	// Returns (nil, nil) when the username is unknown.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by id. Returns (nil, nil) when unknown.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
