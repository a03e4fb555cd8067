package domain

import "errors"

// Every rule violation is a distinct sentinel so the delivery layer can map
// each one to its own user-facing message and status code. None of these is
// unexpected; callers are supposed to handle all of them.
var (
	// ErrAlreadyInCollection is returned when an operation would duplicate
	// an album the user already owns.
	ErrAlreadyInCollection = errors.New("album already in collection")

	// ErrAlreadyOnWishlist is returned when an operation would duplicate
	// an album already on the user's wishlist.
	ErrAlreadyOnWishlist = errors.New("album already on wishlist")

	// ErrAlbumNotFound is returned when the album id does not exist or
	// belongs to a different user. The two cases are indistinguishable on
	// purpose.
	ErrAlbumNotFound = errors.New("album does not exist")

	// ErrInvalidPubDate is returned when a publication date lies in the
	// future.
	ErrInvalidPubDate = errors.New("publication date cannot be in the future")

	// ErrInvalidAlbum is returned (wrapped, with field detail) when a
	// candidate album fails basic field validation.
	ErrInvalidAlbum = errors.New("invalid album")
)
