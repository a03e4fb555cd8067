package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkozlowski/albumz/internal/models"
)

const albumColumns = "id, user_id, title, artist, pub_date, genre, rating, add_date, owned"

// CreateAlbum inserts a new album, assigning its ID and add date.
func (s *SQLiteStore) CreateAlbum(ctx context.Context, album *models.Album) error {
	if album.ID == "" {
		album.ID = uuid.New().String()
	}
	if album.AddDate.IsZero() {
		album.AddDate = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO albums ("+albumColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		album.ID,
		album.UserID,
		album.Title,
		album.Artist,
		formatDate(album.PubDate),
		string(album.Genre),
		int(album.Rating),
		album.AddDate.Format(models.DateLayout),
		album.Owned,
	)
	if err != nil {
		return fmt.Errorf("failed to insert album: %w", err)
	}
	return nil
}

// GetAlbum retrieves an album by id, scoped to the user.
// Returns (nil, nil) when the album does not exist for that user.
func (s *SQLiteStore) GetAlbum(ctx context.Context, userID, albumID string) (*models.Album, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+albumColumns+" FROM albums WHERE user_id = ? AND id = ?",
		userID, albumID,
	)
	return scanAlbum(row)
}

// FindAlbumByIdentity retrieves the user's album with the exact (title, artist)
// pair. Returns (nil, nil) when there is none.
func (s *SQLiteStore) FindAlbumByIdentity(ctx context.Context, userID, title, artist string) (*models.Album, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+albumColumns+" FROM albums WHERE user_id = ? AND title = ? AND artist = ?",
		userID, title, artist,
	)
	return scanAlbum(row)
}

// UpdateAlbum overwrites the mutable fields of an existing album.
func (s *SQLiteStore) UpdateAlbum(ctx context.Context, album *models.Album) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE albums
		 SET title = ?, artist = ?, pub_date = ?, genre = ?, rating = ?, owned = ?
		 WHERE user_id = ? AND id = ?`,
		album.Title,
		album.Artist,
		formatDate(album.PubDate),
		string(album.Genre),
		int(album.Rating),
		album.Owned,
		album.UserID,
		album.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update album: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("album not found: %s", album.ID)
	}
	return nil
}

// DeleteAlbum removes an album by id, scoped to the user.
func (s *SQLiteStore) DeleteAlbum(ctx context.Context, userID, albumID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM albums WHERE user_id = ? AND id = ?",
		userID, albumID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}
	return nil
}

// ListAlbums returns the user's albums with the given owned state, newest
// first. A non-empty query matches title or artist as a substring;
// SQLite's LIKE is case-insensitive for ASCII.
func (s *SQLiteStore) ListAlbums(ctx context.Context, userID string, owned bool, query string) ([]*models.Album, error) {
	sqlQuery := "SELECT " + albumColumns + " FROM albums WHERE user_id = ? AND owned = ?"
	args := []any{userID, owned}
	if query != "" {
		sqlQuery += " AND (title LIKE ? OR artist LIKE ?)"
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	sqlQuery += " ORDER BY add_date DESC, artist, title"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer rows.Close()

	var albums []*models.Album
	for rows.Next() {
		album, err := scanAlbumRow(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate albums: %w", err)
	}
	return albums, nil
}

// AverageRating returns the mean of the user's nonzero ratings, optionally
// restricted to one genre. Albums rated 0 have no opinion yet and are
// excluded from the average.
func (s *SQLiteStore) AverageRating(ctx context.Context, userID string, genre models.Genre) (float64, error) {
	sqlQuery := "SELECT AVG(rating) FROM albums WHERE user_id = ? AND rating > 0"
	args := []any{userID}
	if genre != "" {
		sqlQuery += " AND genre = ?"
		args = append(args, string(genre))
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg.Float64, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAlbum(row *sql.Row) (*models.Album, error) {
	album, err := scanAlbumRow(row)
	if err == sql.ErrNoRows {
		return nil, nil // Album not found
	}
	if err != nil {
		return nil, err
	}
	return album, nil
}

func scanAlbumRow(sc scanner) (*models.Album, error) {
	album := &models.Album{}
	var (
		pubDate sql.NullString
		genre   string
		rating  int
		addDate string
	)
	err := sc.Scan(
		&album.ID,
		&album.UserID,
		&album.Title,
		&album.Artist,
		&pubDate,
		&genre,
		&rating,
		&addDate,
		&album.Owned,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan album: %w", err)
	}

	album.Genre = models.Genre(genre)
	album.Rating = models.Rating(rating)
	if album.PubDate, err = parseDate(pubDate); err != nil {
		return nil, err
	}
	if album.AddDate, err = time.Parse(models.DateLayout, addDate); err != nil {
		return nil, fmt.Errorf("failed to parse add date: %w", err)
	}
	return album, nil
}

// formatDate converts an optional date to its TEXT column value.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.DateLayout)
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publication date: %w", err)
	}
	return &t, nil
}
