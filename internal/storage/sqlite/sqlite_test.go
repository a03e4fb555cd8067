package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkozlowski/albumz/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "hash"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := createTestUser(t, store, "alice")
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUserByUsername round-trips", func(t *testing.T) {
		created := createTestUser(t, store, "bob")

		got, err := store.GetUserByUsername(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got == nil || got.ID != created.ID {
			t.Errorf("Expected user %v, got %v", created, got)
		}
	})

	t.Run("GetUserByUsername returns nil for unknown name", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %v", got)
		}
	})

	t.Run("CreateUser rejects duplicate username", func(t *testing.T) {
		createTestUser(t, store, "carol")
		dup := &models.User{Username: "carol", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate username to fail")
		}
	})

	t.Run("GetUserByID round-trips", func(t *testing.T) {
		created := createTestUser(t, store, "dave")

		got, err := store.GetUserByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Username != "dave" {
			t.Errorf("Expected dave, got %v", got)
		}
	})
}

func TestAlbums(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	t.Run("CreateAlbum generates ID and add date", func(t *testing.T) {
		album := &models.Album{
			UserID: user.ID,
			Title:  "Rust In Peace",
			Artist: "Megadeth",
			Genre:  models.GenreRock,
			Owned:  true,
		}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}
		if album.ID == "" {
			t.Error("Expected album ID to be generated")
		}
		if album.AddDate.IsZero() {
			t.Error("Expected AddDate to be set")
		}
	})

	t.Run("GetAlbum round-trips all fields", func(t *testing.T) {
		pubDate := time.Date(1971, time.November, 8, 0, 0, 0, 0, time.UTC)
		original := &models.Album{
			UserID:  user.ID,
			Title:   "Led Zeppelin IV",
			Artist:  "Led Zeppelin",
			PubDate: &pubDate,
			Genre:   models.GenreRock,
			Rating:  models.RatingExcellent,
			Owned:   true,
		}
		if err := store.CreateAlbum(ctx, original); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}

		got, err := store.GetAlbum(ctx, user.ID, original.ID)
		if err != nil {
			t.Fatalf("GetAlbum failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected album, got nil")
		}
		if got.Title != original.Title || got.Artist != original.Artist {
			t.Errorf("Expected %s, got %s", original, got)
		}
		if got.PubDate == nil || !got.PubDate.Equal(pubDate) {
			t.Errorf("Expected pub date %v, got %v", pubDate, got.PubDate)
		}
		if got.Genre != models.GenreRock || got.Rating != models.RatingExcellent {
			t.Errorf("Expected genre/rating round-trip, got %s/%d", got.Genre, got.Rating)
		}
		if !got.Owned {
			t.Error("Expected owned album")
		}
	})

	t.Run("GetAlbum is scoped to the user", func(t *testing.T) {
		other := createTestUser(t, store, "mallory")

		album := &models.Album{UserID: user.ID, Title: "Thriller", Artist: "Michael Jackson", Genre: models.GenrePop, Owned: true}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}

		got, err := store.GetAlbum(ctx, other.ID, album.ID)
		if err != nil {
			t.Fatalf("GetAlbum failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for foreign album, got %v", got)
		}
	})

	t.Run("FindAlbumByIdentity matches exact title and artist", func(t *testing.T) {
		album := &models.Album{UserID: user.ID, Title: "Kind of Blue", Artist: "Miles Davis", Genre: models.GenreJazz, Owned: false}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}

		got, err := store.FindAlbumByIdentity(ctx, user.ID, "Kind of Blue", "Miles Davis")
		if err != nil {
			t.Fatalf("FindAlbumByIdentity failed: %v", err)
		}
		if got == nil || got.ID != album.ID {
			t.Errorf("Expected %v, got %v", album, got)
		}

		none, err := store.FindAlbumByIdentity(ctx, user.ID, "Kind of Blue", "Someone Else")
		if err != nil {
			t.Fatalf("FindAlbumByIdentity failed: %v", err)
		}
		if none != nil {
			t.Errorf("Expected nil, got %v", none)
		}
	})

	t.Run("UpdateAlbum persists changed fields", func(t *testing.T) {
		album := &models.Album{UserID: user.ID, Title: "Countdown", Artist: "Megadeth", Genre: models.GenreRock, Owned: false}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}

		album.Title = "Countdown to Extinction"
		album.Rating = models.RatingGood
		album.Owned = true
		if err := store.UpdateAlbum(ctx, album); err != nil {
			t.Fatalf("UpdateAlbum failed: %v", err)
		}

		got, err := store.GetAlbum(ctx, user.ID, album.ID)
		if err != nil {
			t.Fatalf("GetAlbum failed: %v", err)
		}
		if got.Title != "Countdown to Extinction" || got.Rating != models.RatingGood || !got.Owned {
			t.Errorf("Expected updated album, got %+v", got)
		}
	})

	t.Run("UpdateAlbum fails for unknown id", func(t *testing.T) {
		album := &models.Album{ID: "missing", UserID: user.ID, Title: "X", Artist: "Y", Genre: models.GenreOther}
		if err := store.UpdateAlbum(ctx, album); err == nil {
			t.Error("Expected error for unknown album")
		}
	})

	t.Run("DeleteAlbum removes the row", func(t *testing.T) {
		album := &models.Album{UserID: user.ID, Title: "Doomed", Artist: "Nobody", Genre: models.GenreOther, Owned: true}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}
		if err := store.DeleteAlbum(ctx, user.ID, album.ID); err != nil {
			t.Fatalf("DeleteAlbum failed: %v", err)
		}

		got, err := store.GetAlbum(ctx, user.ID, album.ID)
		if err != nil {
			t.Fatalf("GetAlbum failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil after delete, got %v", got)
		}
	})

	t.Run("unique identity index rejects duplicates", func(t *testing.T) {
		a := &models.Album{UserID: user.ID, Title: "Dup", Artist: "Dup Artist", Genre: models.GenreOther, Owned: true}
		if err := store.CreateAlbum(ctx, a); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}
		b := &models.Album{UserID: user.ID, Title: "Dup", Artist: "Dup Artist", Genre: models.GenreOther, Owned: false}
		if err := store.CreateAlbum(ctx, b); err == nil {
			t.Error("Expected duplicate identity insert to fail")
		}
	})
}

func TestListAlbums(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	seed := []struct {
		title, artist string
		owned         bool
	}{
		{"Rust In Peace", "Megadeth", true},
		{"Youthanasia", "Megadeth", false},
		{"Kind of Blue", "Miles Davis", true},
	}
	for _, s := range seed {
		album := &models.Album{UserID: user.ID, Title: s.title, Artist: s.artist, Genre: models.GenreOther, Owned: s.owned}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}
	}

	t.Run("filters by owned state", func(t *testing.T) {
		owned, err := store.ListAlbums(ctx, user.ID, true, "")
		if err != nil {
			t.Fatalf("ListAlbums failed: %v", err)
		}
		if len(owned) != 2 {
			t.Errorf("Expected 2 owned albums, got %d", len(owned))
		}

		wishlist, err := store.ListAlbums(ctx, user.ID, false, "")
		if err != nil {
			t.Fatalf("ListAlbums failed: %v", err)
		}
		if len(wishlist) != 1 {
			t.Errorf("Expected 1 wishlist album, got %d", len(wishlist))
		}
	})

	t.Run("search matches case-insensitive substrings", func(t *testing.T) {
		got, err := store.ListAlbums(ctx, user.ID, true, "MEGA")
		if err != nil {
			t.Fatalf("ListAlbums failed: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Rust In Peace" {
			t.Errorf("Expected Rust In Peace, got %v", got)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		other := createTestUser(t, store, "bob")
		got, err := store.ListAlbums(ctx, other.ID, true, "")
		if err != nil {
			t.Fatalf("ListAlbums failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected no albums, got %d", len(got))
		}
	})
}

func TestAverageRating(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	seed := []struct {
		title  string
		genre  models.Genre
		rating models.Rating
	}{
		{"A", models.GenreRock, models.RatingBest},
		{"B", models.GenreRock, models.RatingBad},
		{"C", models.GenreJazz, models.RatingNoOpinion},
	}
	for _, s := range seed {
		album := &models.Album{UserID: user.ID, Title: s.title, Artist: "X", Genre: s.genre, Rating: s.rating, Owned: true}
		if err := store.CreateAlbum(ctx, album); err != nil {
			t.Fatalf("CreateAlbum failed: %v", err)
		}
	}

	t.Run("averages nonzero ratings", func(t *testing.T) {
		avg, err := store.AverageRating(ctx, user.ID, "")
		if err != nil {
			t.Fatalf("AverageRating failed: %v", err)
		}
		if avg != 4 {
			t.Errorf("Expected 4, got %f", avg)
		}
	})

	t.Run("genre filter restricts the aggregate", func(t *testing.T) {
		avg, err := store.AverageRating(ctx, user.ID, models.GenreJazz)
		if err != nil {
			t.Fatalf("AverageRating failed: %v", err)
		}
		if avg != 0 {
			t.Errorf("Expected 0 for genre with no rated albums, got %f", avg)
		}
	})
}
