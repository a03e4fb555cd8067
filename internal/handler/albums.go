package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkozlowski/albumz/internal/domain"
	"github.com/mkozlowski/albumz/internal/middleware"
	"github.com/mkozlowski/albumz/internal/models"
)

// User-facing messages for the expected domain outcomes.
const (
	msgAlreadyInCollection = "You already own this album!"
	msgAlreadyOnWishlist   = "You already have this album on wishlist!"
	msgAlbumDoesNotExist   = "Album does not exist."
	msgPubDateInFuture     = "Publication date cannot be in the future."
	msgMovedToCollection   = "Album has been moved to collection."
)

// albumRequest is the payload for add and edit operations. The owned flag
// is deliberately absent: ownership changes only through the dedicated
// collection/wishlist/move endpoints.
type albumRequest struct {
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	PubDate *string `json:"pub_date"`
	Genre   string  `json:"genre"`
	Rating  int     `json:"user_rating"`
}

// candidate converts the payload into a domain candidate album.
func (r *albumRequest) candidate() (*models.Album, error) {
	genre, err := models.ParseGenre(r.Genre)
	if err != nil {
		return nil, err
	}

	var pubDate *time.Time
	if r.PubDate != nil && *r.PubDate != "" {
		t, err := time.Parse(models.DateLayout, *r.PubDate)
		if err != nil {
			return nil, fmt.Errorf("pub_date must be formatted as %s", models.DateLayout)
		}
		pubDate = &t
	}

	return &models.Album{
		Title:   r.Title,
		Artist:  r.Artist,
		PubDate: pubDate,
		Genre:   genre,
		Rating:  models.Rating(r.Rating),
	}, nil
}

type albumResponse struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	PubDate *string `json:"pub_date"`
	Genre   string  `json:"genre"`
	Rating  int     `json:"user_rating"`
	AddDate string  `json:"add_date"`
	Owned   bool    `json:"owned"`
}

func toAlbumResponse(a *models.Album) albumResponse {
	var pubDate *string
	if a.PubDate != nil {
		s := a.PubDate.Format(models.DateLayout)
		pubDate = &s
	}
	return albumResponse{
		ID:      a.ID,
		Title:   a.Title,
		Artist:  a.Artist,
		PubDate: pubDate,
		Genre:   string(a.Genre),
		Rating:  int(a.Rating),
		AddDate: a.AddDate.Format(models.DateLayout),
		Owned:   a.Owned,
	}
}

func toAlbumListResponse(albums []*models.Album) []albumResponse {
	out := make([]albumResponse, len(albums))
	for i, a := range albums {
		out[i] = toAlbumResponse(a)
	}
	return out
}

// renderDomainError maps each expected catalog outcome to its status code
// and message. Anything unrecognized is an internal error.
func renderDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyInCollection):
		c.JSON(http.StatusConflict, gin.H{"error": msgAlreadyInCollection})
	case errors.Is(err, domain.ErrAlreadyOnWishlist):
		c.JSON(http.StatusConflict, gin.H{"error": msgAlreadyOnWishlist})
	case errors.Is(err, domain.ErrAlbumNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgAlbumDoesNotExist})
	case errors.Is(err, domain.ErrInvalidPubDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPubDateInFuture})
	case errors.Is(err, domain.ErrInvalidAlbum):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("catalog operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindCandidate parses the request body into a candidate album, writing the
// error response itself on failure.
func bindCandidate(c *gin.Context) (*models.Album, bool) {
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	candidate, err := req.candidate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return candidate, true
}

func (h *Handler) listCollection(c *gin.Context) {
	albums, err := h.catalog.Collection(c.Request.Context(), middleware.GetUserID(c), c.Query("q"))
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": toAlbumListResponse(albums)})
}

func (h *Handler) listWishlist(c *gin.Context) {
	albums, err := h.catalog.Wishlist(c.Request.Context(), middleware.GetUserID(c), c.Query("q"))
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": toAlbumListResponse(albums)})
}

func (h *Handler) addToCollection(c *gin.Context) {
	candidate, ok := bindCandidate(c)
	if !ok {
		return
	}
	album, err := h.catalog.AddToCollection(c.Request.Context(), middleware.GetUserID(c), candidate)
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAlbumResponse(album))
}

func (h *Handler) addToWishlist(c *gin.Context) {
	candidate, ok := bindCandidate(c)
	if !ok {
		return
	}
	album, err := h.catalog.AddToWishlist(c.Request.Context(), middleware.GetUserID(c), candidate)
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAlbumResponse(album))
}

func (h *Handler) getAlbum(c *gin.Context) {
	album, err := h.catalog.GetAlbum(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlbumResponse(album))
}

func (h *Handler) editAlbum(c *gin.Context) {
	candidate, ok := bindCandidate(c)
	if !ok {
		return
	}
	album, err := h.catalog.EditAlbum(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), candidate)
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlbumResponse(album))
}

func (h *Handler) deleteAlbum(c *gin.Context) {
	if err := h.catalog.DeleteAlbum(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		renderDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) moveToCollection(c *gin.Context) {
	album, err := h.catalog.MoveToCollection(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msgMovedToCollection,
		"album":   toAlbumResponse(album),
	})
}

func (h *Handler) averageRating(c *gin.Context) {
	var genre models.Genre
	if q := c.Query("genre"); q != "" {
		g, err := models.ParseGenre(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		genre = g
	}
	avg, err := h.catalog.AverageRating(c.Request.Context(), middleware.GetUserID(c), genre)
	if err != nil {
		renderDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_rating": avg})
}
