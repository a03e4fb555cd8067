// Package handler exposes the catalog over a JSON REST API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkozlowski/albumz/internal/auth"
	"github.com/mkozlowski/albumz/internal/domain"
	"github.com/mkozlowski/albumz/internal/middleware"
)

// Handler holds the collaborators behind the REST surface.
type Handler struct {
	catalog *domain.Catalog
	authn   auth.Authenticator
	tokens  *auth.JWTManager
}

// New creates a Handler.
func New(catalog *domain.Catalog, authn auth.Authenticator, tokens *auth.JWTManager) *Handler {
	return &Handler{
		catalog: catalog,
		authn:   authn,
		tokens:  tokens,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(h.tokens))
	{
		authed.GET("/collection", h.listCollection)
		authed.POST("/collection", h.addToCollection)
		authed.GET("/wishlist", h.listWishlist)
		authed.POST("/wishlist", h.addToWishlist)

		authed.GET("/albums/:id", h.getAlbum)
		authed.PUT("/albums/:id", h.editAlbum)
		authed.DELETE("/albums/:id", h.deleteAlbum)
		authed.POST("/albums/:id/move", h.moveToCollection)

		authed.GET("/stats/rating", h.averageRating)
	}

	return r
}
