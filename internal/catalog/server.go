package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
)

type Server struct {
	store    Store
	cache    cache.Cache
	coverDir string
}

func NewServer(store Store, c cache.Cache, coverDir string) *Server {
	return &Server{
		store:    store,
		cache:    c,
		coverDir: coverDir,
	}
}

// Register wires the public catalog surface onto the parent router.
// requireAuth guards the endpoints that need a caller identity (likes).
func (s *Server) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/albums", s.handleCreateAlbum)
	r.Get("/albums/{id}", s.handleGetAlbum)
	r.Put("/albums/{id}", s.handleUpdateAlbum)
	r.Delete("/albums/{id}", s.handleDeleteAlbum)
	r.Post("/albums/{id}/covers", s.handleUploadCover)
	r.Get("/albums/{id}/likes", s.handleCountLikes)

	r.Post("/songs", s.handleCreateSong)
	r.Get("/songs", s.handleListSongs)
	r.Get("/songs/{id}", s.handleGetSong)
	r.Put("/songs/{id}", s.handleUpdateSong)
	r.Delete("/songs/{id}", s.handleDeleteSong)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/albums/{id}/likes", s.handleLikeAlbum)
		r.Delete("/albums/{id}/likes", s.handleUnlikeAlbum)
	})
}
