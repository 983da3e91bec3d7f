package playlist

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

// ExportPublisher enqueues a playlist-export request for out-of-process
// handling.
type ExportPublisher interface {
	PublishExport(ctx context.Context, playlistID, targetEmail string) error
}

type Server struct {
	store   Store
	cache   cache.Cache
	exports ExportPublisher
}

func NewServer(store Store, c cache.Cache, exports ExportPublisher) *Server {
	return &Server{
		store:   store,
		cache:   c,
		exports: exports,
	}
}

// Register wires the playlist surface onto the parent router. Every route
// requires a caller identity.
func (s *Server) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/playlists", s.handleCreatePlaylist)
		r.Get("/playlists", s.handleListPlaylists)
		r.Delete("/playlists/{id}", s.handleDeletePlaylist)

		r.Post("/playlists/{id}/songs", s.handleAddSong)
		r.Get("/playlists/{id}/songs", s.handleListSongs)
		r.Delete("/playlists/{id}/songs", s.handleRemoveSong)

		r.Get("/playlists/{id}/activities", s.handleListActivities)

		r.Post("/collaborations", s.handleAddCollaboration)
		r.Delete("/collaborations", s.handleDeleteCollaboration)

		r.Post("/export/playlists/{id}", s.handleExportPlaylist)
	})
}

// writeAccessErr maps the access-control sentinels onto the envelope.
func writeAccessErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlaylistNotFound):
		httpx.WriteFail(w, http.StatusNotFound, "playlist not found")
	case errors.Is(err, ErrForbidden):
		httpx.WriteFail(w, http.StatusForbidden, "you have no access to this playlist")
	default:
		log.Printf("openmusic: playlist access check: %v", err)
		httpx.WriteErr(w, err)
	}
}

// invalidate drops cache keys best-effort: a failed delete leaves a stale
// entry that expires on its own, which is preferable to failing the
// mutation that already happened.
func (s *Server) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("openmusic: cache invalidate %v: %v", keys, err)
	}
}
