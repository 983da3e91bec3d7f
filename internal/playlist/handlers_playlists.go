package playlist

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || len(body.Name) > 200 {
		httpx.WriteFail(w, http.StatusBadRequest, "name must be between 1 and 200 characters")
		return
	}

	pl, err := s.store.CreatePlaylist(ctx, body.Name, userID)
	if err != nil {
		log.Printf("openmusic: create playlist: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidate(ctx, cache.PlaylistsKey(userID))

	httpx.WriteSuccess(w, http.StatusCreated, "", map[string]string{"playlistId": pl.ID})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}

	key := cache.PlaylistsKey(userID)

	var cached []PlaylistBrief
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("openmusic: playlists cache get: %v", err)
	}
	if hit {
		w.Header().Set(httpx.SourceHeader, httpx.SourceCache)
		httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"playlists": cached})
		return
	}

	playlists, err := s.store.ListPlaylists(ctx, userID)
	if err != nil {
		log.Printf("openmusic: list playlists: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.cache.Set(ctx, key, playlists); err != nil {
		log.Printf("openmusic: playlists cache set: %v", err)
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"playlists": playlists})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	if err := s.verifyOwner(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		log.Printf("openmusic: delete playlist: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidate(ctx,
		cache.PlaylistsKey(userID),
		cache.PlaylistSongsKey(playlistID),
		cache.PlaylistActivitiesKey(playlistID),
	)

	httpx.WriteSuccess(w, http.StatusOK, "playlist deleted", nil)
}
