package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

type songRef struct {
	SongID string `json:"songId"`
}

func decodeSongRef(r *http.Request) (string, string) {
	var body songRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", "invalid JSON body"
	}
	body.SongID = strings.TrimSpace(body.SongID)
	if body.SongID == "" {
		return "", "songId is required"
	}
	return body.SongID, ""
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	songID, msg := decodeSongRef(r)
	if msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.verifyAccess(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	exists, err := s.store.SongExists(ctx, songID)
	if err != nil {
		log.Printf("openmusic: add song exists check: %v", err)
		httpx.WriteErr(w, err)
		return
	}
	if !exists {
		httpx.WriteFail(w, http.StatusNotFound, "song not found")
		return
	}

	if err := s.store.AddSong(ctx, playlistID, songID); err != nil {
		if errors.Is(err, ErrSongAlreadyInPlaylist) {
			httpx.WriteFail(w, http.StatusBadRequest, "song already in playlist")
			return
		}
		log.Printf("openmusic: add song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.store.RecordActivity(ctx, playlistID, songID, userID, actionAdd); err != nil {
		log.Printf("openmusic: record add activity: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidate(ctx,
		cache.PlaylistSongsKey(playlistID),
		cache.PlaylistActivitiesKey(playlistID),
	)

	httpx.WriteSuccess(w, http.StatusCreated, "song added to playlist", nil)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	// Access is re-verified before the cache is consulted, so a cache hit
	// can never leak a playlist the caller lost access to.
	if err := s.verifyAccess(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	key := cache.PlaylistSongsKey(playlistID)

	var cached PlaylistWithSongs
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("openmusic: playlist songs cache get: %v", err)
	}
	if hit {
		w.Header().Set(httpx.SourceHeader, httpx.SourceCache)
		httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"playlist": cached})
		return
	}

	pl, err := s.store.ListSongs(ctx, playlistID)
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("openmusic: list playlist songs: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.cache.Set(ctx, key, pl); err != nil {
		log.Printf("openmusic: playlist songs cache set: %v", err)
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"playlist": pl})
}

func (s *Server) handleRemoveSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	songID, msg := decodeSongRef(r)
	if msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.verifyAccess(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	if err := s.store.RemoveSong(ctx, playlistID, songID); err != nil {
		if errors.Is(err, ErrSongNotInPlaylist) {
			httpx.WriteFail(w, http.StatusNotFound, "song not in playlist")
			return
		}
		log.Printf("openmusic: remove song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.store.RecordActivity(ctx, playlistID, songID, userID, actionDelete); err != nil {
		log.Printf("openmusic: record delete activity: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidate(ctx,
		cache.PlaylistSongsKey(playlistID),
		cache.PlaylistActivitiesKey(playlistID),
	)

	httpx.WriteSuccess(w, http.StatusOK, "song removed from playlist", nil)
}
