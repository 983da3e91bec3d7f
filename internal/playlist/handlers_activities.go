package playlist

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	if err := s.verifyAccess(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	key := cache.PlaylistActivitiesKey(playlistID)

	var cached []Activity
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("openmusic: activities cache get: %v", err)
	}
	if hit {
		w.Header().Set(httpx.SourceHeader, httpx.SourceCache)
		httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{
			"playlistId": playlistID,
			"activities": cached,
		})
		return
	}

	activities, err := s.store.ListActivities(ctx, playlistID)
	if err != nil {
		log.Printf("openmusic: list activities: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.cache.Set(ctx, key, activities); err != nil {
		log.Printf("openmusic: activities cache set: %v", err)
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{
		"playlistId": playlistID,
		"activities": activities,
	})
}
