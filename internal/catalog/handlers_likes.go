package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

func (s *Server) handleLikeAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	albumID := chi.URLParam(r, "id")

	if _, err := s.store.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: like album fetch: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.store.LikeAlbum(ctx, albumID, userID); err != nil {
		if errors.Is(err, ErrAlreadyLiked) {
			httpx.WriteFail(w, http.StatusBadRequest, "album already liked")
			return
		}
		log.Printf("openmusic: like album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidateLikes(r, albumID)

	httpx.WriteSuccess(w, http.StatusCreated, "album liked", nil)
}

func (s *Server) handleUnlikeAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	albumID := chi.URLParam(r, "id")

	if err := s.store.UnlikeAlbum(ctx, albumID, userID); err != nil {
		if errors.Is(err, ErrLikeNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "like not found")
			return
		}
		log.Printf("openmusic: unlike album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidateLikes(r, albumID)

	httpx.WriteSuccess(w, http.StatusOK, "album unliked", nil)
}

func (s *Server) handleCountLikes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	albumID := chi.URLParam(r, "id")
	key := cache.AlbumLikesKey(albumID)

	var cached int
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache fault reads as a miss.
		log.Printf("openmusic: likes cache get: %v", err)
	}
	if hit {
		w.Header().Set(httpx.SourceHeader, httpx.SourceCache)
		httpx.WriteSuccess(w, http.StatusOK, "", map[string]int{"likes": cached})
		return
	}

	if _, err := s.store.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: count likes fetch album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	n, err := s.store.CountAlbumLikes(ctx, albumID)
	if err != nil {
		log.Printf("openmusic: count likes: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := s.cache.Set(ctx, key, n); err != nil {
		log.Printf("openmusic: likes cache set: %v", err)
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]int{"likes": n})
}

// invalidateLikes is best-effort: a stale count expires on its own.
func (s *Server) invalidateLikes(r *http.Request, albumID string) {
	if err := s.cache.Delete(r.Context(), cache.AlbumLikesKey(albumID)); err != nil {
		log.Printf("openmusic: likes cache invalidate: %v", err)
	}
}
