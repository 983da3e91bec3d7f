package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/httpx"
)

type albumPayload struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (p *albumPayload) validate() string {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || len(p.Name) > 200 {
		return "name must be between 1 and 200 characters"
	}
	if p.Year < 1800 || p.Year > time.Now().Year()+1 {
		return "year is out of range"
	}
	return ""
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var body albumPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	album, err := s.store.CreateAlbum(r.Context(), body.Name, body.Year)
	if err != nil {
		log.Printf("openmusic: create album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "", map[string]string{"albumId": album.ID})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	album, err := s.store.GetAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: get album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	songs, err := s.store.ListAlbumSongs(ctx, id)
	if err != nil {
		log.Printf("openmusic: get album songs: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{
		"album": map[string]any{
			"id":       album.ID,
			"name":     album.Name,
			"year":     album.Year,
			"coverUrl": album.CoverURL,
			"songs":    songs,
		},
	})
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body albumPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.UpdateAlbum(r.Context(), id, body.Name, body.Year); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: update album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "album updated", nil)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteAlbum(r.Context(), id); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: delete album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	// The cached like count would otherwise survive the album.
	s.invalidateLikes(r, id)

	httpx.WriteSuccess(w, http.StatusOK, "album deleted", nil)
}
