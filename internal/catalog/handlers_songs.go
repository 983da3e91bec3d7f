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

type songPayload struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (p *songPayload) validate() string {
	p.Title = strings.TrimSpace(p.Title)
	p.Genre = strings.TrimSpace(p.Genre)
	p.Performer = strings.TrimSpace(p.Performer)

	if p.Title == "" || len(p.Title) > 200 {
		return "title must be between 1 and 200 characters"
	}
	if p.Year < 1800 || p.Year > time.Now().Year()+1 {
		return "year is out of range"
	}
	if p.Genre == "" {
		return "genre is required"
	}
	if p.Performer == "" {
		return "performer is required"
	}
	if p.Duration != nil && *p.Duration < 0 {
		return "duration must not be negative"
	}
	return ""
}

func (p *songPayload) toInput() SongInput {
	return SongInput{
		Title:     p.Title,
		Year:      p.Year,
		Genre:     p.Genre,
		Performer: p.Performer,
		Duration:  p.Duration,
		AlbumID:   p.AlbumID,
	}
}

// checkAlbumRef rejects songs referencing a nonexistent album before the
// insert hits the foreign key.
func (s *Server) checkAlbumRef(r *http.Request, albumID *string) error {
	if albumID == nil {
		return nil
	}
	if _, err := s.store.GetAlbum(r.Context(), *albumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			return httpx.NotFound("album not found")
		}
		return err
	}
	return nil
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var body songPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.checkAlbumRef(r, body.AlbumID); err != nil {
		httpx.WriteErr(w, err)
		return
	}

	song, err := s.store.CreateSong(r.Context(), body.toInput())
	if err != nil {
		log.Printf("openmusic: create song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "", map[string]string{"songId": song.ID})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	performer := r.URL.Query().Get("performer")

	songs, err := s.store.ListSongs(r.Context(), title, performer)
	if err != nil {
		log.Printf("openmusic: list songs: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"songs": songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	song, err := s.store.GetSong(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSongNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "song not found")
			return
		}
		log.Printf("openmusic: get song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{"song": song})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body songPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.checkAlbumRef(r, body.AlbumID); err != nil {
		httpx.WriteErr(w, err)
		return
	}

	if err := s.store.UpdateSong(r.Context(), id, body.toInput()); err != nil {
		if errors.Is(err, ErrSongNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "song not found")
			return
		}
		log.Printf("openmusic: update song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "song updated", nil)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteSong(r.Context(), id); err != nil {
		if errors.Is(err, ErrSongNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "song not found")
			return
		}
		log.Printf("openmusic: delete song: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "song deleted", nil)
}
