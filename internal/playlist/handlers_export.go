package playlist

import (
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"openmusic/internal/httpx"
)

func (s *Server) handleExportPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")

	var body struct {
		TargetEmail string `json:"targetEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.TargetEmail = strings.TrimSpace(body.TargetEmail)
	if _, err := mail.ParseAddress(body.TargetEmail); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "targetEmail is not a valid email address")
		return
	}

	if err := s.verifyOwner(ctx, playlistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	if err := s.exports.PublishExport(ctx, playlistID, body.TargetEmail); err != nil {
		log.Printf("openmusic: publish export: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "export request queued", nil)
}
