package playlist

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"openmusic/internal/cache"
	"openmusic/internal/httpx"
)

type collaborationPayload struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (p *collaborationPayload) validate() string {
	p.PlaylistID = strings.TrimSpace(p.PlaylistID)
	p.UserID = strings.TrimSpace(p.UserID)
	if p.PlaylistID == "" {
		return "playlistId is required"
	}
	if p.UserID == "" {
		return "userId is required"
	}
	return ""
}

func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body collaborationPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	// Only the owner grants collaborator status.
	if err := s.verifyOwner(ctx, body.PlaylistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	exists, err := s.store.UserExists(ctx, body.UserID)
	if err != nil {
		log.Printf("openmusic: add collaboration user check: %v", err)
		httpx.WriteErr(w, err)
		return
	}
	if !exists {
		httpx.WriteFail(w, http.StatusNotFound, "user not found")
		return
	}

	if err := s.store.AddCollaboration(ctx, body.PlaylistID, body.UserID); err != nil {
		if errors.Is(err, ErrCollaborationExists) {
			httpx.WriteFail(w, http.StatusBadRequest, "user is already a collaborator")
			return
		}
		log.Printf("openmusic: add collaboration: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	// The grantee's playlist listing changed.
	s.invalidate(ctx, cache.PlaylistsKey(body.UserID))

	httpx.WriteSuccess(w, http.StatusCreated, "collaborator added", nil)
}

func (s *Server) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		httpx.WriteFail(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body collaborationPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := body.validate(); msg != "" {
		httpx.WriteFail(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.verifyOwner(ctx, body.PlaylistID, userID); err != nil {
		writeAccessErr(w, err)
		return
	}

	if err := s.store.DeleteCollaboration(ctx, body.PlaylistID, body.UserID); err != nil {
		if errors.Is(err, ErrCollaborationNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "collaboration not found")
			return
		}
		log.Printf("openmusic: delete collaboration: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	s.invalidate(ctx, cache.PlaylistsKey(body.UserID))

	httpx.WriteSuccess(w, http.StatusOK, "collaborator removed", nil)
}
