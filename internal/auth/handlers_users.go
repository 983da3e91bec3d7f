package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"openmusic/internal/httpx"
)

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Fullname string `json:"fullname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Username = strings.TrimSpace(strings.ToLower(body.Username))
	body.Fullname = strings.TrimSpace(body.Fullname)

	if body.Username == "" || len(body.Username) > 50 {
		httpx.WriteFail(w, http.StatusBadRequest, "username must be between 1 and 50 characters")
		return
	}
	if body.Fullname == "" {
		httpx.WriteFail(w, http.StatusBadRequest, "fullname is required")
		return
	}
	if len(body.Password) < 6 {
		httpx.WriteFail(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("openmusic: create user hash: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), body.Username, string(hash), body.Fullname)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			httpx.WriteFail(w, http.StatusBadRequest, "username already taken")
			return
		}
		log.Printf("openmusic: create user: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "", map[string]string{"userId": user.ID})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.WriteFail(w, http.StatusBadRequest, "missing user id")
		return
	}

	user, err := s.store.FindUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("openmusic: get user: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]any{
		"user": UserResponse{ID: user.ID, Username: user.Username, Fullname: user.Fullname},
	})
}
