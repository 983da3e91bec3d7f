package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"openmusic/internal/httpx"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	username := strings.TrimSpace(strings.ToLower(creds.Username))
	if username == "" || creds.Password == "" {
		httpx.WriteFail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.store.FindUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.WriteFail(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("openmusic: login: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		httpx.WriteFail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		log.Printf("openmusic: login issue tokens: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "", tokens)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.RefreshToken == "" {
		httpx.WriteFail(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	claims, ok := parseToken(body.RefreshToken, s.jwtSecret, "refresh")
	if !ok {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid refresh token")
		return
	}

	user, err := s.store.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.WriteFail(w, http.StatusBadRequest, "invalid refresh token")
			return
		}
		log.Printf("openmusic: refresh: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	access, err := s.signToken(user, "access", time.Now(), s.accessTTL)
	if err != nil {
		log.Printf("openmusic: refresh sign token: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "", map[string]string{"accessToken": access})
}

// handleLogout acknowledges a valid refresh token. Tokens are stateless, so
// there is no server-side session to destroy; the client discards the pair.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.RefreshToken == "" {
		httpx.WriteFail(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	if _, ok := parseToken(body.RefreshToken, s.jwtSecret, "refresh"); !ok {
		httpx.WriteFail(w, http.StatusBadRequest, "invalid refresh token")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "refresh token revoked", nil)
}
