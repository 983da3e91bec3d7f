package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestHandleLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockStore)
		wantStatus int
	}{
		{
			name: "Success",
			body: Credentials{Username: "alice", Password: "secret123"},
			setupMock: func(m *MockStore) {
				m.On("FindUserByUsername", mock.Anything, "alice").
					Return(User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Wrong Password",
			body: Credentials{Username: "alice", Password: "wrong-pass"},
			setupMock: func(m *MockStore) {
				m.On("FindUserByUsername", mock.Anything, "alice").
					Return(User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown User",
			body: Credentials{Username: "ghost", Password: "secret123"},
			setupMock: func(m *MockStore) {
				m.On("FindUserByUsername", mock.Anything, "ghost").Return(User{}, ErrUserNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Invalid JSON",
			body:       "not-json",
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Password",
			body:       Credentials{Username: "alice"},
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Store Error",
			body: Credentials{Username: "alice", Password: "secret123"},
			setupMock: func(m *MockStore) {
				m.On("FindUserByUsername", mock.Anything, "alice").Return(User{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setupMock(store)
			srv := newTestServer(store)

			r := chi.NewRouter()
			srv.Register(r)

			var raw []byte
			if s, ok := tt.body.(string); ok {
				raw = []byte(s)
			} else {
				raw, _ = json.Marshal(tt.body)
			}
			req := httptest.NewRequest("POST", "/authentications", bytes.NewReader(raw))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp struct {
					Data AuthTokens `json:"data"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Data.AccessToken)
				assert.NotEmpty(t, resp.Data.RefreshToken)

				access, ok := parseToken(resp.Data.AccessToken, srv.jwtSecret, "access")
				assert.True(t, ok)
				assert.Equal(t, "user-1", access.UserID)
				_, ok = parseToken(resp.Data.RefreshToken, srv.jwtSecret, "refresh")
				assert.True(t, ok)
			}
		})
	}
}

func TestHandleRefresh(t *testing.T) {
	store := new(MockStore)
	srv := newTestServer(store)
	tokens, err := srv.issueTokens(User{ID: "user-1", Username: "alice"})
	assert.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMock  func(*MockStore)
		wantStatus int
	}{
		{
			name:  "Success",
			token: tokens.RefreshToken,
			setupMock: func(m *MockStore) {
				m.On("FindUserByID", mock.Anything, "user-1").
					Return(User{ID: "user-1", Username: "alice"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Access Token Rejected",
			token:      tokens.AccessToken,
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Garbage Token",
			token:      "not-a-token",
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Empty Token",
			token:      "",
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "User Gone",
			token: tokens.RefreshToken,
			setupMock: func(m *MockStore) {
				m.On("FindUserByID", mock.Anything, "user-1").Return(User{}, ErrUserNotFound)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setupMock(store)
			srv := newTestServer(store)

			r := chi.NewRouter()
			srv.Register(r)

			raw, _ := json.Marshal(map[string]string{"refreshToken": tt.token})
			req := httptest.NewRequest("PUT", "/authentications", bytes.NewReader(raw))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data struct {
						AccessToken string `json:"accessToken"`
					} `json:"data"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				claims, ok := parseToken(resp.Data.AccessToken, srv.jwtSecret, "access")
				assert.True(t, ok)
				assert.Equal(t, "user-1", claims.UserID)
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	store := new(MockStore)
	srv := newTestServer(store)
	tokens, err := srv.issueTokens(User{ID: "user-1", Username: "alice"})
	assert.NoError(t, err)

	r := chi.NewRouter()
	srv.Register(r)

	t.Run("Valid Refresh Token", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]string{"refreshToken": tokens.RefreshToken})
		req := httptest.NewRequest("DELETE", "/authentications", bytes.NewReader(raw))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]string{"refreshToken": tokens.AccessToken})
		req := httptest.NewRequest("DELETE", "/authentications", bytes.NewReader(raw))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/authentications", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
