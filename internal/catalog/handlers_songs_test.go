package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestHandleCreateSong(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockStore)
		wantStatus int
	}{
		{
			name: "Success Without Album",
			body: songPayload{Title: "Life in Technicolor", Year: 2008, Genre: "Indie", Performer: "Coldplay", Duration: intPtr(120)},
			setupMock: func(m *MockStore) {
				m.On("CreateSong", mock.Anything, mock.MatchedBy(func(in SongInput) bool {
					return in.Title == "Life in Technicolor" && in.AlbumID == nil
				})).Return(Song{ID: "song-1"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Success With Existing Album",
			body: songPayload{Title: "Lost!", Year: 2008, Genre: "Indie", Performer: "Coldplay", AlbumID: strPtr("album-1")},
			setupMock: func(m *MockStore) {
				m.On("GetAlbum", mock.Anything, "album-1").Return(Album{ID: "album-1"}, nil)
				m.On("CreateSong", mock.Anything, mock.Anything).Return(Song{ID: "song-2"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Unknown Album Reference",
			body: songPayload{Title: "Lost!", Year: 2008, Genre: "Indie", Performer: "Coldplay", AlbumID: strPtr("missing")},
			setupMock: func(m *MockStore) {
				m.On("GetAlbum", mock.Anything, "missing").Return(Album{}, ErrAlbumNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Invalid JSON",
			body:       "not-json",
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Title",
			body:       songPayload{Year: 2008, Genre: "Indie", Performer: "Coldplay"},
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing Genre",
			body:       songPayload{Title: "Lost!", Year: 2008, Performer: "Coldplay"},
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Negative Duration",
			body:       songPayload{Title: "Lost!", Year: 2008, Genre: "Indie", Performer: "Coldplay", Duration: intPtr(-1)},
			setupMock:  func(m *MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setupMock(store)
			r := newTestRouter(store, new(MockCache))

			var raw []byte
			if s, ok := tt.body.(string); ok {
				raw = []byte(s)
			} else {
				raw, _ = json.Marshal(tt.body)
			}
			req := httptest.NewRequest("POST", "/songs", bytes.NewReader(raw))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			store.AssertExpectations(t)
		})
	}
}

func TestHandleListSongs_Filters(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTitle string
		wantPerf  string
	}{
		{"No Filters", "", "", ""},
		{"Title Only", "?title=life", "life", ""},
		{"Performer Only", "?performer=coldplay", "", "coldplay"},
		{"Both", "?title=life&performer=coldplay", "life", "coldplay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			store.On("ListSongs", mock.Anything, tt.wantTitle, tt.wantPerf).
				Return([]SongBrief{{ID: "song-1", Title: "Life in Technicolor", Performer: "Coldplay"}}, nil)
			r := newTestRouter(store, new(MockCache))

			req := httptest.NewRequest("GET", "/songs"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			store.AssertExpectations(t)

			var resp struct {
				Data struct {
					Songs []SongBrief `json:"songs"`
				} `json:"data"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Data.Songs, 1)
		})
	}
}

func TestHandleGetSong(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, "song-1").
			Return(Song{ID: "song-1", Title: "Lost!", Year: 2008, Genre: "Indie", Performer: "Coldplay"}, nil)
		r := newTestRouter(store, new(MockCache))

		req := httptest.NewRequest("GET", "/songs/song-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Song Song `json:"song"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Lost!", resp.Data.Song.Title)
	})

	t.Run("Not Found", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, "missing").Return(Song{}, ErrSongNotFound)
		r := newTestRouter(store, new(MockCache))

		req := httptest.NewRequest("GET", "/songs/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleUpdateSong(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStore)
		store.On("UpdateSong", mock.Anything, "song-1", mock.Anything).Return(nil)
		r := newTestRouter(store, new(MockCache))

		raw, _ := json.Marshal(songPayload{Title: "Lost?", Year: 2008, Genre: "Indie", Performer: "Coldplay"})
		req := httptest.NewRequest("PUT", "/songs/song-1", bytes.NewReader(raw))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		store := new(MockStore)
		store.On("UpdateSong", mock.Anything, "missing", mock.Anything).Return(ErrSongNotFound)
		r := newTestRouter(store, new(MockCache))

		raw, _ := json.Marshal(songPayload{Title: "Lost?", Year: 2008, Genre: "Indie", Performer: "Coldplay"})
		req := httptest.NewRequest("PUT", "/songs/missing", bytes.NewReader(raw))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleDeleteSong(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStore)
		store.On("DeleteSong", mock.Anything, "song-1").Return(nil)
		r := newTestRouter(store, new(MockCache))

		req := httptest.NewRequest("DELETE", "/songs/song-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		store := new(MockStore)
		store.On("DeleteSong", mock.Anything, "missing").Return(ErrSongNotFound)
		r := newTestRouter(store, new(MockCache))

		req := httptest.NewRequest("DELETE", "/songs/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
