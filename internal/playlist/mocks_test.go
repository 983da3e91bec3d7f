package playlist

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreatePlaylist(ctx context.Context, name, ownerID string) (Playlist, error) {
	args := m.Called(ctx, name, ownerID)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockStore) GetPlaylist(ctx context.Context, id string) (Playlist, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockStore) ListPlaylists(ctx context.Context, userID string) ([]PlaylistBrief, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]PlaylistBrief), args.Error(1)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) AddSong(ctx context.Context, playlistID, songID string) error {
	args := m.Called(ctx, playlistID, songID)
	return args.Error(0)
}

func (m *MockStore) ListSongs(ctx context.Context, playlistID string) (PlaylistWithSongs, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(PlaylistWithSongs), args.Error(1)
}

func (m *MockStore) RemoveSong(ctx context.Context, playlistID, songID string) error {
	args := m.Called(ctx, playlistID, songID)
	return args.Error(0)
}

func (m *MockStore) SongExists(ctx context.Context, songID string) (bool, error) {
	args := m.Called(ctx, songID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RecordActivity(ctx context.Context, playlistID, songID, userID, action string) error {
	args := m.Called(ctx, playlistID, songID, userID, action)
	return args.Error(0)
}

func (m *MockStore) ListActivities(ctx context.Context, playlistID string) ([]Activity, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).([]Activity), args.Error(1)
}

func (m *MockStore) AddCollaboration(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *MockStore) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *MockStore) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) UserExists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishExport(ctx context.Context, playlistID, targetEmail string) error {
	args := m.Called(ctx, playlistID, targetEmail)
	return args.Error(0)
}
