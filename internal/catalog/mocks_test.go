package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateAlbum(ctx context.Context, name string, year int) (Album, error) {
	args := m.Called(ctx, name, year)
	return args.Get(0).(Album), args.Error(1)
}

func (m *MockStore) GetAlbum(ctx context.Context, id string) (Album, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Album), args.Error(1)
}

func (m *MockStore) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	args := m.Called(ctx, id, name, year)
	return args.Error(0)
}

func (m *MockStore) DeleteAlbum(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	args := m.Called(ctx, id, coverURL)
	return args.Error(0)
}

func (m *MockStore) ListAlbumSongs(ctx context.Context, albumID string) ([]SongBrief, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).([]SongBrief), args.Error(1)
}

func (m *MockStore) CreateSong(ctx context.Context, in SongInput) (Song, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Song), args.Error(1)
}

func (m *MockStore) ListSongs(ctx context.Context, title, performer string) ([]SongBrief, error) {
	args := m.Called(ctx, title, performer)
	return args.Get(0).([]SongBrief), args.Error(1)
}

func (m *MockStore) GetSong(ctx context.Context, id string) (Song, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Song), args.Error(1)
}

func (m *MockStore) UpdateSong(ctx context.Context, id string, in SongInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockStore) DeleteSong(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) LikeAlbum(ctx context.Context, albumID, userID string) error {
	args := m.Called(ctx, albumID, userID)
	return args.Error(0)
}

func (m *MockStore) UnlikeAlbum(ctx context.Context, albumID, userID string) error {
	args := m.Called(ctx, albumID, userID)
	return args.Error(0)
}

func (m *MockStore) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	args := m.Called(ctx, albumID)
	return args.Int(0), args.Error(1)
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
