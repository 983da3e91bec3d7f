package playlist

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlaylistBrief is a listing row: the playlist plus its owner's username.
type PlaylistBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// SongItem is a song entry inside a playlist response.
type SongItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// PlaylistWithSongs is the GET /playlists/{id}/songs payload.
type PlaylistWithSongs struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Username string     `json:"username"`
	Songs    []SongItem `json:"songs"`
}

// Activity is one append-only add/delete record, joined with the acting
// user's name and the affected song's title.
type Activity struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

const (
	actionAdd    = "add"
	actionDelete = "delete"
)

var (
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrForbidden             = errors.New("caller lacks rights on this playlist")
	ErrSongNotFound          = errors.New("song not found")
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
	ErrSongNotInPlaylist     = errors.New("song not in playlist")
	ErrCollaborationExists   = errors.New("collaboration already exists")
	ErrCollaborationNotFound = errors.New("collaboration not found")
	ErrUserNotFound          = errors.New("user not found")
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlists(
          id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          name TEXT NOT NULL,
          owner_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
  `); err != nil {
		log.Printf("openmusic: migrate playlists: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS collaborations(
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          user_id     uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (playlist_id, user_id)
      )
  `); err != nil {
		log.Printf("openmusic: migrate collaborations: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_songs(
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          song_id     uuid NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (playlist_id, song_id)
      )
  `); err != nil {
		log.Printf("openmusic: migrate playlist_songs: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_song_activities(
          id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          song_id     uuid NOT NULL,
          user_id     uuid NOT NULL,
          action      TEXT NOT NULL CHECK (action IN ('add', 'delete')),
          time        TIMESTAMPTZ NOT NULL DEFAULT now()
      )
  `); err != nil {
		log.Printf("openmusic: migrate playlist_song_activities: %v", err)
		return err
	}

	return nil
}
