package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	CoverURL  *string   `json:"coverUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre"`
	Performer string    `json:"performer"`
	Duration  *int      `json:"duration,omitempty"`
	AlbumID   *string   `json:"albumId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongBrief is the shape used in song listings and album details.
type SongBrief struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

var (
	ErrAlbumNotFound = errors.New("album not found")
	ErrSongNotFound  = errors.New("song not found")
	ErrAlreadyLiked  = errors.New("album already liked")
	ErrLikeNotFound  = errors.New("like not found")
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS albums(
          id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          name TEXT NOT NULL,
          year INT NOT NULL,
          cover_url TEXT,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
  `); err != nil {
		log.Printf("openmusic: migrate albums: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS songs(
          id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          title TEXT NOT NULL,
          year INT NOT NULL,
          genre TEXT NOT NULL,
          performer TEXT NOT NULL,
          duration INT,
          album_id uuid REFERENCES albums(id) ON DELETE SET NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
  `); err != nil {
		log.Printf("openmusic: migrate songs: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS album_user_likes(
          album_id uuid NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
          user_id  uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (album_id, user_id)
      )
  `); err != nil {
		log.Printf("openmusic: migrate album_user_likes: %v", err)
		return err
	}

	return nil
}
