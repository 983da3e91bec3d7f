package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type SongInput struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

type Store interface {
	CreateAlbum(ctx context.Context, name string, year int) (Album, error)
	GetAlbum(ctx context.Context, id string) (Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	DeleteAlbum(ctx context.Context, id string) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
	ListAlbumSongs(ctx context.Context, albumID string) ([]SongBrief, error)

	CreateSong(ctx context.Context, in SongInput) (Song, error)
	ListSongs(ctx context.Context, title, performer string) ([]SongBrief, error)
	GetSong(ctx context.Context, id string) (Song, error)
	UpdateSong(ctx context.Context, id string, in SongInput) error
	DeleteSong(ctx context.Context, id string) error

	LikeAlbum(ctx context.Context, albumID, userID string) error
	UnlikeAlbum(ctx context.Context, albumID, userID string) error
	CountAlbumLikes(ctx context.Context, albumID string) (int, error)
}

// DB is the slice of *pgxpool.Pool the store uses. It can be mocked for
// testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateAlbum(ctx context.Context, name string, year int) (Album, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO albums (name, year)
		VALUES ($1, $2)
		RETURNING id, name, year, cover_url, created_at, updated_at
	`, name, year)
	return scanAlbum(row)
}

func (s *PostgresStore) GetAlbum(ctx context.Context, id string) (Album, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, year, cover_url, created_at, updated_at
		FROM albums WHERE id = $1
	`, id)
	return scanAlbum(row)
}

func (s *PostgresStore) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE albums SET name = $2, year = $3, updated_at = now()
		WHERE id = $1
	`, id, name, year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAlbum(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

func (s *PostgresStore) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE albums SET cover_url = $2, updated_at = now()
		WHERE id = $1
	`, id, coverURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

func (s *PostgresStore) ListAlbumSongs(ctx context.Context, albumID string) ([]SongBrief, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSongBriefs(rows)
}

func (s *PostgresStore) CreateSong(ctx context.Context, in SongInput) (Song, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO songs (title, year, genre, performer, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, year, genre, performer, duration, album_id, created_at, updated_at
	`, in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID)
	return scanSong(row)
}

func (s *PostgresStore) ListSongs(ctx context.Context, title, performer string) ([]SongBrief, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE title ILIKE '%' || $1 || '%'
		  AND performer ILIKE '%' || $2 || '%'
	`, title, performer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSongBriefs(rows)
}

func (s *PostgresStore) GetSong(ctx context.Context, id string) (Song, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, year, genre, performer, duration, album_id, created_at, updated_at
		FROM songs WHERE id = $1
	`, id)
	return scanSong(row)
}

func (s *PostgresStore) UpdateSong(ctx context.Context, id string, in SongInput) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE songs
		SET title = $2, year = $3, genre = $4, performer = $5,
			duration = $6, album_id = $7, updated_at = now()
		WHERE id = $1
	`, id, in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSongNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteSong(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSongNotFound
	}
	return nil
}

func (s *PostgresStore) LikeAlbum(ctx context.Context, albumID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO album_user_likes (album_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (album_id, user_id) DO NOTHING
	`, albumID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyLiked
	}
	return nil
}

func (s *PostgresStore) UnlikeAlbum(ctx context.Context, albumID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM album_user_likes
		WHERE album_id = $1 AND user_id = $2
	`, albumID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (s *PostgresStore) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM album_user_likes WHERE album_id = $1
	`, albumID).Scan(&n)
	return n, err
}

func scanAlbum(row pgx.Row) (Album, error) {
	var a Album
	err := row.Scan(&a.ID, &a.Name, &a.Year, &a.CoverURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Album{}, ErrAlbumNotFound
		}
		return Album{}, err
	}
	return a, nil
}

func scanSong(row pgx.Row) (Song, error) {
	var t Song
	err := row.Scan(&t.ID, &t.Title, &t.Year, &t.Genre, &t.Performer, &t.Duration, &t.AlbumID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, err
	}
	return t, nil
}

func collectSongBriefs(rows pgx.Rows) ([]SongBrief, error) {
	songs := []SongBrief{}
	for rows.Next() {
		var t SongBrief
		if err := rows.Scan(&t.ID, &t.Title, &t.Performer); err != nil {
			return nil, err
		}
		songs = append(songs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return songs, nil
}
