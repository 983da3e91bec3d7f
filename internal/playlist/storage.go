package playlist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	CreatePlaylist(ctx context.Context, name, ownerID string) (Playlist, error)
	GetPlaylist(ctx context.Context, id string) (Playlist, error)
	ListPlaylists(ctx context.Context, userID string) ([]PlaylistBrief, error)
	DeletePlaylist(ctx context.Context, id string) error

	AddSong(ctx context.Context, playlistID, songID string) error
	ListSongs(ctx context.Context, playlistID string) (PlaylistWithSongs, error)
	RemoveSong(ctx context.Context, playlistID, songID string) error
	SongExists(ctx context.Context, songID string) (bool, error)

	RecordActivity(ctx context.Context, playlistID, songID, userID, action string) error
	ListActivities(ctx context.Context, playlistID string) ([]Activity, error)

	AddCollaboration(ctx context.Context, playlistID, userID string) error
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error
	IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// DB is the slice of *pgxpool.Pool the store uses. It can be mocked for
// testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreatePlaylist inserts the playlist and the owner's collaboration row in
// one transaction, so a playlist never exists without its owner registered
// as a collaborator.
func (s *PostgresStore) CreatePlaylist(ctx context.Context, name, ownerID string) (Playlist, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Playlist{}, err
	}
	defer tx.Rollback(ctx)

	var pl Playlist
	err = tx.QueryRow(ctx, `
		INSERT INTO playlists (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, ownerID).Scan(&pl.ID, &pl.Name, &pl.OwnerID, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return Playlist{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO collaborations (playlist_id, user_id)
		VALUES ($1, $2)
	`, pl.ID, ownerID); err != nil {
		return Playlist{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Playlist{}, err
	}
	return pl, nil
}

func (s *PostgresStore) GetPlaylist(ctx context.Context, id string) (Playlist, error) {
	var pl Playlist
	err := s.db.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM playlists WHERE id = $1
	`, id).Scan(&pl.ID, &pl.Name, &pl.OwnerID, &pl.CreatedAt, &pl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return Playlist{}, err
	}
	return pl, nil
}

func (s *PostgresStore) ListPlaylists(ctx context.Context, userID string) ([]PlaylistBrief, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT p.id, p.name, u.username, p.created_at
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		WHERE p.owner_id = $1 OR c.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []PlaylistBrief{}
	for rows.Next() {
		var pl PlaylistBrief
		var createdAt time.Time // selected only for the DISTINCT + ORDER BY
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Username, &createdAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *PostgresStore) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (s *PostgresStore) AddSong(ctx context.Context, playlistID, songID string) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, song_id) DO NOTHING
	`, playlistID, songID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSongAlreadyInPlaylist
	}
	return nil
}

func (s *PostgresStore) ListSongs(ctx context.Context, playlistID string) (PlaylistWithSongs, error) {
	var out PlaylistWithSongs
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`, playlistID).Scan(&out.ID, &out.Name, &out.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return PlaylistWithSongs{}, ErrPlaylistNotFound
	}
	if err != nil {
		return PlaylistWithSongs{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
	`, playlistID)
	if err != nil {
		return PlaylistWithSongs{}, err
	}
	defer rows.Close()

	out.Songs = []SongItem{}
	for rows.Next() {
		var song SongItem
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return PlaylistWithSongs{}, err
		}
		out.Songs = append(out.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return PlaylistWithSongs{}, err
	}
	return out, nil
}

func (s *PostgresStore) RemoveSong(ctx context.Context, playlistID, songID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}

func (s *PostgresStore) SongExists(ctx context.Context, songID string) (bool, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM songs WHERE id = $1`, songID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) RecordActivity(ctx context.Context, playlistID, songID, userID, action string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO playlist_song_activities (playlist_id, song_id, user_id, action)
		VALUES ($1, $2, $3, $4)
	`, playlistID, songID, userID, action)
	return err
}

func (s *PostgresStore) ListActivities(ctx context.Context, playlistID string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.username, s.title, a.action, a.time
		FROM playlist_song_activities a
		JOIN users u ON u.id = a.user_id
		JOIN songs s ON s.id = a.song_id
		WHERE a.playlist_id = $1
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		var act Activity
		if err := rows.Scan(&act.Username, &act.Title, &act.Action, &act.Time); err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *PostgresStore) AddCollaboration(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO collaborations (playlist_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, user_id) DO NOTHING
	`, playlistID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCollaborationExists
	}
	return nil
}

func (s *PostgresStore) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

func (s *PostgresStore) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	var uid string
	err := s.db.QueryRow(ctx, `
		SELECT user_id
		FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) UserExists(ctx context.Context, userID string) (bool, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
