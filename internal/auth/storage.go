package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	CreateUser(ctx context.Context, username, passwordHash, fullname string) (User, error)
	FindUserByUsername(ctx context.Context, username string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
}

// DB is the slice of *pgxpool.Pool the store uses. It can be mocked for
// testing.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash, fullname string) (User, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (username, password, fullname)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, username, password, fullname, created_at, updated_at
	`, username, passwordHash, fullname)

	u, err := scanUser(row)
	if errors.Is(err, ErrUserNotFound) {
		// Insert returned no row: the username is already taken.
		return User{}, ErrUsernameTaken
	}
	return u, err
}

func (s *PostgresStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, password, fullname, created_at, updated_at
		FROM users WHERE username = $1
	`, username)
	return scanUser(row)
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, password, fullname, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
