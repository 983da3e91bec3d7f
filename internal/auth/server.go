package auth

import (
	"time"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store      Store
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewServer(store Store, jwtSecret []byte, accessTTL, refreshTTL time.Duration) *Server {
	return &Server{
		store:      store,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register attaches the credential and token routes to the parent router.
func (s *Server) Register(r chi.Router) {
	r.Post("/users", s.handleCreateUser)
	r.Get("/users/{id}", s.handleGetUser)

	r.Post("/authentications", s.handleLogin)
	r.Put("/authentications", s.handleRefresh)
	r.Delete("/authentications", s.handleLogout)
}
