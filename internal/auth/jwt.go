package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) issueTokens(user User) (AuthTokens, error) {
	now := time.Now()

	access, err := s.signToken(user, "access", now, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	refresh, err := s.signToken(user, "refresh", now, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Server) signToken(user User, typ string, now time.Time, ttl time.Duration) (string, error) {
	claims := &TokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// parseToken validates the signature and the typ claim ("access"/"refresh").
func parseToken(raw string, secret []byte, typ string) (*TokenClaims, bool) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid || claims.TokenType != typ {
		return nil, false
	}
	return claims, true
}
