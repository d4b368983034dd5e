package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rohits-web03/meshvault/internal/models"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image string    `json:"image"`
}

// Claims is the JWT payload of a session.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Image  string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret []byte
	maxAge time.Duration
	clock  Clock
}

func NewSessionManager(secret string, maxAge time.Duration, clock Clock) *SessionManager {
	return &SessionManager{secret: []byte(secret), maxAge: maxAge, clock: clock}
}

func (m *SessionManager) MaxAge() time.Duration { return m.maxAge }

// Issue signs a session for user and returns the token with its expiry.
func (m *SessionManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.maxAge)
	claims := &Claims{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, expiresAt, nil
}

// Parse verifies token and returns its principal. Expired, unsigned or malformed tokens fail.
func (m *SessionManager) Parse(token string) (*Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil || id == uuid.Nil {
		return nil, errors.New("session token has no user")
	}
	return &Principal{ID: id, Name: claims.Name, Email: claims.Email, Image: claims.Image}, nil
}
