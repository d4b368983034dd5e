package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
)

// IssuedSession is a signed session token ready to be set as a cookie.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// IdentityService maps verified provider identities onto local users and sessions.
type IdentityService struct {
	users    repositories.UserRepository
	sessions *SessionManager
	log      *zap.Logger
}

func NewIdentityService(users repositories.UserRepository, sessions *SessionManager, log *zap.Logger) *IdentityService {
	return &IdentityService{users: users, sessions: sessions, log: log}
}

// SignIn materializes the user behind identity, creating it on first login, and issues a session.
func (s *IdentityService) SignIn(ctx context.Context, identity *Identity) (*models.User, *IssuedSession, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, nil, apperrors.New(apperrors.CodeUnauthenticated, "Identity has no email")
	}

	user, err := s.upsertByEmail(ctx, email, identity)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to save user", err)
	}

	token, expiresAt, err := s.sessions.Issue(user)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to create session", err)
	}
	return user, &IssuedSession{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *IdentityService) upsertByEmail(ctx context.Context, email string, identity *Identity) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			Email:           email,
			Name:            identity.Name,
			Image:           identity.Picture,
			Provider:        identity.Provider,
			ProviderSubject: identity.Subject,
		}
		err := s.users.Create(ctx, user)
		if err == nil {
			s.log.Info("created user on first login", zap.String("userId", user.ID.String()), zap.String("provider", identity.Provider))
			return user, nil
		}
		if !apperrors.Is(err, apperrors.CodeConflict) {
			return nil, err
		}
		// Lost a race with a concurrent first login for the same email.
		user, err = s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.New(apperrors.CodeInternal, "user vanished after conflict")
		}
	}

	if user.Name == identity.Name && user.Image == identity.Picture &&
		user.Provider == identity.Provider && user.ProviderSubject == identity.Subject {
		return user, nil
	}
	user.Name = identity.Name
	user.Image = identity.Picture
	user.Provider = identity.Provider
	user.ProviderSubject = identity.Subject
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Current returns the stored profile behind a session, or nil when the user no longer exists.
func (s *IdentityService) Current(ctx context.Context, principal *Principal) (*Principal, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to load session", err)
	}
	if user == nil {
		return nil, nil
	}
	return &Principal{ID: user.ID, Name: user.Name, Email: user.Email, Image: user.Image}, nil
}
