package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

const sessionIDBytes = 32

// SessionService owns the operator's credential: it is the only component
// that reads, writes, or clears the session store.
type SessionService struct {
	store   driven.SessionStore
	backend driven.HotelBackend
	decoder driven.ClaimDecoder
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewSessionService creates a SessionService. ttl bounds how long a session
// record lives regardless of the token's own exp claim.
func NewSessionService(
	store driven.SessionStore,
	backend driven.HotelBackend,
	decoder driven.ClaimDecoder,
	ttl time.Duration,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		store:   store,
		backend: backend,
		decoder: decoder,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Login exchanges the credentials with the backend and persists a new
// session. Any session previously bound to priorID is removed. Every failure
// is reported as model.ErrInvalidCredentials; nothing is stored on failure.
func (s *SessionService) Login(ctx context.Context, priorID, username, password string) (model.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.Session{}, model.ErrInvalidCredentials
	}

	token, err := s.backend.Login(ctx, username, password)
	if err != nil {
		s.logger.Info("login rejected", "username", username, "error", err)
		return model.Session{}, model.ErrInvalidCredentials
	}

	identity, err := s.decoder.Decode(token)
	if err != nil {
		s.logger.Warn("login token has no usable claim", "username", username, "error", err)
		return model.Session{}, model.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := model.Session{
		ID:        newSessionID(),
		Token:     token,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if session.Expired(now) {
		s.logger.Warn("login token already expired", "username", identity.Username, "exp", identity.ExpiresAt)
		return model.Session{}, model.ErrInvalidCredentials
	}

	if err := s.store.Save(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("save session: %w", err)
	}

	if priorID != "" {
		if err := s.store.Delete(ctx, priorID); err != nil {
			s.logger.Warn("failed to drop prior session", "error", err)
		}
	}

	s.logger.Info("operator logged in", "username", identity.Username)
	return session, nil
}

// Resolve returns the usable session for id. A missing, unreadable, or
// expired record yields model.ErrNoSession; expired records are removed.
func (s *SessionService) Resolve(ctx context.Context, id string) (model.Session, error) {
	if id == "" {
		return model.Session{}, model.ErrNoSession
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Warn("unreadable session record", "error", err)
		return model.Session{}, model.ErrNoSession
	}
	if session == nil || session.Token == "" {
		return model.Session{}, model.ErrNoSession
	}

	if session.Expired(s.now()) {
		if err := s.store.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to drop expired session", "error", err)
		}
		return model.Session{}, model.ErrNoSession
	}

	return *session, nil
}

// Token returns the bearer credential for id.
func (s *SessionService) Token(ctx context.Context, id string) (string, error) {
	session, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// Logout clears the session locally. The token is not revoked at the backend.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func newSessionID() string {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		panic("session: failed to generate random id: " + err.Error())
	}
	return hex.EncodeToString(b)
}
