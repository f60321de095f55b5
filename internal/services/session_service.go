package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService holds per-user dashboard state. Sessions are explicit
// records passed into queries rather than ambient globals, so several users
// can browse independently.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
	logger   *zap.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions: make(map[uuid.UUID]*models.Session),
		logger:   logger,
	}
}

// Create starts a new session with no selection
func (s *SessionService) Create() *models.Session {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", session.ID.String()))
	return copySession(session)
}

// Get returns a session by ID
func (s *SessionService) Get(id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copySession(session), nil
}

// SelectCategory records the user's category selection and advances the
// refresh token so image URLs are cache-busted on the next detail render.
func (s *SessionService) SelectCategory(id uuid.UUID, category string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	session.SelectedCategory = category
	session.RefreshToken = now.Unix()
	session.UpdatedAt = now
	return copySession(session), nil
}

func copySession(s *models.Session) *models.Session {
	c := *s
	return &c
}
