package server

import (
	"errors"
	"sync"

	"github.com/kokukuma/mdl-exchange/protocol"
)

// Sessions is the in-memory store correlating a credential request with
// the response that arrives later, keyed by session id. A session is
// removed once its response is processed; the nonce is single-use.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*protocol.SessionData
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*protocol.SessionData),
	}
}

func (s *Sessions) NewSession() (*protocol.SessionData, error) {
	session, err := protocol.NewSession()
	if err != nil {
		return nil, err
	}
	s.SaveSession(session)
	return session, nil
}

func (s *Sessions) SaveSession(session *protocol.SessionData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *Sessions) GetSession(id string) (*protocol.SessionData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (s *Sessions) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
