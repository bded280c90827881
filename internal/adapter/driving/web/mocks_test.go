package web

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]model.Session{}}
}

func (m *mockSessionStore) Save(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *mockSessionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type mockBackend struct {
	token    string
	loginErr error

	users     []model.User
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	loginCalls  int
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	lastInput   model.UserInput
}

func (m *mockBackend) Login(_ context.Context, _, _ string) (string, error) {
	m.loginCalls++
	return m.token, m.loginErr
}

func (m *mockBackend) ListUsers(_ context.Context, _ string) ([]model.User, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *mockBackend) CreateUser(_ context.Context, _ string, input model.UserInput) error {
	m.createCalls++
	m.lastInput = input
	return m.createErr
}

func (m *mockBackend) UpdateUser(_ context.Context, _, _ string, input model.UserInput) error {
	m.updateCalls++
	m.lastInput = input
	return m.updateErr
}

func (m *mockBackend) DeleteUser(_ context.Context, _, id string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.users[:0]
	for _, u := range m.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	m.users = kept
	return nil
}

type mockDecoder struct {
	identity model.Identity
	err      error
}

func (m *mockDecoder) Decode(_ string) (model.Identity, error) {
	return m.identity, m.err
}
