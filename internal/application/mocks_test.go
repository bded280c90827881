package application

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

// mockSessionStore is an in-memory driven.SessionStore.
type mockSessionStore struct {
	mu         sync.Mutex
	sessions   map[string]model.Session
	getErr     error
	saveErr    error
	sweepCalls int
	sweepAt    time.Time
	swept      int64
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]model.Session{}}
}

func (m *mockSessionStore) Save(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
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

func (m *mockSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepCalls++
	m.sweepAt = now
	return m.swept, nil
}

// mockBackend is a scripted driven.HotelBackend that counts calls.
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
	deletedIDs  []string
	updatedID   string
	lastToken   string
	lastInput   model.UserInput
}

func (m *mockBackend) Login(_ context.Context, _, _ string) (string, error) {
	m.loginCalls++
	return m.token, m.loginErr
}

func (m *mockBackend) ListUsers(_ context.Context, token string) ([]model.User, error) {
	m.listCalls++
	m.lastToken = token
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *mockBackend) CreateUser(_ context.Context, token string, input model.UserInput) error {
	m.createCalls++
	m.lastToken = token
	m.lastInput = input
	return m.createErr
}

func (m *mockBackend) UpdateUser(_ context.Context, token, id string, input model.UserInput) error {
	m.updateCalls++
	m.lastToken = token
	m.updatedID = id
	m.lastInput = input
	return m.updateErr
}

func (m *mockBackend) DeleteUser(_ context.Context, token, id string) error {
	m.deleteCalls++
	m.lastToken = token
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	kept := m.users[:0]
	for _, u := range m.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	m.users = kept
	return nil
}

// mockDecoder echoes a fixed identity or fails.
type mockDecoder struct {
	identity model.Identity
	err      error
}

func (m mockDecoder) Decode(_ string) (model.Identity, error) {
	return m.identity, m.err
}
