package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newTestSessionService(store *mockSessionStore, backend *mockBackend, decoder mockDecoder) *SessionService {
	svc := NewSessionService(store, backend, decoder, 12*time.Hour, discardLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSessionService_LoginStoresTokenAndClaim(t *testing.T) {
	store := newMockSessionStore()
	backend := &mockBackend{token: "tok-alice"}
	decoder := mockDecoder{identity: model.Identity{Subject: "1", Username: "alice"}}
	svc := newTestSessionService(store, backend, decoder)

	session, err := svc.Login(context.Background(), "", "alice", "secret")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "tok-alice", session.Token)
	assert.Equal(t, "alice", session.Identity.Username)
	assert.Equal(t, testNow.Add(12*time.Hour), session.ExpiresAt)

	stored, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Identity.Username)
}

func TestSessionService_LoginRejectedStoresNothing(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["prior"] = model.Session{ID: "prior", Token: "old"}
	backend := &mockBackend{loginErr: &model.APIError{Status: 401, Message: "Unauthorized"}}
	svc := newTestSessionService(store, backend, mockDecoder{})

	_, err := svc.Login(context.Background(), "prior", "alice", "wrong")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Len(t, store.sessions, 1)
	assert.Equal(t, "old", store.sessions["prior"].Token)
}

func TestSessionService_LoginReplacesPriorSession(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["prior"] = model.Session{ID: "prior", Token: "old"}
	backend := &mockBackend{token: "new"}
	svc := newTestSessionService(store, backend, mockDecoder{identity: model.Identity{Username: "alice"}})

	session, err := svc.Login(context.Background(), "prior", "alice", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, "prior", session.ID)
	assert.Len(t, store.sessions, 1)
	assert.Equal(t, "new", store.sessions[session.ID].Token)
}

func TestSessionService_LoginPresenceCheck(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "blank username", username: "  ", password: "x"},
		{name: "empty password", username: "alice", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{token: "tok"}
			svc := newTestSessionService(newMockSessionStore(), backend, mockDecoder{})

			_, err := svc.Login(context.Background(), "", tt.username, tt.password)

			assert.ErrorIs(t, err, model.ErrInvalidCredentials)
			assert.Equal(t, 0, backend.loginCalls)
		})
	}
}

func TestSessionService_LoginUndecodableToken(t *testing.T) {
	store := newMockSessionStore()
	backend := &mockBackend{token: "not-a-jwt"}
	svc := newTestSessionService(store, backend, mockDecoder{err: errors.New("malformed")})

	_, err := svc.Login(context.Background(), "", "alice", "secret")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Empty(t, store.sessions)
}

func TestSessionService_LoginExpiredTokenStoresNothing(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["prior"] = model.Session{ID: "prior", Token: "old"}
	backend := &mockBackend{token: "tok-stale"}
	decoder := mockDecoder{identity: model.Identity{Username: "alice", ExpiresAt: testNow.Add(-time.Hour)}}
	svc := newTestSessionService(store, backend, decoder)

	_, err := svc.Login(context.Background(), "prior", "alice", "secret")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Len(t, store.sessions, 1)
	assert.Equal(t, "old", store.sessions["prior"].Token)
}

func TestSessionService_LoginSaveFailure(t *testing.T) {
	store := newMockSessionStore()
	store.saveErr = errors.New("disk full")
	backend := &mockBackend{token: "tok"}
	svc := newTestSessionService(store, backend, mockDecoder{identity: model.Identity{Username: "alice"}})

	_, err := svc.Login(context.Background(), "", "alice", "secret")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestSessionService_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		stored  *model.Session
		getErr  error
		wantErr error
		dropped bool
	}{
		{name: "empty id", id: "", wantErr: model.ErrNoSession},
		{name: "unknown id", id: "missing", wantErr: model.ErrNoSession},
		{
			name:    "unreadable record",
			id:      "s1",
			getErr:  errors.New("gcm.Open: message authentication failed"),
			wantErr: model.ErrNoSession,
		},
		{
			name:    "session expired",
			id:      "s1",
			stored:  &model.Session{ID: "s1", Token: "tok", ExpiresAt: testNow.Add(-time.Minute)},
			wantErr: model.ErrNoSession,
			dropped: true,
		},
		{
			name: "token exp passed",
			id:   "s1",
			stored: &model.Session{
				ID:        "s1",
				Token:     "tok",
				ExpiresAt: testNow.Add(time.Hour),
				Identity:  model.Identity{Username: "alice", ExpiresAt: testNow.Add(-time.Second)},
			},
			wantErr: model.ErrNoSession,
			dropped: true,
		},
		{
			name: "usable",
			id:   "s1",
			stored: &model.Session{
				ID:        "s1",
				Token:     "tok",
				ExpiresAt: testNow.Add(time.Hour),
				Identity:  model.Identity{Username: "alice"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockSessionStore()
			store.getErr = tt.getErr
			if tt.stored != nil {
				store.sessions[tt.stored.ID] = *tt.stored
			}
			svc := newTestSessionService(store, &mockBackend{}, mockDecoder{})

			session, err := svc.Resolve(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.dropped {
					assert.Empty(t, store.sessions)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", session.Identity.Username)
		})
	}
}

func TestSessionService_TokenAndLogout(t *testing.T) {
	store := newMockSessionStore()
	store.sessions["s1"] = model.Session{ID: "s1", Token: "tok", ExpiresAt: testNow.Add(time.Hour)}
	svc := newTestSessionService(store, &mockBackend{}, mockDecoder{})

	token, err := svc.Token(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, svc.Logout(context.Background(), "s1"))

	_, err = svc.Token(context.Background(), "s1")
	assert.ErrorIs(t, err, model.ErrNoSession)

	assert.NoError(t, svc.Logout(context.Background(), ""))
}
