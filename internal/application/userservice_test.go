package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

var testSession = model.Session{ID: "s1", Token: "tok", Identity: model.Identity{Username: "admin"}}

func seedUsers() []model.User {
	return []model.User{
		{ID: "4", Username: "ann", Fullname: "Ann Moss"},
		{ID: "5", Username: "bob", Fullname: "Bob Lee"},
	}
}

func TestUserService_ListRequiresToken(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())

	_, err := svc.List(context.Background(), model.Session{})

	assert.ErrorIs(t, err, model.ErrNoSession)
	assert.Equal(t, 0, backend.listCalls)
}

func TestUserService_ListUsesSessionToken(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())

	users, err := svc.List(context.Background(), testSession)

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "tok", backend.lastToken)
}

func TestUserService_MutationsRequireToken(t *testing.T) {
	backend := &mockBackend{}
	svc := NewUserService(backend, discardLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Session{}, model.UserInput{})
	assert.ErrorIs(t, err, model.ErrNoSession)
	_, err = svc.Update(ctx, model.Session{}, "5", model.UserInput{})
	assert.ErrorIs(t, err, model.ErrNoSession)
	_, err = svc.Delete(ctx, model.Session{}, "5", true)
	assert.ErrorIs(t, err, model.ErrNoSession)

	assert.Zero(t, backend.createCalls+backend.updateCalls+backend.deleteCalls)
}

func TestUserService_CreateSuccessRefetchesOnce(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())
	input := model.UserInput{Fullname: "Cy Twombly", Username: "cy", Password: "pw"}

	out, err := svc.Create(context.Background(), testSession, input)

	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.True(t, out.Refreshed)
	assert.Equal(t, 1, backend.listCalls)
	assert.Equal(t, input, backend.lastInput)
	assert.Equal(t, []model.Notice{{Kind: model.NoticeSuccess, Text: model.TextUserAdded}}, out.Notices)
	assert.Len(t, out.Users, 2)
}

func TestUserService_CreateValidationFailure(t *testing.T) {
	backend := &mockBackend{
		users: seedUsers(),
		createErr: &model.APIError{
			Status: 422,
			Fields: map[string]string{"username": "taken"},
		},
	}
	svc := NewUserService(backend, discardLogger())
	input := model.UserInput{Fullname: "Bob Lee", Username: "bob", Password: "x"}

	out, err := svc.Create(context.Background(), testSession, input)

	require.NoError(t, err)
	assert.False(t, out.Succeeded())
	assert.Equal(t, model.EventRejected, out.Event.Kind)
	assert.Equal(t, "taken", out.Event.Fields["username"])
	assert.Empty(t, out.Notices)
	assert.False(t, out.Refreshed)
	assert.Equal(t, 0, backend.listCalls)

	form := model.Reduce(model.Reduce(model.FormState{}, model.Event{Kind: model.EventOpenCreate}), out.Event)
	assert.Equal(t, model.ModalCreate, form.Modal)
	assert.Equal(t, "taken", form.FieldError("username"))
}

func TestUserService_SubmitFailureNotices(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "backend message",
			err:      &model.APIError{Status: 500, Message: "Database unavailable"},
			wantText: "Database unavailable",
		},
		{
			name:     "network failure",
			err:      errors.New("dial tcp: connection refused"),
			wantText: model.TextGenericError,
		},
		{
			name:     "422 without field map",
			err:      &model.APIError{Status: 422},
			wantText: model.TextGenericError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{updateErr: tt.err}
			svc := NewUserService(backend, discardLogger())

			out, err := svc.Update(context.Background(), testSession, "5", model.UserInput{Username: "bob"})

			require.NoError(t, err)
			assert.Equal(t, model.EventFailed, out.Event.Kind)
			require.Len(t, out.Notices, 1)
			assert.Equal(t, model.NoticeError, out.Notices[0].Kind)
			assert.Equal(t, tt.wantText, out.Notices[0].Text)
			assert.Equal(t, 0, backend.listCalls)
		})
	}
}

func TestUserService_UpdateSuccess(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())

	out, err := svc.Update(context.Background(), testSession, "5", model.UserInput{Fullname: "Robert Lee", Username: "bob"})

	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Equal(t, "5", backend.updatedID)
	assert.Equal(t, 1, backend.listCalls)
	assert.Equal(t, model.TextUserUpdated, out.Notices[0].Text)
}

func TestUserService_DeleteDeclinedSendsNothing(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())

	out, err := svc.Delete(context.Background(), testSession, "5", false)

	require.NoError(t, err)
	assert.Equal(t, 0, backend.deleteCalls)
	assert.Equal(t, 0, backend.listCalls)
	assert.Empty(t, out.Notices)
	assert.Equal(t, model.EventCancel, out.Event.Kind)
}

func TestUserService_DeleteConfirmed(t *testing.T) {
	backend := &mockBackend{users: seedUsers()}
	svc := NewUserService(backend, discardLogger())

	out, err := svc.Delete(context.Background(), testSession, "5", true)

	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, backend.deletedIDs)
	assert.Equal(t, 1, backend.listCalls)
	assert.Equal(t, model.TextUserDeleted, out.Notices[0].Text)
	for _, u := range out.Users {
		assert.NotEqual(t, "5", u.ID)
	}
	assert.Len(t, out.Users, 1)
}

func TestUserService_DeleteFailureFallback(t *testing.T) {
	backend := &mockBackend{deleteErr: errors.New("timeout")}
	svc := NewUserService(backend, discardLogger())

	out, err := svc.Delete(context.Background(), testSession, "5", true)

	require.NoError(t, err)
	assert.Equal(t, []model.Notice{{Kind: model.NoticeError, Text: model.TextDeleteFailed}}, out.Notices)
	assert.Equal(t, 0, backend.listCalls)
}

func TestUserService_RefreshFailureAddsNotice(t *testing.T) {
	backend := &mockBackend{listErr: errors.New("boom")}
	svc := NewUserService(backend, discardLogger())

	out, err := svc.Create(context.Background(), testSession, model.UserInput{Username: "cy"})

	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Equal(t, 1, backend.listCalls)
	require.Len(t, out.Notices, 2)
	assert.Equal(t, model.TextUserAdded, out.Notices[0].Text)
	assert.Equal(t, model.TextListFailed, out.Notices[1].Text)
	assert.Nil(t, out.Users)
}
