package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

// Outcome is the result of a dashboard mutation.
type Outcome struct {
	// Event is the modal transition the result implies.
	Event   model.Event
	Notices []model.Notice
	// Users is the re-fetched list; only set when Refreshed is true and the
	// fetch succeeded.
	Users     []model.User
	Refreshed bool
}

// Succeeded reports whether the mutation was accepted by the backend.
func (o Outcome) Succeeded() bool {
	return o.Event.Kind == model.EventSucceeded
}

// UserService runs the guarded CRUD workflow against the backend's user
// records. The in-memory list is never patched: every accepted mutation is
// followed by exactly one full re-fetch.
type UserService struct {
	backend driven.HotelBackend
	logger  *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(backend driven.HotelBackend, logger *slog.Logger) *UserService {
	return &UserService{backend: backend, logger: logger}
}

// List fetches the ordered user list. A session without a token yields
// model.ErrNoSession rather than a silent no-op.
func (s *UserService) List(ctx context.Context, session model.Session) ([]model.User, error) {
	if session.Token == "" {
		return nil, model.ErrNoSession
	}

	users, err := s.backend.ListUsers(ctx, session.Token)
	if err != nil {
		s.logger.Error("failed to fetch users", "error", err)
		return nil, err
	}
	return users, nil
}

// Create submits a new record.
func (s *UserService) Create(ctx context.Context, session model.Session, input model.UserInput) (Outcome, error) {
	if session.Token == "" {
		return Outcome{}, model.ErrNoSession
	}

	err := s.backend.CreateUser(ctx, session.Token, input)
	if err != nil {
		s.logger.Error("failed to create user", "username", input.Username, "error", err)
		return submitFailure(err, input), nil
	}

	return s.refresh(ctx, session, model.TextUserAdded), nil
}

// Update submits changes to the record with the given id.
func (s *UserService) Update(ctx context.Context, session model.Session, id string, input model.UserInput) (Outcome, error) {
	if session.Token == "" {
		return Outcome{}, model.ErrNoSession
	}

	err := s.backend.UpdateUser(ctx, session.Token, id, input)
	if err != nil {
		s.logger.Error("failed to update user", "id", id, "error", err)
		return submitFailure(err, input), nil
	}

	return s.refresh(ctx, session, model.TextUserUpdated), nil
}

// Delete removes the record with the given id. When confirmed is false the
// operator declined the confirmation: no request is sent.
func (s *UserService) Delete(ctx context.Context, session model.Session, id string, confirmed bool) (Outcome, error) {
	if session.Token == "" {
		return Outcome{}, model.ErrNoSession
	}

	if !confirmed {
		return Outcome{Event: model.Event{Kind: model.EventCancel}}, nil
	}

	if err := s.backend.DeleteUser(ctx, session.Token, id); err != nil {
		s.logger.Error("failed to delete user", "id", id, "error", err)
		return Outcome{
			Event:   model.Event{Kind: model.EventCancel},
			Notices: []model.Notice{failureNotice(err, model.TextDeleteFailed)},
		}, nil
	}

	return s.refresh(ctx, session, model.TextUserDeleted), nil
}

func (s *UserService) refresh(ctx context.Context, session model.Session, text string) Outcome {
	out := Outcome{
		Event:     model.Event{Kind: model.EventSucceeded},
		Notices:   []model.Notice{{Kind: model.NoticeSuccess, Text: text}},
		Refreshed: true,
	}

	users, err := s.List(ctx, session)
	if err != nil {
		out.Notices = append(out.Notices, model.Notice{Kind: model.NoticeError, Text: model.TextListFailed})
		return out
	}

	out.Users = users
	return out
}

// submitFailure maps a create/update error onto the modal: a 422 becomes
// per-field messages, anything else a notice with the backend's message.
func submitFailure(err error, input model.UserInput) Outcome {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.IsValidation() && len(apiErr.Fields) > 0 {
		return Outcome{Event: model.Event{Kind: model.EventRejected, Input: input, Fields: apiErr.Fields}}
	}

	return Outcome{
		Event:   model.Event{Kind: model.EventFailed, Input: input},
		Notices: []model.Notice{failureNotice(err, model.TextGenericError)},
	}
}

func failureNotice(err error, fallback string) model.Notice {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return model.Notice{Kind: model.NoticeError, Text: apiErr.Message}
	}
	return model.Notice{Kind: model.NoticeError, Text: fallback}
}
