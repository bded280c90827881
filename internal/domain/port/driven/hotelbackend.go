package driven

import (
	"context"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

// HotelBackend defines the driven port for the hotel-management REST API.
// Non-2xx responses are reported as *model.APIError.
type HotelBackend interface {
	// Login exchanges a username/password pair for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	ListUsers(ctx context.Context, token string) ([]model.User, error)
	CreateUser(ctx context.Context, token string, input model.UserInput) error
	UpdateUser(ctx context.Context, token, id string, input model.UserInput) error
	DeleteUser(ctx context.Context, token, id string) error
}

// ClaimDecoder extracts the identity claim from a token without contacting
// the backend or verifying the signature.
type ClaimDecoder interface {
	Decode(token string) (model.Identity, error)
}
