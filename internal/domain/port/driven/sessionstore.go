package driven

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
)

// ErrEncryptionKeyInvalid is returned when a session store is constructed with
// a key that is not 32 bytes.
var ErrEncryptionKeyInvalid = errors.New("session encryption key must be 32 bytes")

// SessionStore defines the driven port for server-side session persistence.
// The adapter is responsible for encrypting the credential at rest; this
// interface operates on plaintext sessions at the domain boundary.
type SessionStore interface {
	// Save stores or replaces the session with the given ID.
	Save(ctx context.Context, session model.Session) error

	// Get returns the session with the given ID, or (nil, nil) if none exists.
	// A stored row that cannot be decrypted is reported as an error.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session whose expiry is at or before now
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
