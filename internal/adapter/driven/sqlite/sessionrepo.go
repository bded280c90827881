package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port.
// Rows are keyed by the SHA-256 of the session id so the database never
// holds a usable cookie value. Tokens are encrypted with AES-256-GCM, bound
// to their row key as additional data.
type SessionRepo struct {
	db   *DB
	aead cipher.AEAD
}

// NewSessionRepo creates a SessionRepo. key must be 32 bytes.
func NewSessionRepo(db *DB, key []byte) (*SessionRepo, error) {
	if len(key) != 32 {
		return nil, driven.ErrEncryptionKeyInvalid
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &SessionRepo{db: db, aead: aead}, nil
}

// Save stores or replaces the session.
func (r *SessionRepo) Save(ctx context.Context, s model.Session) error {
	key := hashID(s.ID)

	encrypted, err := r.encrypt(s.Token, key)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO sessions
		(id_hash, token, subject, username, claim_expires_at, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.Writer.ExecContext(ctx, query,
		key,
		encrypted,
		s.Identity.Subject,
		s.Identity.Username,
		toUnix(s.Identity.ExpiresAt),
		toUnix(s.CreatedAt),
		toUnix(s.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the session for id, or (nil, nil) if none exists.
func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	key := hashID(id)

	const query = `SELECT token, subject, username, claim_expires_at, created_at, expires_at
		FROM sessions WHERE id_hash = ?`

	var (
		encrypted                          string
		claimExpires, createdAt, expiresAt int64
	)
	s := model.Session{ID: id}
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(
		&encrypted,
		&s.Identity.Subject,
		&s.Identity.Username,
		&claimExpires,
		&createdAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	s.Token, err = r.decrypt(encrypted, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt session token: %w", err)
	}
	s.Identity.ExpiresAt = fromUnix(claimExpires)
	s.CreatedAt = fromUnix(createdAt)
	s.ExpiresAt = fromUnix(expiresAt)

	return &s, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id_hash = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, hashID(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose own expiry or token exp claim is at or
// before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions
		WHERE expires_at <= ? OR (claim_expires_at > 0 AND claim_expires_at <= ?)`

	cutoff := now.Unix()
	result, err := r.db.Writer.ExecContext(ctx, query, cutoff, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return rows, nil
}

// encrypt seals plaintext with AES-256-GCM and returns a base64-encoded string
// containing the nonce prepended to the ciphertext.
func (r *SessionRepo) encrypt(plaintext, key string) (string, error) {
	nonce := make([]byte, r.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := r.aead.Seal(nonce, nonce, []byte(plaintext), []byte(key))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt reverses encrypt. It fails if the row key does not match the one
// the token was sealed with.
func (r *SessionRepo) decrypt(encoded, key string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	nonceSize := r.aead.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := r.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}
	return string(plaintext), nil
}

func hashID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}
