package hotelapi

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ClaimDecoder = JWTDecoder{}

var errNoUsername = errors.New("token carries no username claim")

// JWTDecoder reads the identity claim of a JWT without verifying its
// signature. The console holds no signing key; the backend remains the
// only party that validates the credential.
type JWTDecoder struct{}

// Decode parses the token's payload and maps it onto an Identity.
func (JWTDecoder) Decode(token string) (model.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.Identity{}, fmt.Errorf("decode token: %w", err)
	}

	identity := model.Identity{
		Subject:  firstString(claims, "sub", "user_id", "id"),
		Username: firstString(claims, "username", "preferred_username", "name"),
	}
	if identity.Username == "" {
		return model.Identity{}, errNoUsername
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return model.Identity{}, fmt.Errorf("decode exp claim: %w", err)
	}
	if exp != nil {
		identity.ExpiresAt = exp.UTC()
	}

	return identity, nil
}

// firstString returns the first claim among keys that holds a non-empty
// string or number.
func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
