package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type PortalIdentity struct {
	Id       int
	UserName string
	Email    string
}

type Identity struct {
	ID         int    `json:"nameid"`
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken mints the HS256 token the SESMT editors use on the
// mutating routes. The secret arrives base64 encoded, matching how it is
// stored in SSM.
func CreateIdentityToken(identity *PortalIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			ID:         identity.Id,
			UniqueName: identity.UserName,
			Email:      identity.Email,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "portalsst",
			Audience:  []string{"*.portalsst.com"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}

// DecodeSecret turns the base64 form into the raw key the middleware needs.
func DecodeSecret(base64Secret string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64Secret)
}
