// Package auth issues and verifies the bearer tokens the curator API
// requires for mutations. There is no user table; tokens are minted
// out of band and carry a subject plus a role claim.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Role gates what a token may do. Editors manage authorities and
// aliases; admins can additionally deactivate authorities and trigger
// imports.
type Role string

const (
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

const (
	issuer = "posawiki"
	// KeyID identifies the signing key version inside the token header.
	keyID = "v1"
)

// Claims is the token payload.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// CanMutate reports whether the role may change authority data.
func (c *Claims) CanMutate() bool {
	return c.Role == RoleEditor || c.Role == RoleAdmin
}

// IsAdmin reports whether the role is admin.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// GenerateToken mints a signed token for the given subject and role.
func GenerateToken(subject string, role Role, secret string, expiresAfter time.Duration) (string, error) {
	if role != RoleEditor && role != RoleAdmin {
		return "", errors.Errorf("unknown role %q", role)
	}
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresAfter)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = keyID
	return token.SignedString([]byte(secret))
}

// Authenticate verifies an Authorization header value and returns the
// claims. An empty header is an anonymous request, returned as
// (nil, nil); callers decide whether the route needs a token.
func Authenticate(authHeader, secret string) (*Claims, error) {
	if authHeader == "" {
		return nil, nil
	}
	raw, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return nil, errors.New("malformed authorization header")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	return claims, nil
}
