package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("curator", RoleEditor, secret, time.Hour)
	require.NoError(t, err)

	claims, err := Authenticate("Bearer "+token, secret)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, "curator", claims.Subject)
	require.Equal(t, RoleEditor, claims.Role)
	require.True(t, claims.CanMutate())
	require.False(t, claims.IsAdmin())
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken("curator", RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	_, err = Authenticate("Bearer "+token, "other-secret")
	require.Error(t, err)

	_, err = Authenticate(token, secret) // missing Bearer prefix
	require.Error(t, err)

	expired, err := GenerateToken("curator", RoleAdmin, secret, -time.Minute)
	require.NoError(t, err)
	_, err = Authenticate("Bearer "+expired, secret)
	require.Error(t, err)
}

func TestAuthenticateAnonymous(t *testing.T) {
	claims, err := Authenticate("", "secret")
	require.NoError(t, err)
	require.Nil(t, claims)
}

func TestGenerateTokenUnknownRole(t *testing.T) {
	_, err := GenerateToken("curator", Role("viewer"), "secret", time.Hour)
	require.Error(t, err)
}
