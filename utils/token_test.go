package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	maker := NewJWTToken(&Config{SigningKey: "test-signing-key"})

	user := TokenObject{
		UserID:   42,
		Roles:    []string{"user", "paymaster"},
		Verified: true,
	}

	token, err := maker.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := maker.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.UserID, decoded.UserID)
	require.Equal(t, user.Roles, decoded.Roles)
	require.True(t, decoded.Verified)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	maker := NewJWTToken(&Config{SigningKey: "key-one"})
	token, err := maker.CreateToken(TokenObject{UserID: 1})
	require.NoError(t, err)

	other := NewJWTToken(&Config{SigningKey: "key-two"})
	_, err = other.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	maker := NewJWTToken(&Config{SigningKey: "test-signing-key"})
	_, err := maker.VerifyToken("not.a.jwt")
	require.Error(t, err)
}
