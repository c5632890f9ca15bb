package auth

import (
	"testing"

	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/stretchr/testify/require"
)

func TestIsPrivileged(t *testing.T) {
	require.True(t, IsPrivileged([]string{"admin"}))
	require.True(t, IsPrivileged([]string{"user", "superadmin"}))
	require.True(t, IsPrivileged([]string{"paymaster"}))
	require.False(t, IsPrivileged([]string{"user"}))
	require.False(t, IsPrivileged(nil))
}

func TestIdentityOwns(t *testing.T) {
	id := Identity{ID: 7, Roles: []string{"user"}}
	require.True(t, id.Owns(7))
	require.False(t, id.Owns(8))
}

func TestFromToken(t *testing.T) {
	id := FromToken(utils.TokenObject{UserID: 3, Roles: []string{"admin"}, Verified: true})
	require.Equal(t, int64(3), id.ID)
	require.True(t, id.Privileged())
}
