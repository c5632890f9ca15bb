package auth

import "github.com/AgroVault/AgroVault-Backend/utils"

// Identity is the already-authenticated caller handed to services.
// Services never reach into request context for it.
type Identity struct {
	ID    int64
	Roles []string
}

var privilegedRoles = map[string]bool{
	"admin":      true,
	"superadmin": true,
	"paymaster":  true,
}

func IsPrivileged(roles []string) bool {
	for _, r := range roles {
		if privilegedRoles[r] {
			return true
		}
	}
	return false
}

func (i Identity) Privileged() bool {
	return IsPrivileged(i.Roles)
}

func (i Identity) Owns(userID int64) bool {
	return i.ID == userID
}

func FromToken(t utils.TokenObject) Identity {
	return Identity{
		ID:    t.UserID,
		Roles: t.Roles,
	}
}
