package models

import db "github.com/AgroVault/AgroVault-Backend/db/store"

func (u UserResponse) ToUserResponse(user *db.User) *UserResponse {
	return &UserResponse{
		ID:            ID(user.ID),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		PhoneNumber:   user.PhoneNumber,
		Roles:         user.Roles,
		WalletBalance: user.WalletBalance,
		Verified:      user.Verified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
