package models

import (
	"time"

	_ "github.com/go-playground/validator/v10"
)

type UserLoginParams struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type RegisterUserParams struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type RegisterAdminParams struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
	AdminKey    string `json:"admin_key" binding:"required" validate:"oneof=77aGv3nD9wKqPze1 4cXaGv0dR2mNsuf8"`
}

type UserResponse struct {
	ID            ID        `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Roles         []string  `json:"roles"`
	WalletBalance string    `json:"wallet_balance"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UserWithToken struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

const (
	ADMIN      = "admin"
	SUPERADMIN = "superadmin"
	PAYMASTER  = "paymaster"
	USER       = "user"
)

type UserOTPParams struct {
	OTP string `json:"otp" binding:"required"`
}

type UpdatePushTokenParams struct {
	FcmToken  string `json:"fcm_token"`
	ExpoToken string `json:"expo_token"`
}
