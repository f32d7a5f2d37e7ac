package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleCouple      = "couple"
	RolePrestataire = "prestataire"
	RoleAdmin       = "admin"
)

type User struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Password  string     `json:"password,omitempty"`
	Role      string     `json:"role"`
	City      string     `json:"city"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SignUpRequest struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	City         string `json:"city"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type SignInRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	UserID      int    `json:"user_id"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type DeviceToken struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}
