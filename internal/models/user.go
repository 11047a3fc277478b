package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email           string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash    string    `json:"-"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	ProfileLinkType string    `json:"profile_link_type" gorm:"size:20"`
	ProfileLink     string    `json:"profile_link"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserCompact is the snapshot embedded in enriched responses (actors,
// comment authors, conversation partners).
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	DisplayName     string `json:"display_name" validate:"omitempty,max=50"`
	Bio             string `json:"bio" validate:"omitempty,max=300"`
	AvatarURL       string `json:"avatar_url" validate:"omitempty,url"`
	ProfileLinkType string `json:"profile_link_type" validate:"omitempty,oneof=instagram facebook twitter linkedin github"`
	ProfileLink     string `json:"profile_link" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
