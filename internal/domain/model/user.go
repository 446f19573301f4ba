package model

import "time"

// User é um usuário da API. O hash da senha nunca é serializado.
type User struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	HashedPassword string     `gorm:"column:hashed_password;not null" json:"-"`
	IsActive       bool       `gorm:"column:is_active;not null" json:"is_active"`
	LastLogin      *time.Time `gorm:"column:last_login" json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

type UserCreate struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// LoginRequest aceita form-urlencoded (padrão OAuth2) ou JSON
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
