package model

import (
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	RoleAdmin     UserRole = "Admin"
	RoleModerator UserRole = "Moderator"
	RoleUser      UserRole = "User"
	RoleGuest     UserRole = "Guest"
)

// User 用户模型
type User struct {
	ID           int        `json:"id" db:"id" gorm:"primaryKey"`
	Username     string     `json:"username" db:"username" gorm:"unique" validate:"required,min=3,max=50"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Email        string     `json:"email" db:"email" gorm:"unique" validate:"required,email"`
	Nickname     string     `json:"nickname" db:"nickname"`
	ImageURL     string     `json:"image_url" db:"image_url"`
	Role         UserRole   `json:"role" db:"role" validate:"omitempty,oneof=Admin Moderator User Guest"`
	RegisteredAt time.Time  `json:"registered_at" db:"registered_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	IsBanned     bool       `json:"is_banned" db:"is_banned"`
	BanEndsAt    *time.Time `json:"ban_ends_at" db:"ban_ends_at"`
	Birthday     *time.Time `json:"birthday" db:"birthday"`
	Description  string     `json:"description" db:"description"`
}

// EffectiveRole 未分配角色时按访客处理
func (u *User) EffectiveRole() UserRole {
	if u.Role == "" {
		return RoleGuest
	}
	return u.Role
}

// IsBannedAt 判断用户在指定时间是否处于封禁期
func (u *User) IsBannedAt(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if u.BanEndsAt == nil {
		return true
	}
	return now.Before(*u.BanEndsAt)
}
