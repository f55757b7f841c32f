package repository

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/user/medianexus/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register 注册用户。先做快速查重，真正的保证是 username/email 的唯一约束，
// 并发下撞约束同样会返回 ErrConflict。
func (r *UserRepository) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	user := &model.User{
		Username:     username,
		Email:        email,
		Nickname:     username,
		Role:         model.RoleUser,
		RegisteredAt: time.Now(),
	}
	if err := model.Validate(user); err != nil {
		return nil, err
	}

	taken, err := isEmailTaken(ctx, r.db, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = isLoginTaken(ctx, r.db, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrLoginTaken
	}

	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, wrapErr(err)
	}
	return user, nil
}

// Verify 校验登录凭证，成功时回写最后登录时间并返回用户。
// 用户不存在和密码错误统一返回 ErrInvalidCredentials。
func (r *UserRepository) Verify(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, wrapErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("last_login_at", now).Error; err != nil {
		return nil, wrapErr(err)
	}
	user.LastLoginAt = &now
	return &user, nil
}

// UpdateInfo 更新资料。改密码必须先过当前密码校验，
// 新邮箱被别人占用时整个更新失败，不再悄悄保留旧值。
func (r *UserRepository) UpdateInfo(ctx context.Context, user *model.User, currentPassword, newPassword string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.User
		if err := tx.First(&stored, user.ID).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"image_url":   user.ImageURL,
			"nickname":    user.Nickname,
			"description": user.Description,
			"birthday":    user.Birthday,
		}

		if newPassword != "" {
			if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(currentPassword)) != nil {
				return ErrInvalidCredentials
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password_hash"] = string(hash)
		}

		if user.Email != "" && user.Email != stored.Email {
			// 查重必须走事务里的连接
			taken, err := isEmailTaken(ctx, tx, user.Email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			updates["email"] = user.Email
		}

		return tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error
	})
	return wrapErr(err)
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// UpdateRole 更新用户角色
func (r *UserRepository) UpdateRole(ctx context.Context, userID int, role model.UserRole) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
	return wrapErr(err)
}

// SetBan 设置封禁状态，until 为 nil 表示永久封禁或解封时清空
func (r *UserRepository) SetBan(ctx context.Context, userID int, banned bool, until *time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"is_banned": banned, "ban_ends_at": until}).Error
	return wrapErr(err)
}

func isEmailTaken(ctx context.Context, db *gorm.DB, email string, excludeID int) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}

func isLoginTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}
