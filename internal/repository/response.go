package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/user/medianexus/internal/model"
)

// ResponseRepository 用户评价仓库
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository 创建用户评价仓库
func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Add 新增评价
func (r *ResponseRepository) Add(ctx context.Context, resp *model.UserResponse) error {
	if err := model.Validate(resp); err != nil {
		return err
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now()
	}
	return wrapErr(r.db.WithContext(ctx).Create(resp).Error)
}

// ListByMedia 获取条目下的评价，连表带出作者昵称和头像
func (r *ResponseRepository) ListByMedia(ctx context.Context, mediaID int) ([]*model.UserResponse, error) {
	var responses []*model.UserResponse
	err := r.db.WithContext(ctx).Model(&model.UserResponse{}).
		Select("user_responses.*, u.nickname AS user_nickname, u.image_url AS user_image_url").
		Joins("JOIN users u ON u.id = user_responses.user_id").
		Where("user_responses.media_id = ?", mediaID).
		Order("user_responses.created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return responses, nil
}

// CountByMedia 统计条目下的评价数量
func (r *ResponseRepository) CountByMedia(ctx context.Context, mediaID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserResponse{}).
		Where("media_id = ?", mediaID).
		Count(&count).Error
	if err != nil {
		return 0, wrapErr(err)
	}
	return int(count), nil
}
