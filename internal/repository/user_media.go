package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/user/medianexus/internal/model"
)

type UserMediaRepository struct {
	db *gorm.DB
}

func NewUserMediaRepository(db *gorm.DB) *UserMediaRepository {
	return &UserMediaRepository{db: db}
}

// Get 获取用户对某条目的进度记录
func (r *UserMediaRepository) Get(ctx context.Context, userID, mediaID int) (*model.UserMediaStatus, error) {
	var rec model.UserMediaStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		First(&rec).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &rec, nil
}

// Upsert 写入进度记录。(user_id, media_id) 上有唯一索引，
// 冲突时原子更新，不走先查后写。
func (r *UserMediaRepository) Upsert(ctx context.Context, s *model.UserMediaStatus) error {
	if err := model.Validate(s); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "progress", "updated_at"}),
	}).Create(s).Error
	return wrapErr(err)
}

// ListByUser 获取用户列表中某状态下的条目记录
func (r *UserMediaRepository) ListByUser(ctx context.Context, userID int, status model.ListStatus, limit, offset int) ([]*model.UserMediaStatus, error) {
	var records []*model.UserMediaStatus
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return records, nil
}

// CountByUser 统计用户列表中某状态下的条目数量
func (r *UserMediaRepository) CountByUser(ctx context.Context, userID int, status model.ListStatus) (int, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.UserMediaStatus{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, wrapErr(err)
	}
	return int(count), nil
}

// Remove 从用户列表里移除条目
func (r *UserMediaRepository) Remove(ctx context.Context, userID, mediaID int) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Delete(&model.UserMediaStatus{}).Error
	return wrapErr(err)
}
