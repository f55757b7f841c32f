package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/user/medianexus/internal/model"
)

// GenreRepository 题材仓库
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建题材仓库
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// ListAll 获取所有题材
func (r *GenreRepository) ListAll(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return genres, nil
}

// FindByIDs 按 ID 批量查找题材
func (r *GenreRepository) FindByIDs(ctx context.Context, ids []int) ([]*model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []*model.Genre
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return genres, nil
}

// ListByMedia 获取某个条目关联的题材
func (r *GenreRepository) ListByMedia(ctx context.Context, mediaID int) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.WithContext(ctx).Model(&model.Genre{}).
		Joins("JOIN media_genres mg ON mg.genre_id = genres.id").
		Where("mg.media_id = ?", mediaID).
		Order("genres.name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return genres, nil
}

// Create 新增题材，名称重复时静默跳过（种子数据会重复执行）
func (r *GenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	if err := model.Validate(genre); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(genre).Error
	return wrapErr(err)
}
