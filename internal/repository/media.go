package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/user/medianexus/internal/model"
)

// ErrUnsupportedType 进度总量只对书籍和影视有意义
var ErrUnsupportedType = errors.New("repository: progress total is only defined for books and media")

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// filteredQuery 组装筛选查询。计数和分页必须走同一个入口，
// 否则总数和页内容会对不上。
func (r *MediaRepository) filteredQuery(ctx context.Context, f model.MediaFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.MainMedia{}).
		Joins("LEFT JOIN media_genres mg ON mg.media_id = main_media.id").
		Joins("LEFT JOIN user_media_statuses ums ON ums.media_id = main_media.id AND ums.user_id = ?", f.UserID)

	if len(f.Types) > 0 {
		q = q.Where("main_media.main_type IN ?", f.Types)
	}
	if len(f.GenreIDs) > 0 {
		q = q.Where("mg.genre_id IN ?", f.GenreIDs)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("main_media.status IN ?", f.Statuses)
	}
	if len(f.ListStatuses) > 0 {
		q = q.Where("ums.status IN ?", f.ListStatuses)
	}

	return q
}

// CountFiltered 统计符合筛选条件的条目总数
func (r *MediaRepository) CountFiltered(ctx context.Context, f model.MediaFilter) (int, error) {
	var count int64
	err := r.filteredQuery(ctx, f).Distinct("main_media.id").Count(&count).Error
	if err != nil {
		return 0, wrapErr(err)
	}
	return int(count), nil
}

// ListFiltered 按筛选条件分页获取条目，page 从 1 开始
func (r *MediaRepository) ListFiltered(ctx context.Context, f model.MediaFilter, pageSize, page int) ([]*model.MainMedia, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var items []*model.MainMedia
	err := r.filteredQuery(ctx, f).
		Distinct("main_media.*").
		Order("main_media.added_at DESC, main_media.original_name DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

// ListRecent 无筛选的最新条目，排序与筛选查询一致
func (r *MediaRepository) ListRecent(ctx context.Context, pageSize, page int) ([]*model.MainMedia, error) {
	return r.ListFiltered(ctx, model.MediaFilter{}, pageSize, page)
}

// GetMedia 根据 ID 获取影视条目（基础行 + 子表行都必须存在）
func (r *MediaRepository) GetMedia(ctx context.Context, id int) (*model.Media, error) {
	var m model.Media
	if err := r.db.WithContext(ctx).First(&m.MainMedia, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	if err := r.db.WithContext(ctx).First(&m.MediaDetails, "media_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &m, nil
}

// GetBook 根据 ID 获取书籍条目
func (r *MediaRepository) GetBook(ctx context.Context, id int) (*model.Book, error) {
	var b model.Book
	if err := r.db.WithContext(ctx).First(&b.MainMedia, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	if err := r.db.WithContext(ctx).First(&b.BookDetails, "book_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &b, nil
}

// CreateMedia 新增影视条目：基础行、子表行、题材关联在一个事务里写入
func (r *MediaRepository) CreateMedia(ctx context.Context, m *model.Media, genreIDs []int) error {
	m.MainType = model.TypeMedia
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	if err := m.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m.MainMedia).Error; err != nil {
			return err
		}
		m.MediaDetails.MediaID = m.MainMedia.ID
		if err := tx.Create(&m.MediaDetails).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, m.MainMedia.ID, genreIDs)
	})
	return wrapErr(err)
}

// CreateBook 新增书籍条目，同样的事务结构
func (r *MediaRepository) CreateBook(ctx context.Context, b *model.Book, genreIDs []int) error {
	b.MainType = model.TypeBook
	if b.AddedAt.IsZero() {
		b.AddedAt = time.Now()
	}
	if err := b.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b.MainMedia).Error; err != nil {
			return err
		}
		b.BookDetails.BookID = b.MainMedia.ID
		if err := tx.Create(&b.BookDetails).Error; err != nil {
			return err
		}
		return createGenreLinks(tx, b.MainMedia.ID, genreIDs)
	})
	return wrapErr(err)
}

func createGenreLinks(tx *gorm.DB, mediaID int, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]model.MediaGenre, 0, len(genreIDs))
	for _, gid := range genreIDs {
		links = append(links, model.MediaGenre{MediaID: mediaID, GenreID: gid})
	}
	return tx.Create(&links).Error
}

// ProgressTotal 进度总量：书籍是页数，影视是总集数
func (r *MediaRepository) ProgressTotal(ctx context.Context, mainType model.MainType, id int) (int, error) {
	var row *sql.Row
	switch mainType {
	case model.TypeBook:
		row = r.db.WithContext(ctx).Model(&model.BookDetails{}).
			Select("pages").Where("book_id = ?", id).Row()
	case model.TypeMedia:
		row = r.db.WithContext(ctx).Model(&model.MediaDetails{}).
			Select("total_episodes").Where("media_id = ?", id).Row()
	default:
		return 0, ErrUnsupportedType
	}

	var total sql.NullInt64
	if err := row.Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, wrapErr(err)
	}
	return int(total.Int64), nil
}

// ListOngoingSerials 获取所有连载中的剧集，用于刷新下一集时间
func (r *MediaRepository) ListOngoingSerials(ctx context.Context) ([]*model.Media, error) {
	var mains []model.MainMedia
	err := r.db.WithContext(ctx).
		Joins("JOIN media ON media.media_id = main_media.id AND media.second_type = ?", model.SecondTypeSerial).
		Where("main_media.status = ?", model.StatusOngoing).
		Order("main_media.id ASC").
		Find(&mains).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(mains) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(mains))
	for _, mm := range mains {
		ids = append(ids, mm.ID)
	}
	var details []model.MediaDetails
	if err := r.db.WithContext(ctx).Where("media_id IN ?", ids).Find(&details).Error; err != nil {
		return nil, wrapErr(err)
	}
	byID := make(map[int]model.MediaDetails, len(details))
	for _, d := range details {
		byID[d.MediaID] = d
	}

	result := make([]*model.Media, 0, len(mains))
	for _, mm := range mains {
		result = append(result, &model.Media{MainMedia: mm, MediaDetails: byID[mm.ID]})
	}
	return result, nil
}

// SetNextEpisode 更新下一集时间
func (r *MediaRepository) SetNextEpisode(ctx context.Context, id int, next time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.MediaDetails{}).
		Where("media_id = ?", id).
		Update("next_episode_at", next).Error
	return wrapErr(err)
}
