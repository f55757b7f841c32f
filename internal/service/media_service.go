package service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/medianexus/internal/model"
	"github.com/user/medianexus/internal/repository"
	"github.com/user/medianexus/internal/utils"
)

const (
	genresCacheKey = "genres:all"

	// 只对瞬时性错误重试，最多补两次
	retryBudget  = 2
	retryBackoff = 100 * time.Millisecond
)

// MediaService 对上层暴露目录和用户操作，透传仓库语义，
// 只附加缓存和瞬时错误重试。
type MediaService struct {
	repos      *repository.Repositories
	cacheTTL   time.Duration
	mediaCache *utils.EntityCache[*model.Media]
	bookCache  *utils.EntityCache[*model.Book]
	sf         singleflight.Group
}

// NewMediaService 创建服务
func NewMediaService(repos *repository.Repositories, cacheTTL time.Duration) *MediaService {
	if utils.Cache == nil {
		utils.InitCache()
	}
	return &MediaService{
		repos:      repos,
		cacheTTL:   cacheTTL,
		mediaCache: utils.NewEntityCache[*model.Media](1000, cacheTTL),
		bookCache:  utils.NewEntityCache[*model.Book](1000, cacheTTL),
	}
}

// withRetry 读操作的瞬时错误重试
func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; ; attempt++ {
		result, err = fn()
		if err == nil || !repository.IsTransient(err) || attempt >= retryBudget {
			return result, err
		}
		select {
		case <-ctx.Done():
			return result, err
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}
}

// GetFilteredMedia 按筛选条件分页获取条目
func (s *MediaService) GetFilteredMedia(ctx context.Context, f model.MediaFilter, pageSize, page int) ([]*model.MainMedia, error) {
	return withRetry(ctx, func() ([]*model.MainMedia, error) {
		return s.repos.Media.ListFiltered(ctx, f, pageSize, page)
	})
}

// CountFilteredMedia 统计符合筛选条件的条目总数
func (s *MediaService) CountFilteredMedia(ctx context.Context, f model.MediaFilter) (int, error) {
	return withRetry(ctx, func() (int, error) {
		return s.repos.Media.CountFiltered(ctx, f)
	})
}

// GetRecentMedia 无筛选的最新条目
func (s *MediaService) GetRecentMedia(ctx context.Context, pageSize, page int) ([]*model.MainMedia, error) {
	return withRetry(ctx, func() ([]*model.MainMedia, error) {
		return s.repos.Media.ListRecent(ctx, pageSize, page)
	})
}

// GetMedia 根据 ID 获取影视条目
func (s *MediaService) GetMedia(ctx context.Context, id int) (*model.Media, error) {
	if m, ok := s.mediaCache.Get(id); ok {
		return m, nil
	}
	m, err := withRetry(ctx, func() (*model.Media, error) {
		return s.repos.Media.GetMedia(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.mediaCache.Set(id, m)
	return m, nil
}

// GetBook 根据 ID 获取书籍条目
func (s *MediaService) GetBook(ctx context.Context, id int) (*model.Book, error) {
	if b, ok := s.bookCache.Get(id); ok {
		return b, nil
	}
	b, err := withRetry(ctx, func() (*model.Book, error) {
		return s.repos.Media.GetBook(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.bookCache.Set(id, b)
	return b, nil
}

// AddMedia 新增影视条目
func (s *MediaService) AddMedia(ctx context.Context, m *model.Media, genreIDs []int) error {
	if err := s.repos.Media.CreateMedia(ctx, m, genreIDs); err != nil {
		return err
	}
	s.mediaCache.Delete(m.ID)
	return nil
}

// AddBook 新增书籍条目
func (s *MediaService) AddBook(ctx context.Context, b *model.Book, genreIDs []int) error {
	if err := s.repos.Media.CreateBook(ctx, b, genreIDs); err != nil {
		return err
	}
	s.bookCache.Delete(b.ID)
	return nil
}

// Genres 获取全部题材，缓存 + singleflight 合并并发回源
func (s *MediaService) Genres(ctx context.Context) ([]*model.Genre, error) {
	if cached, ok := utils.CacheGet(genresCacheKey); ok {
		return cached.([]*model.Genre), nil
	}

	v, err, _ := s.sf.Do(genresCacheKey, func() (interface{}, error) {
		genres, err := withRetry(ctx, func() ([]*model.Genre, error) {
			return s.repos.Genre.ListAll(ctx)
		})
		if err != nil {
			return nil, err
		}
		utils.CacheSet(genresCacheKey, genres, s.cacheTTL)
		return genres, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*model.Genre), nil
}

// AddGenre 新增题材并失效缓存
func (s *MediaService) AddGenre(ctx context.Context, genre *model.Genre) error {
	if err := s.repos.Genre.Create(ctx, genre); err != nil {
		return err
	}
	utils.CacheDelete(genresCacheKey)
	return nil
}

// MediaGenres 获取条目关联的题材
func (s *MediaService) MediaGenres(ctx context.Context, mediaID int) ([]*model.Genre, error) {
	return withRetry(ctx, func() ([]*model.Genre, error) {
		return s.repos.Genre.ListByMedia(ctx, mediaID)
	})
}

// Register 注册用户
func (s *MediaService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	return s.repos.User.Register(ctx, username, password, email)
}

// CheckLogin 校验登录凭证
func (s *MediaService) CheckLogin(ctx context.Context, username, password string) (*model.User, error) {
	return s.repos.User.Verify(ctx, username, password)
}

// ChangeUserInfo 更新用户资料
func (s *MediaService) ChangeUserInfo(ctx context.Context, user *model.User, currentPassword, newPassword string) error {
	return s.repos.User.UpdateInfo(ctx, user, currentPassword, newPassword)
}

// UserMediaStatus 获取用户对条目的进度记录
func (s *MediaService) UserMediaStatus(ctx context.Context, userID, mediaID int) (*model.UserMediaStatus, error) {
	return withRetry(ctx, func() (*model.UserMediaStatus, error) {
		return s.repos.UserMedia.Get(ctx, userID, mediaID)
	})
}

// SetUserMediaStatus 写入用户对条目的进度记录
func (s *MediaService) SetUserMediaStatus(ctx context.Context, status *model.UserMediaStatus) error {
	return s.repos.UserMedia.Upsert(ctx, status)
}

// ProgressTotal 进度总量（书籍页数 / 影视集数）
func (s *MediaService) ProgressTotal(ctx context.Context, mainType model.MainType, id int) (int, error) {
	return withRetry(ctx, func() (int, error) {
		return s.repos.Media.ProgressTotal(ctx, mainType, id)
	})
}

// AddResponse 新增用户评价
func (s *MediaService) AddResponse(ctx context.Context, resp *model.UserResponse) error {
	return s.repos.Response.Add(ctx, resp)
}

// ResponsesByMedia 获取条目下的评价
func (s *MediaService) ResponsesByMedia(ctx context.Context, mediaID int) ([]*model.UserResponse, error) {
	return withRetry(ctx, func() ([]*model.UserResponse, error) {
		return s.repos.Response.ListByMedia(ctx, mediaID)
	})
}
