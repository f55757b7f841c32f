package service

import (
	"context"
	"errors"
	"time"

	"github.com/user/medianexus/internal/logger"
	"github.com/user/medianexus/internal/model"
	"github.com/user/medianexus/internal/repository"
)

// EpisodeRefreshService 定时刷新连载剧集的下一集时间
type EpisodeRefreshService struct {
	repos    *repository.Repositories
	interval time.Duration
	stop     chan struct{}
}

// NewEpisodeRefreshService 创建刷新服务
func NewEpisodeRefreshService(repos *repository.Repositories, interval time.Duration) *EpisodeRefreshService {
	return &EpisodeRefreshService{
		repos:    repos,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start 启动定时刷新任务
func (s *EpisodeRefreshService) Start() {
	ticker := time.NewTicker(s.interval)

	// 启动时先运行一次
	go s.runRefresh()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runRefresh()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop 停止刷新任务
func (s *EpisodeRefreshService) Stop() {
	close(s.stop)
}

func (s *EpisodeRefreshService) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	updated, skipped, err := s.RefreshOnce(ctx, time.Now())
	if err != nil {
		logger.Get().WithError(err).Error("刷新下一集时间失败")
		return
	}
	logger.Get().WithFields(map[string]interface{}{
		"updated": updated,
		"skipped": skipped,
	}).Info("已刷新连载剧集的下一集时间")
}

// RefreshOnce 执行一轮刷新。排期数据不合法的条目记日志后跳过，
// 不会让整轮任务失败。
func (s *EpisodeRefreshService) RefreshOnce(ctx context.Context, now time.Time) (updated, skipped int, err error) {
	serials, err := s.repos.Media.ListOngoingSerials(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, m := range serials {
		next, calcErr := m.NextEpisodeDate(now)
		if calcErr != nil {
			if errors.Is(calcErr, model.ErrInvalidSchedule) {
				logger.Get().WithField("media_id", m.ID).Warn("排期数据不合法，跳过")
				skipped++
				continue
			}
			return updated, skipped, calcErr
		}
		if err := s.repos.Media.SetNextEpisode(ctx, m.ID, next); err != nil {
			return updated, skipped, err
		}
		updated++
	}
	return updated, skipped, nil
}
