package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestEpisodeString(t *testing.T) {
	m := &Media{MediaDetails: MediaDetails{ReleasedEpisodes: 3, TotalEpisodes: intPtr(12)}}
	assert.Equal(t, "3 / 12", m.EpisodeString())

	m.TotalEpisodes = nil
	assert.Equal(t, "?", m.EpisodeString())
}

func TestEpisodeDurationString(t *testing.T) {
	m := &Media{MediaDetails: MediaDetails{EpisodeDuration: intPtr(24)}}
	assert.Equal(t, "24 min", m.EpisodeDurationString())

	m.EpisodeDuration = nil
	assert.Equal(t, "?", m.EpisodeDurationString())
}

func TestStatusString(t *testing.T) {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC)

	m := &Media{MainMedia: MainMedia{Status: StatusAnnounced}}
	assert.Equal(t, "Announced", m.StatusString())

	m = &Media{
		MainMedia:    MainMedia{Status: StatusOngoing},
		MediaDetails: MediaDetails{StartDate: &start},
	}
	assert.Equal(t, "Ongoing from 2024-04-01", m.StatusString())

	m = &Media{
		MainMedia:    MainMedia{Status: StatusReleased},
		MediaDetails: MediaDetails{EndDate: &end},
	}
	assert.Equal(t, "Released 2024-06-24", m.StatusString())

	m = &Media{MainMedia: MainMedia{Status: StatusReleased}}
	assert.Equal(t, "Released", m.StatusString())
}

func TestNextEpisodeDate(t *testing.T) {
	start := time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC)
	week := 7 * 24 * 3600
	m := &Media{
		MediaDetails: MediaDetails{
			StartDate:          &start,
			NewEpisodeInterval: intPtr(week),
			ReleasedEpisodes:   3,
		},
	}

	// 开播 + 3 集后是 4 月 22 日，推进到 now 之后
	now := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	next, err := m.NextEpisodeDate(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 18, 0, 0, 0, time.UTC), next)
	assert.True(t, next.After(now))
}

func TestNextEpisodeDateInvalidSchedule(t *testing.T) {
	start := time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC)
	now := time.Now()

	// 周期为零或负数不能进入推进循环
	m := &Media{MediaDetails: MediaDetails{StartDate: &start, NewEpisodeInterval: intPtr(0)}}
	_, err := m.NextEpisodeDate(now)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	m.NewEpisodeInterval = intPtr(-3600)
	_, err = m.NextEpisodeDate(now)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// 没有开播日期同样报错
	m = &Media{MediaDetails: MediaDetails{NewEpisodeInterval: intPtr(3600)}}
	_, err = m.NextEpisodeDate(now)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestMediaValidate(t *testing.T) {
	valid := &Media{
		MainMedia: MainMedia{
			MainType:     TypeMedia,
			OriginalName: "Серіал",
			Status:       StatusReleased,
		},
		MediaDetails: MediaDetails{SecondType: SecondTypeSerial},
	}
	assert.NoError(t, valid.Validate())

	negative := &Media{
		MainMedia: MainMedia{
			MainType:     TypeMedia,
			OriginalName: "Серіал",
			Status:       StatusReleased,
		},
		MediaDetails: MediaDetails{SecondType: SecondTypeSerial, ReleasedEpisodes: -1},
	}
	assert.Error(t, negative.Validate())

	ongoing := &Media{
		MainMedia: MainMedia{
			MainType:     TypeMedia,
			OriginalName: "Серіал",
			Status:       StatusOngoing,
		},
		MediaDetails: MediaDetails{SecondType: SecondTypeSerial},
	}
	assert.Error(t, ongoing.Validate(), "ongoing 必须有开播日期")

	ongoing.StartDate = timePtr(time.Now())
	assert.NoError(t, ongoing.Validate())
}

func TestFilterIsEmpty(t *testing.T) {
	assert.True(t, MediaFilter{UserID: 7}.IsEmpty())
	assert.False(t, MediaFilter{Types: []MainType{TypeBook}}.IsEmpty())
	assert.False(t, MediaFilter{ListStatuses: []ListStatus{ListCompleted}}.IsEmpty())
}

func TestUserHelpers(t *testing.T) {
	u := &User{}
	assert.Equal(t, RoleGuest, u.EffectiveRole())
	u.Role = RoleAdmin
	assert.Equal(t, RoleAdmin, u.EffectiveRole())

	now := time.Now()
	assert.False(t, u.IsBannedAt(now))

	u.IsBanned = true
	assert.True(t, u.IsBannedAt(now), "没有截止日期按永久封禁处理")

	u.BanEndsAt = timePtr(now.Add(time.Hour))
	assert.True(t, u.IsBannedAt(now))
	u.BanEndsAt = timePtr(now.Add(-time.Hour))
	assert.False(t, u.IsBannedAt(now))
}
