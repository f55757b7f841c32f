package model

import (
	"errors"
	"fmt"
	"time"
)

// MainType 条目主类型
type MainType string

const (
	TypeBook   MainType = "Book"
	TypeMedia  MainType = "Media"
	TypeGame   MainType = "Game"
	TypeComics MainType = "Comics"
)

// MediaStatus 条目发布状态
type MediaStatus string

const (
	StatusReleased  MediaStatus = "Released"
	StatusOngoing   MediaStatus = "Ongoing"
	StatusAnnounced MediaStatus = "Announced"
	StatusCanceled  MediaStatus = "Canceled"
	StatusDelayed   MediaStatus = "Delayed"
)

// PGRating 分级
type PGRating string

const (
	RatingG    PGRating = "G"
	RatingPG   PGRating = "PG"
	RatingPG13 PGRating = "PG-13"
	RatingR    PGRating = "R"
	RatingNC17 PGRating = "NC-17"
)

// SecondType 影视子类型
type SecondType string

const (
	SecondTypeMovie  SecondType = "Movie"
	SecondTypeSerial SecondType = "Serial"
)

// ErrInvalidSchedule 更新周期缺失或非正数，无法推算下一集时间
var ErrInvalidSchedule = errors.New("media: episode schedule requires a start date and a positive interval")

// MainMedia 条目基础信息（所有类型共享）
type MainMedia struct {
	ID           int         `json:"id" db:"id" gorm:"primaryKey"`
	MainType     MainType    `json:"main_type" db:"main_type" gorm:"index" validate:"required,oneof=Book Media Game Comics"`
	OriginalName string      `json:"original_name" db:"original_name" validate:"required"`
	EnglishName  string      `json:"english_name" db:"english_name"`
	ImageURL     string      `json:"image_url" db:"image_url"`
	Status       MediaStatus `json:"status" db:"status" gorm:"index" validate:"required,oneof=Released Ongoing Announced Canceled Delayed"`
	PGRating     PGRating    `json:"pg_rating" db:"pg_rating" validate:"omitempty,oneof=G PG PG-13 R NC-17"`
	Description  string      `json:"description" db:"description"`
	IsAdded      bool        `json:"is_added" db:"is_added"`
	AddedByID    *int        `json:"added_by_id" db:"added_by_id"`
	AddedAt      time.Time   `json:"added_at" db:"added_at" gorm:"index"`
}

// TableName 固定表名（gorm 默认会用 main_medium）
func (MainMedia) TableName() string {
	return "main_media"
}

// MediaDetails 影视子表（电影/剧集）
type MediaDetails struct {
	MediaID            int        `json:"media_id" db:"media_id" gorm:"primaryKey"`
	SecondType         SecondType `json:"second_type" db:"second_type" validate:"required,oneof=Movie Serial"`
	Studio             string     `json:"studio" db:"studio"`
	TotalEpisodes      *int       `json:"total_episodes" db:"total_episodes" validate:"omitempty,gte=0"`
	ReleasedEpisodes   int        `json:"released_episodes" db:"released_episodes" validate:"gte=0"`
	EpisodeDuration    *int       `json:"episode_duration" db:"episode_duration" validate:"omitempty,gte=0"` // 单集时长（分钟）
	NewEpisodeInterval *int       `json:"new_episode_interval" db:"new_episode_interval"`                    // 更新周期（秒）
	NextEpisodeAt      *time.Time `json:"next_episode_at" db:"next_episode_at"`
	StartDate          *time.Time `json:"start_date" db:"start_date"`
	EndDate            *time.Time `json:"end_date" db:"end_date"`
}

// TableName 固定表名
func (MediaDetails) TableName() string {
	return "media"
}

// BookDetails 书籍子表
type BookDetails struct {
	BookID      int        `json:"book_id" db:"book_id" gorm:"primaryKey"`
	Author      string     `json:"author" db:"author"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	Pages       int        `json:"pages" db:"pages" validate:"gte=0"`
	ISBN        string     `json:"isbn" db:"isbn"`
}

// TableName 固定表名
func (BookDetails) TableName() string {
	return "books"
}

// Media 影视条目（基础信息 + 子表）
type Media struct {
	MainMedia
	MediaDetails `gorm:"-"`
}

// Book 书籍条目（基础信息 + 子表）
type Book struct {
	MainMedia
	BookDetails `gorm:"-"`
}

// Validate 校验影视条目的不变量
func (m *Media) Validate() error {
	if err := Validate(&m.MainMedia); err != nil {
		return err
	}
	if err := Validate(&m.MediaDetails); err != nil {
		return err
	}
	if m.Status == StatusOngoing && m.StartDate == nil {
		return errors.New("media: ongoing media requires a start date")
	}
	if m.NewEpisodeInterval != nil && *m.NewEpisodeInterval <= 0 {
		return ErrInvalidSchedule
	}
	return nil
}

// Validate 校验书籍条目的不变量
func (b *Book) Validate() error {
	if err := Validate(&b.MainMedia); err != nil {
		return err
	}
	return Validate(&b.BookDetails)
}

// EpisodeString 返回 "已更新 / 总集数" 形式的进度文本
func (m *Media) EpisodeString() string {
	if m.TotalEpisodes == nil {
		return "?"
	}
	return fmt.Sprintf("%d / %d", m.ReleasedEpisodes, *m.TotalEpisodes)
}

// EpisodeDurationString 返回单集时长文本
func (m *Media) EpisodeDurationString() string {
	if m.EpisodeDuration == nil {
		return "?"
	}
	return fmt.Sprintf("%d min", *m.EpisodeDuration)
}

// StatusString 返回带日期后缀的状态文本
func (m *Media) StatusString() string {
	switch m.Status {
	case StatusAnnounced, StatusDelayed, StatusCanceled:
		return string(m.Status)
	case StatusOngoing:
		if m.StartDate == nil {
			return string(m.Status)
		}
		return string(m.Status) + " from " + m.StartDate.Format("2006-01-02")
	}
	if m.EndDate == nil {
		return string(m.Status)
	}
	return string(m.Status) + " " + m.EndDate.Format("2006-01-02")
}

// NextEpisodeDate 根据开播时间和更新周期推算下一集时间。
// 周期必须为正数，否则推进永远不会越过 now。
func (m *Media) NextEpisodeDate(now time.Time) (time.Time, error) {
	if m.StartDate == nil || m.NewEpisodeInterval == nil || *m.NewEpisodeInterval <= 0 {
		return time.Time{}, ErrInvalidSchedule
	}

	interval := time.Duration(*m.NewEpisodeInterval) * time.Second
	next := m.StartDate.Add(interval * time.Duration(m.ReleasedEpisodes))
	for !next.After(now) {
		next = next.Add(interval)
	}
	return next, nil
}
