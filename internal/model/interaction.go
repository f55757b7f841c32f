package model

import (
	"fmt"
	"time"
)

// ResponseType 评价倾向
type ResponseType string

const (
	ResponseNeutral  ResponseType = "Neutral"
	ResponseNegative ResponseType = "Negative"
	ResponsePositive ResponseType = "Positive"
)

// ListStatus 条目在用户列表中的状态
type ListStatus string

const (
	ListInProcess ListStatus = "InProcess"
	ListCompleted ListStatus = "Completed"
	ListPlanned   ListStatus = "Planned"
	ListDropped   ListStatus = "Dropped"
)

// UserResponse 用户对条目的文字评价，查询时带出昵称和头像
type UserResponse struct {
	ID        int          `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int          `json:"user_id" db:"user_id" gorm:"index" validate:"required"`
	MediaID   int          `json:"media_id" db:"media_id" gorm:"index" validate:"required"`
	Text      string       `json:"text" db:"text" validate:"required"`
	Sentiment ResponseType `json:"sentiment" db:"sentiment" validate:"required,oneof=Neutral Negative Positive"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`

	// 关联查询时填充，不落库
	UserNickname string `json:"user_nickname,omitempty" db:"user_nickname" gorm:"->;-:migration"`
	UserImageURL string `json:"user_image_url,omitempty" db:"user_image_url" gorm:"->;-:migration"`
}

// UserMediaStatus 用户与条目的进度记录，(user_id, media_id) 唯一
type UserMediaStatus struct {
	ID        int        `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int        `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_media" validate:"required"`
	MediaID   int        `json:"media_id" db:"media_id" gorm:"uniqueIndex:idx_user_media" validate:"required"`
	Status    ListStatus `json:"status" db:"status" validate:"required,oneof=InProcess Completed Planned Dropped"`
	Progress  int        `json:"progress" db:"progress" validate:"gte=0"` // 看到的集数或读到的页码
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// String 调试展示用
func (s UserMediaStatus) String() string {
	return fmt.Sprintf("MediaID: %d, UserID: %d, Status: %s, Progress: %d", s.MediaID, s.UserID, s.Status, s.Progress)
}
