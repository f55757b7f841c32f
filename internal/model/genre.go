package model

// Genre 题材
type Genre struct {
	ID   int    `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"unique;not null" validate:"required"`
}

// String 列表展示用
func (g Genre) String() string {
	return g.Name
}

// MediaGenre 条目与题材的关联表
type MediaGenre struct {
	ID      int `json:"id" db:"id" gorm:"primaryKey"`
	MediaID int `json:"media_id" db:"media_id" gorm:"uniqueIndex:idx_media_genre"`
	GenreID int `json:"genre_id" db:"genre_id" gorm:"uniqueIndex:idx_media_genre"`
}

// TableName 固定表名
func (MediaGenre) TableName() string {
	return "media_genres"
}
