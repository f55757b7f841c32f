package model

// MediaFilter 目录筛选条件，空切片表示该维度不过滤
type MediaFilter struct {
	Types        []MainType    `json:"types"`
	GenreIDs     []int         `json:"genre_ids"`
	Statuses     []MediaStatus `json:"statuses"`      // 条目发布状态
	ListStatuses []ListStatus  `json:"list_statuses"` // 用户列表状态，按 UserID 过滤
	UserID       int           `json:"user_id"`
}

// IsEmpty 是否完全没有筛选条件
func (f MediaFilter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.GenreIDs) == 0 &&
		len(f.Statuses) == 0 && len(f.ListStatuses) == 0
}
