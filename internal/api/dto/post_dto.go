package dto

import "time"

// PostResp 帖子响应
type PostResp struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	CityID         string            `json:"city_id"`
	Status         string            `json:"status"`
	Images         []string          `json:"images"`
	CategoryID     *string           `json:"category_id"`
	CategorySlug   string            `json:"category_slug"`
	Specifications map[string]string `json:"specifications"`
	CreatedAt      time.Time         `json:"created_at"`
}

// PostListResp 帖子列表响应
type PostListResp struct {
	Code     int        `json:"code"`
	Message  string     `json:"message"`
	Data     []PostResp `json:"data"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
