package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Post 状态
const (
	PostStatusActive  = "active"
	PostStatusPending = "pending"
	PostStatusDeleted = "deleted"
)

// Post 帖子（发布成功后的最终形态）
type Post struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	// --- 基本信息 ---
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"default:0" json:"price"`
	CityID      string  `gorm:"type:uuid;index" json:"city_id"`
	Status      string  `gorm:"size:20;index;default:active" json:"status"`

	// --- 图片 (2~5 张公开 URL) ---
	Images pq.StringArray `gorm:"type:text[]" json:"images"`

	// --- 分类 ---
	// CategoryID 仅在分类 ID 为合法 UUID 时写入，兜底分类写 NULL
	// CategorySlug 与 ID 无关，始终保留，供分类判定等业务逻辑使用
	CategoryID   *string `gorm:"type:uuid;index" json:"category_id"`
	CategorySlug string  `gorm:"size:100;index" json:"category_slug"`

	// --- 规格 ---
	// 按当前分类变体组装出的键值对，只含激活字段
	Specifications datatypes.JSON `json:"specifications"`
}

// PostAmenity 帖子与配套设施的关联
// 只有非兜底模式下的 UUID 设施键才会写到这里；
// 规格 JSON 里的设施名称不受此表影响
type PostAmenity struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    string `gorm:"type:uuid;index;not null" json:"post_id"`
	AmenityID string `gorm:"type:uuid;index;not null" json:"amenity_id"`
}

func (PostAmenity) TableName() string { return "post_amenities" }
