package model

// ==================== 分类 ====================

// Category 类型标签，分类器按此字段做第一层判定
const (
	CategoryTypeElectronics = "electronics"
	CategoryTypeVehicles    = "vehicles"
	CategoryTypeProperty    = "property"
)

// Category 发帖分类
// 远程数据与内置兜底数据共用同一结构，上层逻辑不区分来源
type Category struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Slug      string `gorm:"size:100;index" json:"slug"`
	Type      string `gorm:"size:50;index" json:"type"` // electronics, vehicles, property, ...
	Icon      string `gorm:"size:100" json:"icon"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// ==================== 交易方式 ====================

// ListingType slug 取值
const (
	ListingTypeRent = "rent"
	ListingTypeSale = "sale"
)

// ListingType 房产交易方式（出租 / 出售）
// 决定房产表单激活租赁条款组还是出售条款组
type ListingType struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Slug      string `gorm:"size:100;index" json:"slug"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// ==================== 房产类型 ====================

// PropertyType slug 取值
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeVilla     = "villa"
	PropertyTypeLand      = "land"
)

// PropertyType 房产类型
// land 只激活地块面积字段，其余类型激活卧室/卫浴/面积
type PropertyType struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Slug      string `gorm:"size:100;index" json:"slug"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// ==================== 配套设施 ====================

// Amenity 分组标签
const (
	AmenityCategoryIndoor = "indoor"
	AmenityCategoryNearby = "nearby"
)

// Amenity 配套设施
// indoor 池对房产类目恒定可见；nearby 池仅在出租 + 住宅类房型时可见
type Amenity struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;index" json:"slug"`
	Icon     string `gorm:"size:100" json:"icon"`
	Category string `gorm:"size:20;index" json:"category"` // indoor | nearby
}

// ==================== 城市 ====================

// City 城市
// 城市没有兜底数据，列表为空只会导致提交时卡在城市校验
type City struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Region    string `gorm:"size:100" json:"region"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}
