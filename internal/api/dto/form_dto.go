package dto

// ==================== 请求 DTO ====================

// UpdateFormReq 表单字段更新请求
// 全部使用指针：nil 表示"本次不改这个字段"，区别于清空
// 字段是所有分类变体的并集，激活哪些由当前分类决定，
// 非激活字段即使有值也不会进入最终提交
type UpdateFormReq struct {
	// --- 顶层字段 ---
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CityID      *string  `json:"city_id"`

	// --- 选择器 ---
	CategoryID   *string `json:"category_id"`
	ListingType  *string `json:"listing_type"`  // slug: rent | sale
	PropertyType *string `json:"property_type"` // slug: apartment | house | villa | land

	// --- 手机 / 笔记本 / 泛电子 ---
	Model         *string `json:"model"`
	BatteryHealth *string `json:"battery_health"`
	Storage       *string `json:"storage"`
	Color         *string `json:"color"`
	Condition     *string `json:"condition"`
	Processor     *string `json:"processor"`
	RAM           *string `json:"ram"`
	Brand         *string `json:"brand"`
	Warranty      *string `json:"warranty"`

	// --- 车辆 ---
	MakeModel    *string `json:"make_model"`
	ModelDetails *string `json:"model_details"`
	Year         *string `json:"year"`
	Mileage      *string `json:"mileage"`
	FuelType     *string `json:"fuel_type"`
	GearType     *string `json:"gear_type"`

	// --- 房产明细 ---
	Bedrooms  *string `json:"bedrooms"`
	Bathrooms *string `json:"bathrooms"`
	SizeSqft  *string `json:"size_sqft"`
	LandSize  *string `json:"land_size"`

	// --- 租赁条款 ---
	MonthlyRent         *string `json:"monthly_rent"`
	Deposit             *string `json:"deposit"`
	MinContractDuration *string `json:"min_contract_duration"`
	Furnished           *string `json:"furnished"` // Yes | No | Partially

	// --- 出售条款 ---
	SalePrice      *string `json:"sale_price"`
	OwnershipType  *string `json:"ownership_type"`
	PropertyAge    *string `json:"property_age"`
	PaymentOptions *string `json:"payment_options"`

	// --- 设施选择（键集合整体替换） ---
	SelectedAmenities       *[]string `json:"selected_amenities"`
	SelectedNearbyAmenities *[]string `json:"selected_nearby_amenities"`
}

// AddImagesReq 追加图片请求（已上传完的公开 URL）
type AddImagesReq struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

// ==================== 响应 DTO ====================

// FormSessionResp 表单会话快照
type FormSessionResp struct {
	SessionID     string   `json:"session_id"`
	UsingFallback bool     `json:"using_fallback"`
	CategoryID    string   `json:"category_id,omitempty"`
	CategorySlug  string   `json:"category_slug,omitempty"`
	ListingType   string   `json:"listing_type,omitempty"`
	PropertyType  string   `json:"property_type,omitempty"`
	Images        []string `json:"images"`
}
