package service

import "github.com/ithouph/Ejar-sub001/internal/model"

// ==================== 字段模型 ====================

// FieldKind 输入控件类型
type FieldKind string

const (
	FieldText         FieldKind = "text"
	FieldNumeric      FieldKind = "numeric"
	FieldSingleSelect FieldKind = "single_select"
	FieldMultiSelect  FieldKind = "multi_select"
)

// Option 选择项
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Field 单个输入字段
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []Option  `json:"options,omitempty"`
}

// FieldGroup 字段分组
type FieldGroup struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// ==================== 固定选项枚举 ====================

func enumOptions(labels ...string) []Option {
	opts := make([]Option, 0, len(labels))
	for _, l := range labels {
		opts = append(opts, Option{Key: l, Label: l})
	}
	return opts
}

var (
	conditionOptions = enumOptions("Excellent", "Good", "Fair", "Poor")
	fuelOptions      = enumOptions("Petrol", "Diesel", "Electric", "Hybrid")
	gearOptions      = enumOptions("Automatic", "Manual")
	furnishedOptions = enumOptions("Yes", "No", "Partially")
)

// ==================== 字段模板表 ====================

// 非房产分类的字段集是分类变体的总函数，直接查表，
// 不在渲染代码里写嵌套条件，规则集可独立审计/测试
var classFields = map[CategoryClass][]Field{
	ClassPhones: {
		{Key: "model", Label: "Model", Kind: FieldText},
		{Key: "battery_health", Label: "Battery Health", Kind: FieldText},
		{Key: "storage", Label: "Storage", Kind: FieldText},
		{Key: "color", Label: "Color", Kind: FieldText},
		{Key: "condition", Label: "Condition", Kind: FieldSingleSelect, Options: conditionOptions},
	},
	ClassLaptops: {
		{Key: "model", Label: "Model", Kind: FieldText},
		{Key: "processor", Label: "Processor", Kind: FieldText},
		{Key: "ram", Label: "RAM", Kind: FieldText},
		{Key: "storage", Label: "Storage", Kind: FieldText},
		{Key: "condition", Label: "Condition", Kind: FieldSingleSelect, Options: conditionOptions},
	},
	ClassElectronics: {
		{Key: "brand", Label: "Brand", Kind: FieldText},
		{Key: "warranty", Label: "Warranty", Kind: FieldText},
		{Key: "condition", Label: "Condition", Kind: FieldSingleSelect, Options: conditionOptions},
	},
	ClassVehicles: {
		{Key: "make_model", Label: "Make / Model", Kind: FieldText},
		{Key: "model_details", Label: "Model Details", Kind: FieldText},
		{Key: "year", Label: "Year", Kind: FieldNumeric},
		{Key: "mileage", Label: "Mileage", Kind: FieldText},
		{Key: "fuel_type", Label: "Fuel Type", Kind: FieldSingleSelect, Options: fuelOptions},
		{Key: "gear_type", Label: "Gear Type", Kind: FieldSingleSelect, Options: gearOptions},
		{Key: "condition", Label: "Condition", Kind: FieldSingleSelect, Options: conditionOptions},
	},
}

// 房产条款字段（按交易方式二选一）
var (
	rentTermFields = []Field{
		{Key: "monthly_rent", Label: "Monthly Rent", Kind: FieldNumeric},
		{Key: "deposit", Label: "Deposit", Kind: FieldNumeric},
		{Key: "min_contract_duration", Label: "Minimum Contract Duration", Kind: FieldText},
		{Key: "furnished", Label: "Furnished", Kind: FieldSingleSelect, Options: furnishedOptions},
	}
	saleTermFields = []Field{
		{Key: "sale_price", Label: "Sale Price", Kind: FieldNumeric},
		{Key: "ownership_type", Label: "Ownership Type", Kind: FieldText},
		{Key: "property_age", Label: "Property Age", Kind: FieldText},
		{Key: "payment_options", Label: "Payment Options", Kind: FieldText},
	}
)

// ==================== 模板引擎 ====================

// BuildSchema 按分类变体产出当前可见的字段分组
// class 由 Classify 判定一次后传入；listingType/propertyType 仅房产用
func BuildSchema(bundle *CatalogBundle, class CategoryClass,
	listingType *model.ListingType, propertyType *model.PropertyType) []FieldGroup {

	if fields, ok := classFields[class]; ok {
		return []FieldGroup{{Key: "specifications", Title: "Specifications", Fields: fields}}
	}

	if class == ClassProperty {
		return buildPropertyGroups(bundle, listingType, propertyType)
	}

	// ClassNone: 没有专属字段
	return nil
}

// buildPropertyGroups 组装房产分组
// 可见性规则：
//   - 交易方式/房产类型选择器恒定可见
//   - land 只给地块面积；其余给卧室/卫浴/面积
//   - 室内设施池非空即可见
//   - 周边设施仅在 出租 + (house|apartment) + 池非空 时可见
//   - 条款组按交易方式在租/售之间二选一
func buildPropertyGroups(bundle *CatalogBundle,
	listingType *model.ListingType, propertyType *model.PropertyType) []FieldGroup {

	groups := []FieldGroup{{
		Key:   "listing",
		Title: "Listing",
		Fields: []Field{
			{Key: "listing_type", Label: "Listing Type", Kind: FieldSingleSelect,
				Options: listingTypeOptions(bundle.ListingTypes)},
			{Key: "property_type", Label: "Property Type", Kind: FieldSingleSelect,
				Options: propertyTypeOptions(bundle.PropertyTypes)},
		},
	}}

	isLand := propertyType != nil && propertyType.Slug == model.PropertyTypeLand
	if isLand {
		groups = append(groups, FieldGroup{
			Key:   "details",
			Title: "Details",
			Fields: []Field{
				{Key: "land_size", Label: "Land Size", Kind: FieldNumeric},
			},
		})
	} else {
		groups = append(groups, FieldGroup{
			Key:   "details",
			Title: "Details",
			Fields: []Field{
				{Key: "bedrooms", Label: "Bedrooms", Kind: FieldNumeric},
				{Key: "bathrooms", Label: "Bathrooms", Kind: FieldNumeric},
				{Key: "size_sqft", Label: "Size (sq ft)", Kind: FieldNumeric},
			},
		})
	}

	var amenityFields []Field
	if len(bundle.IndoorAmenities) > 0 {
		amenityFields = append(amenityFields, Field{
			Key: "amenities", Label: "Amenities", Kind: FieldMultiSelect,
			Options: amenityOptions(bundle.IndoorAmenities, bundle.UsingFallback),
		})
	}
	if nearbyAmenitiesVisible(listingType, propertyType) && len(bundle.NearbyAmenities) > 0 {
		amenityFields = append(amenityFields, Field{
			Key: "nearby_amenities", Label: "Nearby", Kind: FieldMultiSelect,
			Options: amenityOptions(bundle.NearbyAmenities, bundle.UsingFallback),
		})
	}
	if len(amenityFields) > 0 {
		groups = append(groups, FieldGroup{Key: "amenities", Title: "Amenities", Fields: amenityFields})
	}

	if listingType != nil {
		if listingType.Slug == model.ListingTypeRent {
			groups = append(groups, FieldGroup{Key: "terms", Title: "Rental Terms", Fields: rentTermFields})
		} else {
			groups = append(groups, FieldGroup{Key: "terms", Title: "Sale Terms", Fields: saleTermFields})
		}
	}

	return groups
}

// nearbyAmenitiesVisible 周边设施可见性判定
func nearbyAmenitiesVisible(listingType *model.ListingType, propertyType *model.PropertyType) bool {
	if listingType == nil || propertyType == nil {
		return false
	}
	if listingType.Slug != model.ListingTypeRent {
		return false
	}
	return propertyType.Slug == model.PropertyTypeHouse || propertyType.Slug == model.PropertyTypeApartment
}

func listingTypeOptions(types []model.ListingType) []Option {
	opts := make([]Option, 0, len(types))
	for _, t := range types {
		opts = append(opts, Option{Key: t.Slug, Label: t.Name})
	}
	return opts
}

func propertyTypeOptions(types []model.PropertyType) []Option {
	opts := make([]Option, 0, len(types))
	for _, t := range types {
		opts = append(opts, Option{Key: t.Slug, Label: t.Name})
	}
	return opts
}

func amenityOptions(pool []model.Amenity, usingFallback bool) []Option {
	opts := make([]Option, 0, len(pool))
	for _, a := range pool {
		opts = append(opts, Option{Key: AmenityKey(a, usingFallback), Label: a.Name})
	}
	return opts
}
