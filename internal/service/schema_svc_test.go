package service

import (
	"testing"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

// ==================== 测试辅助 ====================

func fallbackBundle() *CatalogBundle {
	return &CatalogBundle{
		Categories:      FallbackCategories(),
		ListingTypes:    FallbackListingTypes(),
		PropertyTypes:   FallbackPropertyTypes(),
		IndoorAmenities: FallbackIndoorAmenities(),
		NearbyAmenities: FallbackNearbyAmenities(),
		Cities:          []model.City{},
		UsingFallback:   true,
	}
}

func findListingType(bundle *CatalogBundle, slug string) *model.ListingType {
	for i := range bundle.ListingTypes {
		if bundle.ListingTypes[i].Slug == slug {
			return &bundle.ListingTypes[i]
		}
	}
	return nil
}

func findPropertyType(bundle *CatalogBundle, slug string) *model.PropertyType {
	for i := range bundle.PropertyTypes {
		if bundle.PropertyTypes[i].Slug == slug {
			return &bundle.PropertyTypes[i]
		}
	}
	return nil
}

func schemaFieldKeys(groups []FieldGroup) map[string]bool {
	keys := make(map[string]bool)
	for _, g := range groups {
		for _, f := range g.Fields {
			keys[f.Key] = true
		}
	}
	return keys
}

// ==================== 非房产模板 ====================

func TestBuildSchema_Phones(t *testing.T) {
	bundle := fallbackBundle()
	groups := BuildSchema(bundle, ClassPhones, nil, nil)

	if len(groups) != 1 {
		t.Fatalf("手机模板应只有一个分组: got %d", len(groups))
	}

	keys := schemaFieldKeys(groups)
	for _, want := range []string{"model", "battery_health", "storage", "color", "condition"} {
		if !keys[want] {
			t.Fatalf("手机模板缺少字段 %s", want)
		}
	}
	if len(keys) != 5 {
		t.Fatalf("手机模板字段数量错误: got %d", len(keys))
	}
}

func TestBuildSchema_VehiclesOptions(t *testing.T) {
	groups := BuildSchema(fallbackBundle(), ClassVehicles, nil, nil)
	keys := schemaFieldKeys(groups)

	for _, want := range []string{"make_model", "model_details", "year", "mileage", "fuel_type", "gear_type", "condition"} {
		if !keys[want] {
			t.Fatalf("车辆模板缺少字段 %s", want)
		}
	}

	// 枚举选项固定
	for _, f := range groups[0].Fields {
		switch f.Key {
		case "fuel_type":
			if len(f.Options) != 4 {
				t.Fatalf("燃料类型选项应为 4 个: got %d", len(f.Options))
			}
		case "gear_type":
			if len(f.Options) != 2 {
				t.Fatalf("变速箱选项应为 2 个: got %d", len(f.Options))
			}
		}
	}
}

func TestBuildSchema_None(t *testing.T) {
	if groups := BuildSchema(fallbackBundle(), ClassNone, nil, nil); groups != nil {
		t.Fatalf("无变体分类不应有专属字段: got %v", groups)
	}
}

// ==================== 房产模板 ====================

// 场景: 出租 + 地块 -> 只有地块面积，租赁条款，无卧室/卫浴/面积，无出售字段
func TestBuildSchema_PropertyRentLand(t *testing.T) {
	bundle := fallbackBundle()
	rent := findListingType(bundle, model.ListingTypeRent)
	land := findPropertyType(bundle, model.PropertyTypeLand)

	keys := schemaFieldKeys(BuildSchema(bundle, ClassProperty, rent, land))

	for _, want := range []string{"land_size", "monthly_rent", "deposit", "min_contract_duration", "furnished"} {
		if !keys[want] {
			t.Fatalf("出租地块模板缺少字段 %s", want)
		}
	}
	for _, absent := range []string{"bedrooms", "bathrooms", "size_sqft",
		"sale_price", "ownership_type", "property_age", "payment_options"} {
		if keys[absent] {
			t.Fatalf("出租地块模板不应包含字段 %s", absent)
		}
	}
}

func TestBuildSchema_PropertySaleApartment(t *testing.T) {
	bundle := fallbackBundle()
	sale := findListingType(bundle, model.ListingTypeSale)
	apartment := findPropertyType(bundle, model.PropertyTypeApartment)

	keys := schemaFieldKeys(BuildSchema(bundle, ClassProperty, sale, apartment))

	for _, want := range []string{"bedrooms", "bathrooms", "size_sqft",
		"sale_price", "ownership_type", "property_age", "payment_options"} {
		if !keys[want] {
			t.Fatalf("出售公寓模板缺少字段 %s", want)
		}
	}
	for _, absent := range []string{"land_size", "monthly_rent", "deposit", "furnished"} {
		if keys[absent] {
			t.Fatalf("出售公寓模板不应包含字段 %s", absent)
		}
	}
}

// 周边设施可见性矩阵：仅 出租 + (house|apartment) 可见
func TestBuildSchema_NearbyAmenitiesGate(t *testing.T) {
	bundle := fallbackBundle()

	cases := []struct {
		listing  string
		property string
		want     bool
	}{
		{model.ListingTypeRent, model.PropertyTypeApartment, true},
		{model.ListingTypeRent, model.PropertyTypeHouse, true},
		{model.ListingTypeRent, model.PropertyTypeVilla, false},
		{model.ListingTypeRent, model.PropertyTypeLand, false},
		{model.ListingTypeSale, model.PropertyTypeApartment, false},
		{model.ListingTypeSale, model.PropertyTypeHouse, false},
	}

	for _, tc := range cases {
		lt := findListingType(bundle, tc.listing)
		pt := findPropertyType(bundle, tc.property)
		keys := schemaFieldKeys(BuildSchema(bundle, ClassProperty, lt, pt))

		if keys["nearby_amenities"] != tc.want {
			t.Fatalf("周边设施可见性错误 (%s/%s): got %v, want %v",
				tc.listing, tc.property, keys["nearby_amenities"], tc.want)
		}
		// 室内设施池非空时恒定可见
		if !keys["amenities"] {
			t.Fatalf("室内设施应恒定可见 (%s/%s)", tc.listing, tc.property)
		}
	}
}

// 设施池为空时对应多选整体隐藏
func TestBuildSchema_EmptyAmenityPools(t *testing.T) {
	bundle := fallbackBundle()
	bundle.IndoorAmenities = nil
	bundle.NearbyAmenities = nil

	rent := findListingType(bundle, model.ListingTypeRent)
	apartment := findPropertyType(bundle, model.PropertyTypeApartment)
	keys := schemaFieldKeys(BuildSchema(bundle, ClassProperty, rent, apartment))

	if keys["amenities"] || keys["nearby_amenities"] {
		t.Fatal("设施池为空时不应出现设施多选")
	}
}

// 交易方式/房产类型选择器恒定可见
func TestBuildSchema_PropertySelectorsAlwaysPresent(t *testing.T) {
	bundle := fallbackBundle()
	keys := schemaFieldKeys(BuildSchema(bundle, ClassProperty, nil, nil))

	if !keys["listing_type"] || !keys["property_type"] {
		t.Fatal("房产模板必须包含交易方式与房产类型选择器")
	}
	// 未选交易方式时不出条款组
	if keys["monthly_rent"] || keys["sale_price"] {
		t.Fatal("未选交易方式时不应出现条款字段")
	}
}
