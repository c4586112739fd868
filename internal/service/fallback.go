package service

import "github.com/ithouph/Ejar-sub001/internal/model"

// ==================== 内置兜底目录 ====================
//
// 任意一张参考数据表不可用时，整个表单统一切换到这套内置数据。
// 注意：兜底数据的 ID 是人类可读的 slug 而不是后端 UUID，
// 所以提交时 category_id 会被置 NULL，设施关联也不会写库。

func fallbackCategory(id, name, catType string, sort int) model.Category {
	c := model.Category{Name: name, Slug: id, Type: catType, SortOrder: sort}
	c.ID = id
	return c
}

// FallbackCategories 内置分类（固定 5 个）
func FallbackCategories() []model.Category {
	return []model.Category{
		fallbackCategory("phones", "Mobile Phones", model.CategoryTypeElectronics, 1),
		fallbackCategory("laptops", "Laptops", model.CategoryTypeElectronics, 2),
		fallbackCategory("electronics", "Electronics", model.CategoryTypeElectronics, 3),
		fallbackCategory("vehicles", "Vehicles", model.CategoryTypeVehicles, 4),
		fallbackCategory("property", "Property", model.CategoryTypeProperty, 5),
	}
}

// FallbackListingTypes 内置交易方式
func FallbackListingTypes() []model.ListingType {
	rent := model.ListingType{Name: "For Rent", Slug: model.ListingTypeRent, SortOrder: 1}
	rent.ID = "rent"
	sale := model.ListingType{Name: "For Sale", Slug: model.ListingTypeSale, SortOrder: 2}
	sale.ID = "sale"
	return []model.ListingType{rent, sale}
}

// FallbackPropertyTypes 内置房产类型
func FallbackPropertyTypes() []model.PropertyType {
	slugs := []struct {
		slug string
		name string
	}{
		{model.PropertyTypeApartment, "Apartment"},
		{model.PropertyTypeHouse, "House"},
		{model.PropertyTypeVilla, "Villa"},
		{model.PropertyTypeLand, "Land"},
	}

	types := make([]model.PropertyType, 0, len(slugs))
	for i, s := range slugs {
		pt := model.PropertyType{Name: s.name, Slug: s.slug, SortOrder: i + 1}
		pt.ID = s.slug
		types = append(types, pt)
	}
	return types
}

func fallbackAmenity(slug, name, category string) model.Amenity {
	a := model.Amenity{Name: name, Slug: slug, Category: category}
	a.ID = slug
	return a
}

// FallbackIndoorAmenities 内置室内设施池
func FallbackIndoorAmenities() []model.Amenity {
	return []model.Amenity{
		fallbackAmenity("air-conditioning", "Air Conditioning", model.AmenityCategoryIndoor),
		fallbackAmenity("heating", "Heating", model.AmenityCategoryIndoor),
		fallbackAmenity("balcony", "Balcony", model.AmenityCategoryIndoor),
		fallbackAmenity("parking", "Parking", model.AmenityCategoryIndoor),
		fallbackAmenity("elevator", "Elevator", model.AmenityCategoryIndoor),
		fallbackAmenity("equipped-kitchen", "Equipped Kitchen", model.AmenityCategoryIndoor),
		fallbackAmenity("washing-machine", "Washing Machine", model.AmenityCategoryIndoor),
		fallbackAmenity("internet", "Internet / WiFi", model.AmenityCategoryIndoor),
	}
}

// FallbackNearbyAmenities 内置周边设施池
func FallbackNearbyAmenities() []model.Amenity {
	return []model.Amenity{
		fallbackAmenity("school", "School", model.AmenityCategoryNearby),
		fallbackAmenity("hospital", "Hospital", model.AmenityCategoryNearby),
		fallbackAmenity("supermarket", "Supermarket", model.AmenityCategoryNearby),
		fallbackAmenity("public-transport", "Public Transport", model.AmenityCategoryNearby),
		fallbackAmenity("park", "Park", model.AmenityCategoryNearby),
		fallbackAmenity("mosque", "Mosque", model.AmenityCategoryNearby),
		fallbackAmenity("gym", "Gym", model.AmenityCategoryNearby),
		fallbackAmenity("pharmacy", "Pharmacy", model.AmenityCategoryNearby),
	}
}
