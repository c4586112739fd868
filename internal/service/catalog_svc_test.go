package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCatalogDB(t *testing.T) *gorm.DB {
	db := brokenCatalogDB(t)

	if err := db.AutoMigrate(
		&model.Category{}, &model.ListingType{}, &model.PropertyType{},
		&model.Amenity{}, &model.City{},
	); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

// brokenCatalogDB 不建表，所有查询都报错，模拟后端整体不可达
func brokenCatalogDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	// :memory: 是每连接一个库，并发拉取会撞上空库，收紧到单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewListingTypeRepository(db),
		repository.NewPropertyTypeRepository(db),
		repository.NewAmenityRepository(db),
		repository.NewCityRepository(db),
	)
}

// seedRemoteCatalogs 写入一套带真实 UUID 的远程目录
func seedRemoteCatalogs(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []model.Category{
		{Name: "Mobile Phones", Slug: "phones", Type: model.CategoryTypeElectronics, SortOrder: 1},
		{Name: "Property", Slug: "property", Type: model.CategoryTypeProperty, SortOrder: 2},
	}
	for i := range categories {
		categories[i].ID = uuid.NewString()
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("写入分类失败: %v", err)
		}
	}

	listingTypes := []model.ListingType{
		{Name: "For Rent", Slug: model.ListingTypeRent, SortOrder: 1},
		{Name: "For Sale", Slug: model.ListingTypeSale, SortOrder: 2},
	}
	for i := range listingTypes {
		listingTypes[i].ID = uuid.NewString()
		if err := db.Create(&listingTypes[i]).Error; err != nil {
			t.Fatalf("写入交易方式失败: %v", err)
		}
	}

	propertyTypes := []model.PropertyType{
		{Name: "Apartment", Slug: model.PropertyTypeApartment, SortOrder: 1},
		{Name: "Land", Slug: model.PropertyTypeLand, SortOrder: 2},
	}
	for i := range propertyTypes {
		propertyTypes[i].ID = uuid.NewString()
		if err := db.Create(&propertyTypes[i]).Error; err != nil {
			t.Fatalf("写入房产类型失败: %v", err)
		}
	}

	amenities := []model.Amenity{
		{Name: "Air Conditioning", Slug: "air-conditioning", Category: model.AmenityCategoryIndoor},
		{Name: "Parking", Slug: "parking", Category: model.AmenityCategoryIndoor},
		{Name: "School", Slug: "school", Category: model.AmenityCategoryNearby},
	}
	for i := range amenities {
		amenities[i].ID = uuid.NewString()
		if err := db.Create(&amenities[i]).Error; err != nil {
			t.Fatalf("写入设施失败: %v", err)
		}
	}

	city := model.City{Name: "Riyadh"}
	city.ID = uuid.NewString()
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("写入城市失败: %v", err)
	}
}

// ==================== MergeCatalogs（纯函数） ====================

func remoteFixture() RemoteCatalogs {
	return RemoteCatalogs{
		Categories:    []model.Category{{Name: "Mobile Phones", Type: model.CategoryTypeElectronics}},
		ListingTypes:  []model.ListingType{{Name: "For Rent", Slug: model.ListingTypeRent}},
		PropertyTypes: []model.PropertyType{{Name: "Apartment", Slug: model.PropertyTypeApartment}},
		Amenities: []model.Amenity{
			{Name: "Parking", Category: model.AmenityCategoryIndoor},
			{Name: "School", Category: model.AmenityCategoryNearby},
		},
		Cities: []model.City{{Name: "Riyadh"}},
	}
}

func TestMergeCatalogs_AllUsable(t *testing.T) {
	bundle := MergeCatalogs(remoteFixture())

	if bundle.UsingFallback {
		t.Fatal("全部可用时不应降级")
	}
	if len(bundle.IndoorAmenities) != 1 || len(bundle.NearbyAmenities) != 1 {
		t.Fatalf("设施分池错误: indoor=%d nearby=%d",
			len(bundle.IndoorAmenities), len(bundle.NearbyAmenities))
	}
	if len(bundle.Cities) != 1 {
		t.Fatalf("城市应透传: got %d", len(bundle.Cities))
	}
}

// 四张目录表任意一张不可用（报错或为空）都必须整包降级
func TestMergeCatalogs_AnyUnusableDegradesAll(t *testing.T) {
	boom := errors.New("boom")

	mutations := []struct {
		name   string
		mutate func(r *RemoteCatalogs)
	}{
		{"分类报错", func(r *RemoteCatalogs) { r.CategoriesErr = boom }},
		{"分类为空", func(r *RemoteCatalogs) { r.Categories = nil }},
		{"交易方式报错", func(r *RemoteCatalogs) { r.ListingTypesErr = boom }},
		{"交易方式为空", func(r *RemoteCatalogs) { r.ListingTypes = nil }},
		{"房产类型报错", func(r *RemoteCatalogs) { r.PropertyTypesErr = boom }},
		{"房产类型为空", func(r *RemoteCatalogs) { r.PropertyTypes = nil }},
		{"设施报错", func(r *RemoteCatalogs) { r.AmenitiesErr = boom }},
		{"设施为空", func(r *RemoteCatalogs) { r.Amenities = nil }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			remote := remoteFixture()
			tc.mutate(&remote)

			bundle := MergeCatalogs(remote)

			if !bundle.UsingFallback {
				t.Fatal("应整包降级")
			}
			if len(bundle.Categories) != 5 {
				t.Fatalf("兜底分类应为固定 5 个: got %d", len(bundle.Categories))
			}
			if len(bundle.ListingTypes) != 2 || len(bundle.PropertyTypes) != 4 {
				t.Fatalf("兜底目录数量错误: listing=%d property=%d",
					len(bundle.ListingTypes), len(bundle.PropertyTypes))
			}
			if len(bundle.IndoorAmenities) == 0 || len(bundle.NearbyAmenities) == 0 {
				t.Fatal("兜底设施池不应为空")
			}
		})
	}
}

// 城市不参与降级判定；城市失败等同于空列表
func TestMergeCatalogs_CitiesIndependent(t *testing.T) {
	remote := remoteFixture()
	remote.CitiesErr = errors.New("boom")
	remote.Cities = nil

	bundle := MergeCatalogs(remote)

	if bundle.UsingFallback {
		t.Fatal("城市失败不应触发降级")
	}
	if bundle.Cities == nil || len(bundle.Cities) != 0 {
		t.Fatalf("城市失败应得到空列表: %v", bundle.Cities)
	}
}

// ==================== CatalogService（触库） ====================

func TestCatalogService_AllFetchesFail(t *testing.T) {
	svc := newCatalogService(brokenCatalogDB(t))

	bundle := svc.Refresh(context.Background())

	if !bundle.UsingFallback {
		t.Fatal("全部拉取失败应整包降级")
	}
	if len(bundle.Categories) != 5 {
		t.Fatalf("兜底分类应为固定 5 个: got %d", len(bundle.Categories))
	}
	if len(bundle.Cities) != 0 {
		t.Fatalf("城市无兜底，应为空: got %d", len(bundle.Cities))
	}
}

func TestCatalogService_EmptyTablesDegrade(t *testing.T) {
	svc := newCatalogService(setupCatalogDB(t))

	bundle := svc.Refresh(context.Background())

	if !bundle.UsingFallback {
		t.Fatal("空目录应视为不可用并降级")
	}
}

func TestCatalogService_RemoteData(t *testing.T) {
	db := setupCatalogDB(t)
	seedRemoteCatalogs(t, db)
	svc := newCatalogService(db)

	bundle := svc.Refresh(context.Background())

	if bundle.UsingFallback {
		t.Fatal("数据完整时不应降级")
	}
	if len(bundle.Categories) != 2 {
		t.Fatalf("分类数量错误: got %d", len(bundle.Categories))
	}
	if len(bundle.IndoorAmenities) != 2 || len(bundle.NearbyAmenities) != 1 {
		t.Fatalf("设施分池错误: indoor=%d nearby=%d",
			len(bundle.IndoorAmenities), len(bundle.NearbyAmenities))
	}
	if len(bundle.Cities) != 1 {
		t.Fatalf("城市数量错误: got %d", len(bundle.Cities))
	}
}

func TestCatalogService_BundleCached(t *testing.T) {
	db := setupCatalogDB(t)
	seedRemoteCatalogs(t, db)
	svc := newCatalogService(db)

	first := svc.Refresh(context.Background())
	second := svc.LoadBundle(context.Background())

	if first != second {
		t.Fatal("TTL 内应命中同一份缓存目录包")
	}
}
