package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/repository"
	"github.com/ithouph/Ejar-sub001/pkg/utils"
)

// ==================== 数据结构 ====================

// CatalogBundle 一次表单会话用到的全部参考数据
// UsingFallback 是整表单级别的单一开关：四张目录表只要有一张不可用，
// 四张全部换成内置数据，保证 slug/type 与设施/房型之间内部一致
type CatalogBundle struct {
	Categories    []model.Category     `json:"categories"`
	ListingTypes  []model.ListingType  `json:"listing_types"`
	PropertyTypes []model.PropertyType `json:"property_types"`

	// 设施按 category 标签拆成两个池
	IndoorAmenities []model.Amenity `json:"indoor_amenities"`
	NearbyAmenities []model.Amenity `json:"nearby_amenities"`

	// 城市没有兜底，空列表合法（只是提交会卡在城市校验）
	Cities []model.City `json:"cities"`

	UsingFallback bool `json:"using_fallback"`
}

// RemoteCatalogs 五路并发拉取的原始结果
// 每一路的错误单独记录，拉取层不做任何降级决策
type RemoteCatalogs struct {
	Categories       []model.Category
	CategoriesErr    error
	ListingTypes     []model.ListingType
	ListingTypesErr  error
	PropertyTypes    []model.PropertyType
	PropertyTypesErr error
	Amenities        []model.Amenity
	AmenitiesErr     error
	Cities           []model.City
	CitiesErr        error
}

// ==================== 降级合并（纯函数） ====================

// MergeCatalogs 把远程拉取结果合并成目录包
// 降级策略是"全有或全无"：{分类, 交易方式, 房产类型, 设施} 任意一项
// 出错或为空，四项全部替换为内置数据。城市不参与降级判定。
// 与拉取传输层完全解耦，便于单独测试。
func MergeCatalogs(remote RemoteCatalogs) *CatalogBundle {
	degraded := remote.CategoriesErr != nil || len(remote.Categories) == 0 ||
		remote.ListingTypesErr != nil || len(remote.ListingTypes) == 0 ||
		remote.PropertyTypesErr != nil || len(remote.PropertyTypes) == 0 ||
		remote.AmenitiesErr != nil || len(remote.Amenities) == 0

	bundle := &CatalogBundle{UsingFallback: degraded}

	if degraded {
		bundle.Categories = FallbackCategories()
		bundle.ListingTypes = FallbackListingTypes()
		bundle.PropertyTypes = FallbackPropertyTypes()
		bundle.IndoorAmenities = FallbackIndoorAmenities()
		bundle.NearbyAmenities = FallbackNearbyAmenities()
	} else {
		bundle.Categories = remote.Categories
		bundle.ListingTypes = remote.ListingTypes
		bundle.PropertyTypes = remote.PropertyTypes
		bundle.IndoorAmenities, bundle.NearbyAmenities = partitionAmenities(remote.Amenities)
	}

	// 城市拉取失败等同于空列表
	if remote.CitiesErr == nil {
		bundle.Cities = remote.Cities
	}
	if bundle.Cities == nil {
		bundle.Cities = []model.City{}
	}

	return bundle
}

// partitionAmenities 按 category 标签把设施拆成 indoor/nearby 两个池
// 标签未知的设施归入 indoor（房产表单恒定可见的那个池）
func partitionAmenities(amenities []model.Amenity) (indoor, nearby []model.Amenity) {
	for _, a := range amenities {
		if a.Category == model.AmenityCategoryNearby {
			nearby = append(nearby, a)
		} else {
			indoor = append(indoor, a)
		}
	}
	return indoor, nearby
}

// ==================== 目录服务 ====================

const (
	catalogCacheKey = "catalog_bundle"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService 参考数据加载服务
type CatalogService struct {
	categoryRepo     repository.CategoryRepository
	listingTypeRepo  repository.ListingTypeRepository
	propertyTypeRepo repository.PropertyTypeRepository
	amenityRepo      repository.AmenityRepository
	cityRepo         repository.CityRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	listingTypeRepo repository.ListingTypeRepository,
	propertyTypeRepo repository.PropertyTypeRepository,
	amenityRepo repository.AmenityRepository,
	cityRepo repository.CityRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo:     categoryRepo,
		listingTypeRepo:  listingTypeRepo,
		propertyTypeRepo: propertyTypeRepo,
		amenityRepo:      amenityRepo,
		cityRepo:         cityRepo,
	}
}

// LoadBundle 加载目录包（带进程级缓存）
// 无论几路拉取失败都能返回可用的目录包，绝不把表单卡在加载态
func (s *CatalogService) LoadBundle(ctx context.Context) *CatalogBundle {
	if cached, ok := utils.GetCache(catalogCacheKey); ok {
		return cached.(*CatalogBundle)
	}

	bundle := MergeCatalogs(s.fetchRemote(ctx))
	if bundle.UsingFallback {
		log.Println("[Catalog] 参考数据不完整，整表单降级到内置目录")
	}

	utils.SetCache(catalogCacheKey, bundle, catalogCacheTTL)
	return bundle
}

// Refresh 强制刷新缓存（定时任务用）
func (s *CatalogService) Refresh(ctx context.Context) *CatalogBundle {
	utils.DeleteCache(catalogCacheKey)
	return s.LoadBundle(ctx)
}

// fetchRemote 五路并发拉取，单路失败只记录，不影响其他几路
func (s *CatalogService) fetchRemote(ctx context.Context) RemoteCatalogs {
	var remote RemoteCatalogs
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		remote.Categories, remote.CategoriesErr = s.categoryRepo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		remote.ListingTypes, remote.ListingTypesErr = s.listingTypeRepo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		remote.PropertyTypes, remote.PropertyTypesErr = s.propertyTypeRepo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		remote.Amenities, remote.AmenitiesErr = s.amenityRepo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		remote.Cities, remote.CitiesErr = s.cityRepo.GetAll(ctx)
	}()
	wg.Wait()

	for _, e := range []error{
		remote.CategoriesErr, remote.ListingTypesErr,
		remote.PropertyTypesErr, remote.AmenitiesErr, remote.CitiesErr,
	} {
		if e != nil {
			log.Printf("[Catalog] 参考数据拉取失败: %v", e)
		}
	}

	return remote
}
