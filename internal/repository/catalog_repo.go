package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

// ==================== 接口定义 ====================

// 五张参考数据表的仓储接口。
// 每个 GetAll 独立失败，由上层目录服务决定是否整体降级到兜底数据。

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
}

// ListingTypeRepository 交易方式仓储接口
type ListingTypeRepository interface {
	GetAll(ctx context.Context) ([]model.ListingType, error)
	Create(ctx context.Context, lt *model.ListingType) error
}

// PropertyTypeRepository 房产类型仓储接口
type PropertyTypeRepository interface {
	GetAll(ctx context.Context) ([]model.PropertyType, error)
	Create(ctx context.Context, pt *model.PropertyType) error
}

// AmenityRepository 配套设施仓储接口
type AmenityRepository interface {
	GetAll(ctx context.Context) ([]model.Amenity, error)
	Create(ctx context.Context, amenity *model.Amenity) error
}

// CityRepository 城市仓储接口
type CityRepository interface {
	GetAll(ctx context.Context) ([]model.City, error)
	GetByID(ctx context.Context, id string) (*model.City, error)
	Create(ctx context.Context, city *model.City) error
}

// ==================== 仓储实现 ====================

type categoryRepo struct{ db *gorm.DB }

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

type listingTypeRepo struct{ db *gorm.DB }

// NewListingTypeRepository 创建交易方式仓储
func NewListingTypeRepository(db *gorm.DB) ListingTypeRepository {
	return &listingTypeRepo{db: db}
}

func (r *listingTypeRepo) GetAll(ctx context.Context) ([]model.ListingType, error) {
	var types []model.ListingType
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&types).Error
	return types, err
}

func (r *listingTypeRepo) Create(ctx context.Context, lt *model.ListingType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

type propertyTypeRepo struct{ db *gorm.DB }

// NewPropertyTypeRepository 创建房产类型仓储
func NewPropertyTypeRepository(db *gorm.DB) PropertyTypeRepository {
	return &propertyTypeRepo{db: db}
}

func (r *propertyTypeRepo) GetAll(ctx context.Context) ([]model.PropertyType, error) {
	var types []model.PropertyType
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&types).Error
	return types, err
}

func (r *propertyTypeRepo) Create(ctx context.Context, pt *model.PropertyType) error {
	return r.db.WithContext(ctx).Create(pt).Error
}

type amenityRepo struct{ db *gorm.DB }

// NewAmenityRepository 创建配套设施仓储
func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepo{db: db}
}

func (r *amenityRepo) GetAll(ctx context.Context) ([]model.Amenity, error) {
	var amenities []model.Amenity
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&amenities).Error
	return amenities, err
}

func (r *amenityRepo) Create(ctx context.Context, amenity *model.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

type cityRepo struct{ db *gorm.DB }

// NewCityRepository 创建城市仓储
func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepo{db: db}
}

func (r *cityRepo) GetAll(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&cities).Error
	return cities, err
}

func (r *cityRepo) GetByID(ctx context.Context, id string) (*model.City, error) {
	var city model.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepo) Create(ctx context.Context, city *model.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}
