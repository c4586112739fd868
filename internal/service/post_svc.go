package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/repository"
	"github.com/ithouph/Ejar-sub001/pkg/utils"
)

// ==================== 校验错误 ====================

// ValidationError 提交前置校验失败
// Message 原样展示给用户（内联错误条），不翻译不包装
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError 判断是否为校验失败
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ==================== 提交载荷 ====================

// Submission 组装完成、可直接写库的提交载荷
type Submission struct {
	Post model.Post

	// 通过 UUID 过滤后的设施关联 ID（兜底模式下恒为空）
	AmenityLinkIDs []string
}

// ==================== 发帖服务 ====================

// PostService 发帖服务
type PostService struct {
	postRepo repository.PostRepository
	formSvc  *FormService
}

// NewPostService 创建发帖服务
func NewPostService(postRepo repository.PostRepository, formSvc *FormService) *PostService {
	return &PostService{postRepo: postRepo, formSvc: formSvc}
}

// BuildSubmission 校验并组装提交载荷（纯逻辑，不触库）
// 顶层必填校验按固定顺序短路：标题 -> 描述 -> 城市 -> 图片数量。
// 分类专属字段一律可选。
func (s *PostService) BuildSubmission(sess *FormSession) (*Submission, error) {
	st := &sess.State

	if strings.TrimSpace(st.Title) == "" {
		return nil, &ValidationError{Message: "Please enter a title"}
	}
	if strings.TrimSpace(st.Description) == "" {
		return nil, &ValidationError{Message: "Please enter a description"}
	}
	if st.CityID == "" {
		return nil, &ValidationError{Message: "Please select a city"}
	}
	if len(st.Images) < MinImages {
		return nil, &ValidationError{Message: "Please add at least 2 photos"}
	}

	specs := CategorySpecifications(sess)
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return nil, fmt.Errorf("序列化规格失败: %w", err)
	}

	post := model.Post{
		UserID:         sess.UserID,
		Title:          strings.TrimSpace(st.Title),
		Description:    strings.TrimSpace(st.Description),
		Price:          st.Price,
		CityID:         st.CityID,
		Status:         model.PostStatusActive,
		Images:         append([]string(nil), st.Images...),
		Specifications: datatypes.JSON(specsJSON),
	}

	if sess.Category != nil {
		// ID 只有是语法合法的 UUID 才能当后端键写入；
		// 兜底分类的 slug ID 写 NULL，slug 本身另存一列供业务逻辑使用
		if utils.IsUUID(sess.Category.ID) {
			id := sess.Category.ID
			post.CategoryID = &id
		}
		post.CategorySlug = sess.Category.Slug
	}

	return &Submission{
		Post:           post,
		AmenityLinkIDs: s.amenityLinkIDs(sess),
	}, nil
}

// amenityLinkIDs 计算要写关联表的设施 ID
// 兜底模式下不写；非 UUID 键静默丢弃（其名称仍会出现在规格 JSON 里，
// 这个不对称是对线上行为的保留）
func (s *PostService) amenityLinkIDs(sess *FormSession) []string {
	if sess.Bundle.UsingFallback {
		return nil
	}

	var ids []string
	seen := make(map[string]struct{})

	keys := append(append([]string(nil), sess.State.SelectedAmenities...),
		sess.State.SelectedNearbyAmenities...)
	for _, key := range keys {
		id, ok := AmenityIDByKey(sess.Bundle, key)
		if !ok || !utils.IsUUID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Submit 提交发帖
// 帖子创建是主写入；设施关联是二次写入，失败只记日志不回滚，
// 帖子照常算发布成功。成功后销毁表单会话。
func (s *PostService) Submit(ctx context.Context, sess *FormSession) (*model.Post, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	submission, err := s.BuildSubmission(sess)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, &submission.Post); err != nil {
		// 会话保留，客户端可直接重试，不用重填
		return nil, fmt.Errorf("创建帖子失败: %w", err)
	}

	if len(submission.AmenityLinkIDs) > 0 {
		if err := s.postRepo.LinkAmenities(ctx, submission.Post.ID, submission.AmenityLinkIDs); err != nil {
			log.Printf("[Post] 设施关联写入失败 (post=%s): %v", submission.Post.ID, err)
		}
	}

	s.formSvc.Destroy(sess.ID)
	return &submission.Post, nil
}

// ==================== 规格组装 ====================

// CategorySpecifications 按当前分类变体组装规格键值对
// 只收激活字段，其他变体的残留输入一律不进入载荷；空值跳过
func CategorySpecifications(sess *FormSession) map[string]string {
	st := &sess.State
	specs := make(map[string]string)

	put := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			specs[key] = v
		}
	}

	switch sess.Class {
	case ClassPhones:
		put("model", st.Model)
		put("battery_health", st.BatteryHealth)
		put("storage", st.Storage)
		put("color", st.Color)
		put("condition", st.Condition)

	case ClassLaptops:
		put("model", st.Model)
		put("processor", st.Processor)
		put("ram", st.RAM)
		put("storage", st.Storage)
		put("condition", st.Condition)

	case ClassElectronics:
		put("brand", st.Brand)
		put("warranty", st.Warranty)
		put("condition", st.Condition)

	case ClassVehicles:
		put("make_model", st.MakeModel)
		put("model_details", st.ModelDetails)
		if st.Year != "" {
			if _, err := strconv.Atoi(st.Year); err == nil {
				put("year", st.Year)
			}
		}
		put("mileage", st.Mileage)
		put("fuel_type", st.FuelType)
		put("gear_type", st.GearType)
		put("condition", st.Condition)

	case ClassProperty:
		if sess.ListingType != nil {
			put("listing_type", sess.ListingType.Slug)
		}
		if sess.PropertyType != nil {
			put("property_type", sess.PropertyType.Slug)
		}

		if sess.PropertyType != nil && sess.PropertyType.Slug == model.PropertyTypeLand {
			put("land_size", st.LandSize)
		} else {
			put("bedrooms", st.Bedrooms)
			put("bathrooms", st.Bathrooms)
			put("size_sqft", st.SizeSqft)
		}

		// 设施键翻译回显示名称；查不到的键退化为键本身
		put("amenities", amenityNames(sess.Bundle, st.SelectedAmenities))
		if nearbyAmenitiesVisible(sess.ListingType, sess.PropertyType) {
			put("nearby_amenities", amenityNames(sess.Bundle, st.SelectedNearbyAmenities))
		}

		if sess.ListingType != nil && sess.ListingType.Slug == model.ListingTypeRent {
			put("monthly_rent", st.MonthlyRent)
			put("deposit", st.Deposit)
			put("min_contract_duration", st.MinContractDuration)
			put("furnished", st.Furnished)
		} else {
			put("sale_price", st.SalePrice)
			put("ownership_type", st.OwnershipType)
			put("property_age", st.PropertyAge)
			put("payment_options", st.PaymentOptions)
		}
	}

	return specs
}

func amenityNames(bundle *CatalogBundle, keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, AmenityNameByKey(bundle, key))
	}
	return strings.Join(names, ", ")
}
