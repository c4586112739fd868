package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ithouph/Ejar-sub001/internal/api/dto"
	"github.com/ithouph/Ejar-sub001/internal/model"
)

// ==================== 常量与错误 ====================

const (
	// 图片数量限制：提交下限 2 张，上限 5 张
	MinImages = 2
	MaxImages = 5

	// 会话闲置超时，过期后懒回收
	sessionTTL = 2 * time.Hour
)

var (
	// ErrImageLimit 图片已满时再追加的独立信号，不属于提交校验失败
	ErrImageLimit = errors.New("photo limit reached")

	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = errors.New("form session not found")
)

// ==================== 表单状态 ====================

// FormState 跨全部分类变体的字段并集
// 单一归属：只被一个表单会话持有；哪些字段"激活"由当前分类决定，
// 提交时未激活字段一律不进入规格载荷
type FormState struct {
	// 顶层字段
	Title       string
	Description string
	Price       float64
	CityID      string
	Images      []string

	// 手机 / 笔记本 / 泛电子
	Model         string
	BatteryHealth string
	Storage       string
	Color         string
	Condition     string
	Processor     string
	RAM           string
	Brand         string
	Warranty      string

	// 车辆
	MakeModel    string
	ModelDetails string
	Year         string
	Mileage      string
	FuelType     string
	GearType     string

	// 房产明细
	Bedrooms  string
	Bathrooms string
	SizeSqft  string
	LandSize  string

	// 租赁条款
	MonthlyRent         string
	Deposit             string
	MinContractDuration string
	Furnished           string

	// 出售条款
	SalePrice      string
	OwnershipType  string
	PropertyAge    string
	PaymentOptions string

	// 设施选择（AmenityKey 集合）
	SelectedAmenities       []string
	SelectedNearbyAmenities []string
}

// FormSession 一次发帖表单会话
// 对应移动端的一次 AddPost 屏幕会话：目录包在会话打开时加载一次，
// 会话期间不重试；提交成功或过期即销毁
type FormSession struct {
	ID     string
	UserID string

	Bundle *CatalogBundle
	State  FormState

	// 当前选中项（指向 Bundle 内的元素）
	Category     *model.Category
	ListingType  *model.ListingType
	PropertyType *model.PropertyType
	Class        CategoryClass

	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// ==================== 表单服务 ====================

// FormService 表单会话服务
type FormService struct {
	catalogSvc *CatalogService
	sessions   sync.Map // sessionID -> *FormSession
}

// NewFormService 创建表单服务
func NewFormService(catalogSvc *CatalogService) *FormService {
	return &FormService{catalogSvc: catalogSvc}
}

// Open 打开新会话
// 目录加载永远成功（最差是整包兜底），不存在卡加载态的路径
func (s *FormService) Open(ctx context.Context, userID string) *FormSession {
	bundle := s.catalogSvc.LoadBundle(ctx)

	sess := &FormSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Bundle:    bundle,
		Class:     ClassNone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// 默认选中第一个可用分类，并级联默认交易方式/房产类型
	if len(bundle.Categories) > 0 {
		sess.selectCategory(&bundle.Categories[0])
	}

	s.sessions.Store(sess.ID, sess)
	return sess
}

// Get 取会话，顺带懒回收过期会话
func (s *FormService) Get(sessionID string) (*FormSession, error) {
	val, ok := s.sessions.Load(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess := val.(*FormSession)
	sess.mu.Lock()
	expired := time.Since(sess.UpdatedAt) > sessionTTL
	sess.mu.Unlock()

	if expired {
		s.sessions.Delete(sessionID)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Destroy 销毁会话（提交成功或用户放弃）
func (s *FormService) Destroy(sessionID string) {
	s.sessions.Delete(sessionID)
}

// ==================== 字段更新 ====================

// Update 应用一次字段更新
// 选择器字段（分类/交易方式/房产类型）带级联默认值逻辑，
// 其余标量字段逐个覆盖
func (s *FormService) Update(sess *FormSession, req *dto.UpdateFormReq) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.UpdatedAt = time.Now()

	if req.CategoryID != nil {
		if err := sess.selectCategoryByID(*req.CategoryID); err != nil {
			return err
		}
	}
	if req.ListingType != nil {
		if err := sess.selectListingType(*req.ListingType); err != nil {
			return err
		}
	}
	if req.PropertyType != nil {
		if err := sess.selectPropertyType(*req.PropertyType); err != nil {
			return err
		}
	}

	st := &sess.State
	applyString(&st.Title, req.Title)
	applyString(&st.Description, req.Description)
	if req.Price != nil {
		st.Price = *req.Price
	}
	applyString(&st.CityID, req.CityID)

	applyString(&st.Model, req.Model)
	applyString(&st.BatteryHealth, req.BatteryHealth)
	applyString(&st.Storage, req.Storage)
	applyString(&st.Color, req.Color)
	applyString(&st.Condition, req.Condition)
	applyString(&st.Processor, req.Processor)
	applyString(&st.RAM, req.RAM)
	applyString(&st.Brand, req.Brand)
	applyString(&st.Warranty, req.Warranty)

	applyString(&st.MakeModel, req.MakeModel)
	applyString(&st.ModelDetails, req.ModelDetails)
	applyString(&st.Year, req.Year)
	applyString(&st.Mileage, req.Mileage)
	applyString(&st.FuelType, req.FuelType)
	applyString(&st.GearType, req.GearType)

	applyString(&st.Bedrooms, req.Bedrooms)
	applyString(&st.Bathrooms, req.Bathrooms)
	applyString(&st.SizeSqft, req.SizeSqft)
	applyString(&st.LandSize, req.LandSize)

	applyString(&st.MonthlyRent, req.MonthlyRent)
	applyString(&st.Deposit, req.Deposit)
	applyString(&st.MinContractDuration, req.MinContractDuration)
	applyString(&st.Furnished, req.Furnished)

	applyString(&st.SalePrice, req.SalePrice)
	applyString(&st.OwnershipType, req.OwnershipType)
	applyString(&st.PropertyAge, req.PropertyAge)
	applyString(&st.PaymentOptions, req.PaymentOptions)

	if req.SelectedAmenities != nil {
		st.SelectedAmenities = append([]string(nil), (*req.SelectedAmenities)...)
	}
	if req.SelectedNearbyAmenities != nil {
		st.SelectedNearbyAmenities = append([]string(nil), (*req.SelectedNearbyAmenities)...)
	}

	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ==================== 图片 ====================

// AddImages 追加图片
// 已满 5 张时返回 ErrImageLimit（独立的"已达上限"信号）；
// 未满时静默截断到上限，不报错
func (s *FormService) AddImages(sess *FormSession, urls []string) ([]string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.UpdatedAt = time.Now()

	if len(sess.State.Images) >= MaxImages {
		return sess.State.Images, ErrImageLimit
	}

	space := MaxImages - len(sess.State.Images)
	if len(urls) > space {
		urls = urls[:space]
	}
	sess.State.Images = append(sess.State.Images, urls...)
	return sess.State.Images, nil
}

// ==================== 目录重载 ====================

// ReloadCatalogs 重载会话的目录包
// 数据来源在远程/兜底之间翻转时，设施选择键不再可信，整体清空；
// 其余字段原样保留
func (s *FormService) ReloadCatalogs(ctx context.Context, sess *FormSession) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.UpdatedAt = time.Now()

	old := sess.Bundle
	sess.Bundle = s.catalogSvc.LoadBundle(ctx)

	if old != nil && old.UsingFallback != sess.Bundle.UsingFallback {
		sess.State.SelectedAmenities = nil
		sess.State.SelectedNearbyAmenities = nil
	}

	// 选中项重新定位到新目录包；丢失则退回第一项
	if sess.Category != nil {
		if err := sess.selectCategoryByID(sess.Category.ID); err != nil && len(sess.Bundle.Categories) > 0 {
			sess.selectCategory(&sess.Bundle.Categories[0])
		}
	}
}

// ==================== 选择器（会话内部，调用方持锁） ====================

func (sess *FormSession) selectCategoryByID(id string) error {
	for i := range sess.Bundle.Categories {
		if sess.Bundle.Categories[i].ID == id {
			sess.selectCategory(&sess.Bundle.Categories[i])
			return nil
		}
	}
	return errors.New("category not found in loaded catalog")
}

// selectCategory 选中分类并级联默认值：
// 交易方式和房产类型都默认取各自列表的第一项（若有）
func (sess *FormSession) selectCategory(category *model.Category) {
	sess.Category = category
	sess.Class = Classify(category)

	if len(sess.Bundle.ListingTypes) > 0 {
		sess.ListingType = &sess.Bundle.ListingTypes[0]
	} else {
		sess.ListingType = nil
	}
	if len(sess.Bundle.PropertyTypes) > 0 {
		sess.PropertyType = &sess.Bundle.PropertyTypes[0]
	} else {
		sess.PropertyType = nil
	}
}

func (sess *FormSession) selectListingType(slug string) error {
	for i := range sess.Bundle.ListingTypes {
		if sess.Bundle.ListingTypes[i].Slug == slug {
			sess.ListingType = &sess.Bundle.ListingTypes[i]
			return nil
		}
	}
	return errors.New("listing type not found in loaded catalog")
}

func (sess *FormSession) selectPropertyType(slug string) error {
	for i := range sess.Bundle.PropertyTypes {
		if sess.Bundle.PropertyTypes[i].Slug == slug {
			sess.PropertyType = &sess.Bundle.PropertyTypes[i]
			return nil
		}
	}
	return errors.New("property type not found in loaded catalog")
}

// Schema 按会话当前选中状态产出字段分组
func (sess *FormSession) Schema() []FieldGroup {
	return BuildSchema(sess.Bundle, sess.Class, sess.ListingType, sess.PropertyType)
}

// ==================== 快照读取 ====================

// SessionSnapshot 会话的一致性只读快照
// 会话字段会被 Update/AddImages/ReloadCatalogs 持锁修改，
// 任何锁外读取都必须走快照，不能直接摸 sess.State
type SessionSnapshot struct {
	ID            string
	UsingFallback bool
	CategoryID    string
	CategorySlug  string
	ListingType   string
	PropertyType  string
	Images        []string
	Schema        []FieldGroup
}

// Snapshot 持锁取快照
func (sess *FormSession) Snapshot() SessionSnapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := SessionSnapshot{
		ID:            sess.ID,
		UsingFallback: sess.Bundle.UsingFallback,
		Images:        append([]string(nil), sess.State.Images...),
		Schema:        sess.Schema(),
	}
	if sess.Category != nil {
		snap.CategoryID = sess.Category.ID
		snap.CategorySlug = sess.Category.Slug
	}
	if sess.ListingType != nil {
		snap.ListingType = sess.ListingType.Slug
	}
	if sess.PropertyType != nil {
		snap.PropertyType = sess.PropertyType.Slug
	}
	return snap
}

// ImageCount 持锁读当前图片数
func (sess *FormSession) ImageCount() int {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.State.Images)
}
