package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

// ==================== 接口定义 ====================

// PostRepository 帖子仓储接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Post, int64, error)
	Delete(ctx context.Context, id string) error

	// 设施关联（发帖主流程之外的二次写入）
	LinkAmenities(ctx context.Context, postID string, amenityIDs []string) error
	GetAmenityIDs(ctx context.Context, postID string) ([]string, error)

	// 事务
	WithTx(tx *gorm.DB) PostRepository
	Transaction(ctx context.Context, fn func(txRepo PostRepository) error) error
}

// ==================== 仓储实现 ====================

type postRepo struct{ db *gorm.DB }

// NewPostRepository 创建帖子仓储
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

func (r *postRepo) LinkAmenities(ctx context.Context, postID string, amenityIDs []string) error {
	if len(amenityIDs) == 0 {
		return nil
	}

	links := make([]model.PostAmenity, 0, len(amenityIDs))
	for _, amenityID := range amenityIDs {
		links = append(links, model.PostAmenity{
			PostID:    postID,
			AmenityID: amenityID,
		})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *postRepo) GetAmenityIDs(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.PostAmenity{}).
		Where("post_id = ?", postID).
		Pluck("amenity_id", &ids).Error
	return ids, err
}

func (r *postRepo) WithTx(tx *gorm.DB) PostRepository {
	return &postRepo{db: tx}
}

func (r *postRepo) Transaction(ctx context.Context, fn func(txRepo PostRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
