package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ithouph/Ejar-sub001/internal/model"
)

func setupPostDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	// :memory: 是每连接一个库，事务会另开连接，收紧到单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Post{}, &model.PostAmenity{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func samplePost(userID string) *model.Post {
	categoryID := uuid.NewString()
	return &model.Post{
		UserID:         userID,
		Title:          "iPhone 13 Pro",
		Description:    "Lightly used, box included",
		Price:          2500,
		CityID:         uuid.NewString(),
		Status:         model.PostStatusActive,
		Images:         pq.StringArray{"a.jpg", "b.jpg", "c.jpg"},
		CategoryID:     &categoryID,
		CategorySlug:   "phones",
		Specifications: datatypes.JSON(`{"model":"iPhone 13 Pro","condition":"used"}`),
	}
}

func TestPostRepo_CreateAndGet(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := samplePost(uuid.NewString())
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}
	if post.ID == "" {
		t.Fatal("主键应自动生成")
	}

	saved, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("查询帖子失败: %v", err)
	}
	if saved.Title != post.Title || saved.CategorySlug != "phones" {
		t.Fatalf("基本字段不一致: %+v", saved)
	}
	// 图片数组与规格 JSON 往返完整
	if len(saved.Images) != 3 || saved.Images[0] != "a.jpg" {
		t.Fatalf("图片数组往返失败: %v", saved.Images)
	}
	if string(saved.Specifications) == "" {
		t.Fatal("规格 JSON 丢失")
	}
	if saved.CategoryID == nil || *saved.CategoryID != *post.CategoryID {
		t.Fatalf("分类 ID 不一致: %v", saved.CategoryID)
	}
}

func TestPostRepo_NullableCategoryID(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := samplePost(uuid.NewString())
	post.CategoryID = nil
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}

	saved, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("查询帖子失败: %v", err)
	}
	if saved.CategoryID != nil {
		t.Fatalf("分类 ID 应为 NULL: %v", *saved.CategoryID)
	}
	if saved.CategorySlug != "phones" {
		t.Fatalf("slug 应独立保留: %q", saved.CategorySlug)
	}
}

func TestPostRepo_ListByUser(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	userID := uuid.NewString()
	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, samplePost(userID)); err != nil {
			t.Fatalf("创建帖子失败: %v", err)
		}
	}
	if err := repo.Create(ctx, samplePost(uuid.NewString())); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}

	posts, total, err := repo.ListByUser(ctx, userID, 1, 2)
	if err != nil {
		t.Fatalf("分页查询失败: %v", err)
	}
	if total != 3 {
		t.Fatalf("总数应只统计该用户: got %d", total)
	}
	if len(posts) != 2 {
		t.Fatalf("分页大小错误: got %d", len(posts))
	}

	posts, _, err = repo.ListByUser(ctx, userID, 2, 2)
	if err != nil || len(posts) != 1 {
		t.Fatalf("第二页应剩 1 条: n=%d err=%v", len(posts), err)
	}
}

func TestPostRepo_AmenityLinks(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := samplePost(uuid.NewString())
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}

	amenityIDs := []string{uuid.NewString(), uuid.NewString()}
	if err := repo.LinkAmenities(ctx, post.ID, amenityIDs); err != nil {
		t.Fatalf("写入设施关联失败: %v", err)
	}

	ids, err := repo.GetAmenityIDs(ctx, post.ID)
	if err != nil {
		t.Fatalf("查询设施关联失败: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("关联数量错误: %v", ids)
	}

	// 空列表直接短路，不触库
	if err := repo.LinkAmenities(ctx, post.ID, nil); err != nil {
		t.Fatalf("空关联不应报错: %v", err)
	}
}

func TestPostRepo_Transaction(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	// 提交路径：事务内建帖 + 写关联，出事务后都可见
	post := samplePost(uuid.NewString())
	amenityID := uuid.NewString()
	err := repo.Transaction(ctx, func(txRepo PostRepository) error {
		if err := txRepo.Create(ctx, post); err != nil {
			return err
		}
		return txRepo.LinkAmenities(ctx, post.ID, []string{amenityID})
	})
	if err != nil {
		t.Fatalf("事务执行失败: %v", err)
	}
	if _, err := repo.GetByID(ctx, post.ID); err != nil {
		t.Fatalf("事务提交后帖子应可见: %v", err)
	}
	ids, err := repo.GetAmenityIDs(ctx, post.ID)
	if err != nil || len(ids) != 1 {
		t.Fatalf("事务提交后关联应可见: ids=%v err=%v", ids, err)
	}

	// 回滚路径：回调报错，事务内写入全部不落库
	rollback := samplePost(uuid.NewString())
	err = repo.Transaction(ctx, func(txRepo PostRepository) error {
		if err := txRepo.Create(ctx, rollback); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("回调报错应透传")
	}
	if _, err := repo.GetByID(ctx, rollback.ID); err == nil {
		t.Fatal("回滚后帖子不应落库")
	}
}

func TestPostRepo_Delete(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := samplePost(uuid.NewString())
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("创建帖子失败: %v", err)
	}
	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := repo.GetByID(ctx, post.ID); err == nil {
		t.Fatal("删除后不应再查到帖子")
	}
}
