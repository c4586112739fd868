package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ithouph/Ejar-sub001/internal/controller"
	"github.com/ithouph/Ejar-sub001/internal/middleware"
	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/repository"
	"github.com/ithouph/Ejar-sub001/internal/router"
	"github.com/ithouph/Ejar-sub001/internal/service"
	"github.com/ithouph/Ejar-sub001/internal/task"
	"github.com/ithouph/Ejar-sub001/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Category     repository.CategoryRepository
	ListingType  repository.ListingTypeRepository
	PropertyType repository.PropertyTypeRepository
	Amenity      repository.AmenityRepository
	City         repository.CityRepository
	Post         repository.PostRepository
}

// Services 服务集合
type Services struct {
	Catalog *service.CatalogService
	Form    *service.FormService
	Post    *service.PostService
	Geo     *service.GeoService
	Storage service.StorageProvider
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=ejar password=ejar dbname=ejar port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Catalog
		&model.Category{}, &model.ListingType{}, &model.PropertyType{},
		&model.Amenity{}, &model.City{},
		// Post
		&model.Post{}, &model.PostAmenity{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Category:     repository.NewCategoryRepository(db),
		ListingType:  repository.NewListingTypeRepository(db),
		PropertyType: repository.NewPropertyTypeRepository(db),
		Amenity:      repository.NewAmenityRepository(db),
		City:         repository.NewCityRepository(db),
		Post:         repository.NewPostRepository(db),
	}

	// -------- 存储 --------
	storage := initStorageProvider()

	// -------- 服务层 --------
	catalogSvc := service.NewCatalogService(
		repos.Category, repos.ListingType, repos.PropertyType, repos.Amenity, repos.City)
	formSvc := service.NewFormService(catalogSvc)
	postSvc := service.NewPostService(repos.Post, formSvc)
	geoSvc := service.NewGeoService(&service.GeoConfig{
		BaseURL: getEnv("GEO_BASE_URL", ""),
	})

	services := &Services{
		Catalog: catalogSvc,
		Form:    formSvc,
		Post:    postSvc,
		Geo:     geoSvc,
		Storage: storage,
	}

	// -------- JWT --------
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		middleware.SetJWTConfig(&middleware.JWTConfig{
			SecretKey:      secret,
			AccessTokenTTL: 24 * time.Hour,
			Issuer:         getEnv("JWT_ISSUER", "ejar"),
		})
	}

	// -------- 控制器层 --------
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogSvc),
		Form:    controller.NewFormController(formSvc, postSvc, storage),
		Post:    controller.NewPostController(repos.Post),
		Geo:     controller.NewGeoController(geoSvc),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageProvider 初始化图片存储
func initStorageProvider() service.StorageProvider {
	cfg := &service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    os.Getenv("AWS_BUCKET"),
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		CDNDomain: os.Getenv("STORAGE_CDN_DOMAIN"),
		BasePath:  getEnv("STORAGE_BASE_PATH", "posts"),
		LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", "/uploads"),
	}

	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		log.Fatalf("初始化存储失败: %v", err)
	}
	return storage
}

// initTasks 启动定时任务
func initTasks(deps *Dependencies) {
	catalogTask := task.NewCatalogTask(deps.Services.Catalog)
	catalogTask.Start()
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
