package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ithouph/Ejar-sub001/internal/controller"
	"github.com/ithouph/Ejar-sub001/internal/middleware"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Catalog *controller.CatalogController
	Form    *controller.FormController
	Post    *controller.PostController
	Geo     *controller.GeoController
}

// SetupRouter 构建 gin 引擎并注册所有路由
func SetupRouter(ctrls *Controllers) *gin.Engine {
	r := gin.Default()
	InitRoutes(r, ctrls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctrls *Controllers) {
	api := r.Group("/api")
	{
		// 参考数据（公开）
		api.GET("/catalogs", ctrls.Catalog.GetCatalogs)
		api.GET("/schema", ctrls.Catalog.GetSchema)

		// 逆地理（公开）
		api.GET("/geo/reverse", ctrls.Geo.Reverse)

		// 帖子
		posts := api.Group("/posts")
		{
			// GET /api/posts/:id
			posts.GET("/:id", ctrls.Post.GetPost)
			// GET /api/posts （我的帖子，需登录）
			posts.GET("", middleware.JWTAuth(), ctrls.Post.ListMyPosts)
		}

		// 发帖表单会话（全部需登录）
		forms := api.Group("/forms")
		forms.Use(middleware.JWTAuth())
		{
			forms.POST("", ctrls.Form.Open)
			forms.GET("/:id", ctrls.Form.Get)
			forms.PATCH("/:id", ctrls.Form.Update)
			forms.POST("/:id/images", ctrls.Form.UploadImages)
			forms.POST("/:id/images/urls", ctrls.Form.AddImageURLs)
			forms.POST("/:id/catalogs/refresh", ctrls.Form.RefreshCatalogs)

			// 提交加 10 秒冷却，防止连点重复发帖
			forms.POST("/:id/submit", middleware.SubmitCooldown(10*time.Second), ctrls.Form.Submit)
		}
	}
}
