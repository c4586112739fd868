package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/service"
)

// CatalogController 参考数据接口
type CatalogController struct {
	catalogSvc *service.CatalogService
}

func NewCatalogController(catalogSvc *service.CatalogService) *CatalogController {
	return &CatalogController{catalogSvc: catalogSvc}
}

// GetCatalogs 获取目录包
// @Summary 获取发帖表单的全部参考数据（含降级标记）
// @Tags Catalog
// @Success 200 {object} service.CatalogBundle
// @Router /api/catalogs [get]
func (ctrl *CatalogController) GetCatalogs(c *gin.Context) {
	bundle := ctrl.catalogSvc.LoadBundle(c.Request.Context())

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    bundle,
	})
}

// GetSchema 获取字段模板
// @Summary 按分类（及交易方式/房产类型）获取动态字段分组
// @Tags Catalog
// @Param category_id query string true "分类ID"
// @Param listing_type query string false "交易方式 slug"
// @Param property_type query string false "房产类型 slug"
// @Success 200 {array} service.FieldGroup
// @Router /api/schema [get]
func (ctrl *CatalogController) GetSchema(c *gin.Context) {
	categoryID := c.Query("category_id")
	if categoryID == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少 category_id"})
		return
	}

	bundle := ctrl.catalogSvc.LoadBundle(c.Request.Context())

	var category *model.Category
	for i := range bundle.Categories {
		if bundle.Categories[i].ID == categoryID {
			category = &bundle.Categories[i]
			break
		}
	}
	if category == nil {
		c.JSON(404, gin.H{"code": 404, "message": "分类不存在"})
		return
	}

	var listingType *model.ListingType
	if slug := c.Query("listing_type"); slug != "" {
		for i := range bundle.ListingTypes {
			if bundle.ListingTypes[i].Slug == slug {
				listingType = &bundle.ListingTypes[i]
				break
			}
		}
	}

	var propertyType *model.PropertyType
	if slug := c.Query("property_type"); slug != "" {
		for i := range bundle.PropertyTypes {
			if bundle.PropertyTypes[i].Slug == slug {
				propertyType = &bundle.PropertyTypes[i]
				break
			}
		}
	}

	groups := service.BuildSchema(bundle, service.Classify(category), listingType, propertyType)

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    groups,
	})
}
