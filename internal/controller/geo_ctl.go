package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ithouph/Ejar-sub001/internal/service"
)

// GeoController 逆地理编码接口
type GeoController struct {
	geoSvc *service.GeoService
}

func NewGeoController(geoSvc *service.GeoService) *GeoController {
	return &GeoController{geoSvc: geoSvc}
}

// Reverse 坐标转地址
// @Summary 按坐标解析地址
// @Tags Geo
// @Param lat query number true "纬度"
// @Param lon query number true "经度"
// @Success 200 {object} service.Address
// @Router /api/geo/reverse [get]
func (ctrl *GeoController) Reverse(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的坐标"})
		return
	}

	addr, err := ctrl.geoSvc.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(502, gin.H{"code": 502, "message": "地址解析失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    addr,
	})
}
