package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ithouph/Ejar-sub001/internal/api/dto"
	"github.com/ithouph/Ejar-sub001/internal/middleware"
	"github.com/ithouph/Ejar-sub001/internal/service"
)

// 单张图片大小上限 10MB
const maxImageBytes = 10 << 20

// FormController 发帖表单会话接口
type FormController struct {
	formSvc *service.FormService
	postSvc *service.PostService
	storage service.StorageProvider
}

func NewFormController(formSvc *service.FormService, postSvc *service.PostService,
	storage service.StorageProvider) *FormController {
	return &FormController{formSvc: formSvc, postSvc: postSvc, storage: storage}
}

// Open 打开表单会话
// @Summary 打开发帖表单会话（加载参考数据，失败时整包兜底）
// @Tags Form
// @Success 200 {object} dto.FormSessionResp
// @Router /api/forms [post]
func (ctrl *FormController) Open(c *gin.Context) {
	sess := ctrl.formSvc.Open(c.Request.Context(), middleware.GetUserID(c))
	ctrl.respondSession(c, sess)
}

// Get 获取会话快照
// @Summary 获取表单会话当前状态与字段模板
// @Tags Form
// @Param id path string true "会话ID"
// @Success 200 {object} dto.FormSessionResp
// @Router /api/forms/{id} [get]
func (ctrl *FormController) Get(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}
	ctrl.respondSession(c, sess)
}

// Update 更新表单字段
// @Summary 更新表单字段 / 切换分类、交易方式、房产类型
// @Tags Form
// @Param id path string true "会话ID"
// @Param body body dto.UpdateFormReq true "字段更新"
// @Success 200 {object} dto.FormSessionResp
// @Router /api/forms/{id} [patch]
func (ctrl *FormController) Update(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}

	var req dto.UpdateFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	if err := ctrl.formSvc.Update(sess, &req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	ctrl.respondSession(c, sess)
}

// UploadImages 上传图片
// @Summary 上传图片到表单（最多5张；已满返回独立的上限信号）
// @Tags Form
// @Param id path string true "会话ID"
// @Success 200 {object} dto.FormSessionResp
// @Failure 409 {object} map[string]any "图片已达上限"
// @Router /api/forms/{id}/images [post]
func (ctrl *FormController) UploadImages(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}

	// 已满 5 张时先行拒绝，不触发任何上传
	if sess.ImageCount() >= service.MaxImages {
		c.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": "You can only upload up to 5 photos",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(400, gin.H{"code": 400, "message": "没有上传任何图片"})
		return
	}

	var urls []string
	for _, fh := range files {
		if fh.Size > maxImageBytes {
			c.JSON(400, gin.H{"code": 400, "message": "图片过大 (上限 10MB): " + fh.Filename})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "读取图片失败: " + err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "读取图片失败: " + err.Error()})
			return
		}

		url, err := ctrl.storage.Upload(c.Request.Context(), data, fh.Filename,
			fh.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "图片上传失败: " + err.Error()})
			return
		}
		urls = append(urls, url)
	}

	if _, err := ctrl.formSvc.AddImages(sess, urls); err != nil {
		if errors.Is(err, service.ErrImageLimit) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    409,
				"message": "You can only upload up to 5 photos",
			})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctrl.respondSession(c, sess)
}

// AddImageURLs 追加已上传图片
// @Summary 追加图片 URL（客户端直传存储后回填，最多5张）
// @Tags Form
// @Param id path string true "会话ID"
// @Param body body dto.AddImagesReq true "图片 URL 列表"
// @Success 200 {object} dto.FormSessionResp
// @Failure 409 {object} map[string]any "图片已达上限"
// @Router /api/forms/{id}/images/urls [post]
func (ctrl *FormController) AddImageURLs(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}

	var req dto.AddImagesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求格式错误: " + err.Error()})
		return
	}

	if _, err := ctrl.formSvc.AddImages(sess, req.URLs); err != nil {
		if errors.Is(err, service.ErrImageLimit) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    409,
				"message": "You can only upload up to 5 photos",
			})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctrl.respondSession(c, sess)
}

// RefreshCatalogs 重载目录
// @Summary 重载会话目录包（来源翻转时清空设施选择）
// @Tags Form
// @Param id path string true "会话ID"
// @Success 200 {object} dto.FormSessionResp
// @Router /api/forms/{id}/catalogs/refresh [post]
func (ctrl *FormController) RefreshCatalogs(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}

	ctrl.formSvc.ReloadCatalogs(c.Request.Context(), sess)
	ctrl.respondSession(c, sess)
}

// Submit 提交发帖
// @Summary 校验并提交发帖（成功后销毁会话）
// @Tags Form
// @Param id path string true "会话ID"
// @Success 200 {object} dto.PostResp
// @Failure 400 {object} map[string]any "校验失败，message 为内联错误文案"
// @Router /api/forms/{id}/submit [post]
func (ctrl *FormController) Submit(c *gin.Context) {
	sess, ok := ctrl.ownedSession(c)
	if !ok {
		return
	}

	post, err := ctrl.postSvc.Submit(c.Request.Context(), sess)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		// 提交失败会话保留，客户端可带原数据重试
		c.JSON(500, gin.H{"code": 500, "message": "发布失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toPostResp(post),
	})
}

// ==================== 辅助方法 ====================

// ownedSession 取会话并校验归属
func (ctrl *FormController) ownedSession(c *gin.Context) (*service.FormSession, bool) {
	sess, err := ctrl.formSvc.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "会话不存在或已过期"})
		return nil, false
	}
	if sess.UserID != middleware.GetUserID(c) {
		c.JSON(403, gin.H{"code": 403, "message": "无权访问该会话"})
		return nil, false
	}
	return sess, true
}

// respondSession 输出会话快照 + 当前字段模板
// 会话可能正被其他请求持锁修改，整体走一次快照读取
func (ctrl *FormController) respondSession(c *gin.Context, sess *service.FormSession) {
	snap := sess.Snapshot()

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"session": dto.FormSessionResp{
				SessionID:     snap.ID,
				UsingFallback: snap.UsingFallback,
				CategoryID:    snap.CategoryID,
				CategorySlug:  snap.CategorySlug,
				ListingType:   snap.ListingType,
				PropertyType:  snap.PropertyType,
				Images:        snap.Images,
			},
			"schema": snap.Schema,
		},
	})
}
