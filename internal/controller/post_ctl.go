package controller

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ithouph/Ejar-sub001/internal/api/dto"
	"github.com/ithouph/Ejar-sub001/internal/middleware"
	"github.com/ithouph/Ejar-sub001/internal/model"
	"github.com/ithouph/Ejar-sub001/internal/repository"
)

// PostController 帖子查询接口
type PostController struct {
	postRepo repository.PostRepository
}

func NewPostController(postRepo repository.PostRepository) *PostController {
	return &PostController{postRepo: postRepo}
}

// GetPost 获取帖子详情
// @Summary 获取单个帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} dto.PostResp
// @Router /api/posts/{id} [get]
func (ctrl *PostController) GetPost(c *gin.Context) {
	post, err := ctrl.postRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "帖子不存在"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toPostResp(post),
	})
}

// ListMyPosts 获取我的帖子列表
// @Summary 获取当前用户的帖子列表
// @Tags Post
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.PostListResp
// @Router /api/posts [get]
func (ctrl *PostController) ListMyPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	posts, total, err := ctrl.postRepo.ListByUser(
		c.Request.Context(), middleware.GetUserID(c), page, pageSize)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.PostResp, 0, len(posts))
	for i := range posts {
		respList = append(respList, toPostResp(&posts[i]))
	}

	c.JSON(200, dto.PostListResp{
		Code:     0,
		Message:  "success",
		Data:     respList,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// toPostResp 模型转响应 DTO
func toPostResp(post *model.Post) dto.PostResp {
	specs := make(map[string]string)
	if len(post.Specifications) > 0 {
		// 规格 JSON 由提交流程写入，解析失败按空处理
		_ = json.Unmarshal(post.Specifications, &specs)
	}

	return dto.PostResp{
		ID:             post.ID,
		UserID:         post.UserID,
		Title:          post.Title,
		Description:    post.Description,
		Price:          post.Price,
		CityID:         post.CityID,
		Status:         post.Status,
		Images:         post.Images,
		CategoryID:     post.CategoryID,
		CategorySlug:   post.CategorySlug,
		Specifications: specs,
		CreatedAt:      post.CreatedAt,
	}
}
