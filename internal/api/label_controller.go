package api

import (
	"net/http"

	"github.com/Jkweks/labelgen/internal/service"
	"github.com/gin-gonic/gin"
)

// LabelController 标签控制器
type LabelController struct {
	labelService service.LabelService
}

// NewLabelController 创建标签控制器
func NewLabelController(labelService service.LabelService) *LabelController {
	return &LabelController{
		labelService: labelService,
	}
}

// Create 创建标签
func (c *LabelController) Create(ctx *gin.Context) {
	var req service.CreateLabelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	label, err := c.labelService.Create(&req)
	if err != nil {
		ServiceError(ctx, err, "failed to create label")
		return
	}

	Created(ctx, label)
}

// Get 获取标签详情
func (c *LabelController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	label, err := c.labelService.Get(id)
	if err != nil {
		ServiceError(ctx, err, "failed to get label")
		return
	}

	Success(ctx, label)
}

// List 列出所有标签
func (c *LabelController) List(ctx *gin.Context) {
	labels, err := c.labelService.List()
	if err != nil {
		ServiceError(ctx, err, "failed to list labels")
		return
	}

	Success(ctx, labels)
}

// ListByTemplate 列出某个模板下的所有标签
func (c *LabelController) ListByTemplate(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	labels, err := c.labelService.ListByTemplate(id)
	if err != nil {
		ServiceError(ctx, err, "failed to list labels by template")
		return
	}

	Success(ctx, labels)
}

// Update 更新标签
func (c *LabelController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.UpdateLabelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	label, err := c.labelService.Update(id, &req)
	if err != nil {
		ServiceError(ctx, err, "failed to update label")
		return
	}

	Success(ctx, label)
}

// Delete 删除标签
func (c *LabelController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.labelService.Delete(id); err != nil {
		ServiceError(ctx, err, "failed to delete label")
		return
	}

	ctx.Status(http.StatusNoContent)
}
