package api

import (
	"net/http"
	"strconv"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/Jkweks/labelgen/internal/service"
	"github.com/Jkweks/labelgen/internal/utils"
	"github.com/gin-gonic/gin"
)

// TemplateController 模板控制器
type TemplateController struct {
	templateService service.TemplateService
}

// NewTemplateController 创建模板控制器
func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{
		templateService: templateService,
	}
}

// Create 创建模板
func (c *TemplateController) Create(ctx *gin.Context) {
	var req service.CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	// 输入验证和清理
	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)
	if req.Description != "" {
		req.Description, _ = utils.TrimAndValidate(req.Description, 1000)
	}

	template, err := c.templateService.Create(&req)
	if err != nil {
		ServiceError(ctx, err, "failed to create template")
		return
	}

	Created(ctx, template)
}

// Get 获取模板详情
func (c *TemplateController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	template, err := c.templateService.Get(id)
	if err != nil {
		ServiceError(ctx, err, "failed to get template")
		return
	}

	Success(ctx, template)
}

// List 列出所有模板
func (c *TemplateController) List(ctx *gin.Context) {
	templates, err := c.templateService.List()
	if err != nil {
		ServiceError(ctx, err, "failed to list templates")
		return
	}

	Success(ctx, templates)
}

// Update 更新模板
// 布局块列表会随 parts_per_label / include_description 重新规范化,
// 不一致的提交被修复而不是拒绝。
func (c *TemplateController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.UpdateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := utils.ValidateName(req.Name); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template name", err.Error())
		return
	}
	req.Name, _ = utils.TrimAndValidate(req.Name, 255)

	template, err := c.templateService.Update(id, &req)
	if err != nil {
		ServiceError(ctx, err, "failed to update template")
		return
	}

	Success(ctx, template)
}

// Delete 删除模板(标签级联删除)
func (c *TemplateController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.templateService.Delete(id); err != nil {
		ServiceError(ctx, err, "failed to delete template")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Fields 返回布局编辑器使用的字段库
func (c *TemplateController) Fields(ctx *gin.Context) {
	Success(ctx, layout.FieldLibrary)
}

// parseID 解析路径中的数字 ID
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		Error(ctx, http.StatusBadRequest, "invalid id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
