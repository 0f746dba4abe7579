package api

import (
	"net/http"

	"github.com/Jkweks/labelgen/internal/service"
	"github.com/gin-gonic/gin"
)

// PrintController 打印控制器
type PrintController struct {
	printService service.PrintService
}

// NewPrintController 创建打印控制器
func NewPrintController(printService service.PrintService) *PrintController {
	return &PrintController{
		printService: printService,
	}
}

// Print 构建标签页 PDF 并作为附件返回
func (c *PrintController) Print(ctx *gin.Context) {
	var req service.PrintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := c.printService.BuildSheet(&req)
	if err != nil {
		ServiceError(ctx, err, "failed to build print sheet")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", result.Data)
}
