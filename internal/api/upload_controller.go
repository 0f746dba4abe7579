package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExtensions 接受的上传扩展名
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadController 图片上传控制器
type UploadController struct {
	uploadsRoot string
}

// NewUploadController 创建上传控制器
func NewUploadController(uploadsRoot string) *UploadController {
	return &UploadController{uploadsRoot: uploadsRoot}
}

// Upload 接收图片文件,以唯一文件名存入上传目录
// 客户端未声明 mimetype 时按扩展名放行。
func (c *UploadController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		Error(ctx, http.StatusBadRequest, "file is required", err.Error())
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[extension] {
		Error(ctx, http.StatusBadRequest, "unsupported file type", "only png, jpg, jpeg and gif are accepted")
		return
	}

	if err := os.MkdirAll(c.uploadsRoot, 0755); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to prepare uploads directory", err.Error())
		return
	}

	filename := uuid.NewString() + extension
	destination := filepath.Join(c.uploadsRoot, filename)
	if err := ctx.SaveUploadedFile(file, destination); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to store file", err.Error())
		return
	}

	Created(ctx, gin.H{
		"filename": filename,
		"url":      "/uploads/" + filename,
	})
}
