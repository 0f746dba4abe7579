package api

import (
	"net/http"

	"github.com/Jkweks/labelgen/internal/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controllers 路由绑定的控制器集合
type Controllers struct {
	Template *TemplateController
	Label    *LabelController
	Print    *PrintController
	Upload   *UploadController
}

// SetupRoutes 创建路由并注册中间件与业务路由
func SetupRoutes(db *gorm.DB, controllers Controllers, cfg *config.Config) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))

	// 健康检查
	healthController := NewHealthController(db)
	router.GET("/healthz", healthController.Check)

	// 上传的图片静态托管
	router.Static("/uploads", cfg.Uploads.Root)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 字段库(布局编辑器用)
		v1.GET("/fields", controllers.Template.Fields)

		// 模板管理路由
		templates := v1.Group("/templates")
		{
			templates.POST("", controllers.Template.Create)
			templates.GET("", controllers.Template.List)
			templates.GET("/:id", controllers.Template.Get)
			templates.GET("/:id/labels", controllers.Label.ListByTemplate)
			templates.PUT("/:id", controllers.Template.Update)
			templates.DELETE("/:id", controllers.Template.Delete)
		}

		// 标签管理路由
		labels := v1.Group("/labels")
		{
			// 打印路由必须在 /:id 之前注册
			labels.POST("/print", controllers.Print.Print)

			labels.POST("", controllers.Label.Create)
			labels.GET("", controllers.Label.List)
			labels.GET("/:id", controllers.Label.Get)
			labels.PUT("/:id", controllers.Label.Update)
			labels.DELETE("/:id", controllers.Label.Delete)
		}

		// 图片上传路由
		v1.POST("/uploads", controllers.Upload.Upload)
	}

	// 未匹配路由返回 JSON 格式的 404
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}
