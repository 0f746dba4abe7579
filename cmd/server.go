/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jkweks/labelgen/internal/api"
	"github.com/Jkweks/labelgen/internal/config"
	"github.com/Jkweks/labelgen/internal/database"
	"github.com/Jkweks/labelgen/internal/repository"
	"github.com/Jkweks/labelgen/internal/service"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Labelgen API server.
The server will listen on the configured host and port,
and provide REST API interfaces for templates, labels and PDF printing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		api.SetDefaultLogger(logger)

		// 3. 连接数据库并迁移
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		// 4. 初始化服务
		templateRepo := repository.NewTemplateRepository(db)
		labelRepo := repository.NewLabelRepository(db)
		templateSvc := service.NewTemplateService(templateRepo, labelRepo)
		labelSvc := service.NewLabelService(labelRepo, templateRepo)
		printSvc := service.NewPrintService(labelRepo, cfg.Uploads.Root)

		// 5. 初始化控制器并设置路由
		router := api.SetupRoutes(db, api.Controllers{
			Template: api.NewTemplateController(templateSvc),
			Label:    api.NewLabelController(labelSvc),
			Print:    api.NewPrintController(printSvc),
			Upload:   api.NewUploadController(cfg.Uploads.Root),
		}, cfg)

		// 6. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		// 启动服务器（在 goroutine 中）
		go func() {
			logger.Infof("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatalf("Server forced to shutdown: %v", err)
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
