package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Jkweks/labelgen/internal/config"
	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/Jkweks/labelgen/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect 连接 SQLite 数据库并打开外键约束
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = "data/labelgen.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 级联删除依赖外键约束,SQLite 需要显式开启
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Migrate 执行数据库迁移并播种默认模板
func Migrate(db *gorm.DB) error {
	if err := createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	if err := SeedDefaultTemplates(db); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}
	return nil
}

// createTables 手动创建 SQLite 表,标签表带级联删除外键
func createTables(db *gorm.DB) error {
	// 创建 templates 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL UNIQUE,
			description TEXT,
			image_position VARCHAR(16) NOT NULL DEFAULT 'left',
			accent_color VARCHAR(16) NOT NULL DEFAULT '#0a3d62',
			text_align VARCHAR(16) NOT NULL DEFAULT 'left',
			include_description BOOLEAN NOT NULL DEFAULT 1,
			parts_per_label INTEGER NOT NULL DEFAULT 1,
			layout_config TEXT,
			field_formats TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create templates table: %w", err)
	}

	// 创建 labels 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS labels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id INTEGER NOT NULL,
			manufacturer VARCHAR(255) NOT NULL,
			part_number VARCHAR(255) NOT NULL,
			description TEXT,
			stock_quantity INTEGER NOT NULL DEFAULT 0,
			bin_location VARCHAR(255),
			image_url TEXT,
			notes TEXT,
			manufacturer_right VARCHAR(255),
			part_number_right VARCHAR(255),
			description_right TEXT,
			stock_quantity_right INTEGER NOT NULL DEFAULT 0,
			bin_location_right VARCHAR(255),
			image_url_right TEXT,
			notes_right TEXT,
			default_copies INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY(template_id) REFERENCES templates(id) ON DELETE CASCADE
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create labels table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_labels_template_id ON labels(template_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_labels_template_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_labels_part_number ON labels(part_number)").Error; err != nil {
		return fmt.Errorf("failed to create idx_labels_part_number: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_templates_name ON templates(name)").Error; err != nil {
		return fmt.Errorf("failed to create idx_templates_name: %w", err)
	}
	return nil
}

// SeedDefaultTemplates 模板表为空时插入起始模板
func SeedDefaultTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.TemplateModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	templates := []model.TemplateModel{
		{
			Name:               "Classic Shelf",
			Description:        "Image on the left, text on the right",
			ImagePosition:      "left",
			AccentColor:        "#0a3d62",
			TextAlign:          "left",
			IncludeDescription: true,
			PartsPerLabel:      1,
			LayoutConfig:       layout.MarshalConfig(layout.DefaultConfig(1, true)),
			FieldFormats:       layout.MarshalFormats(nil),
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			Name:               "Poster",
			Description:        "Image on top, centered text below",
			ImagePosition:      "top",
			AccentColor:        "#b33939",
			TextAlign:          "center",
			IncludeDescription: true,
			PartsPerLabel:      1,
			LayoutConfig:       layout.MarshalConfig(layout.DefaultConfig(1, true)),
			FieldFormats:       layout.MarshalFormats(nil),
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
	return db.Create(&templates).Error
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
