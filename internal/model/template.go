package model

import (
	"errors"
	"time"
)

// 模板枚举取值
var (
	ImagePositions = []string{"left", "right", "top", "none"}
	TextAligns     = []string{"left", "center", "right"}
)

// TemplateModel 标签模板数据模型
type TemplateModel struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	ImagePosition      string    `gorm:"type:varchar(16);not null;default:left" json:"image_position"`
	AccentColor        string    `gorm:"type:varchar(16);not null;default:#0a3d62" json:"accent_color"`
	TextAlign          string    `gorm:"type:varchar(16);not null;default:left" json:"text_align"`
	IncludeDescription bool      `gorm:"not null;default:true" json:"include_description"`
	PartsPerLabel      int       `gorm:"not null;default:1" json:"parts_per_label"`
	LayoutConfig       string    `gorm:"type:text" json:"layout_config"` // 序列化的布局配置 JSON
	FieldFormats       string    `gorm:"type:text" json:"field_formats"` // 序列化的字段格式表 JSON
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (TemplateModel) TableName() string {
	return "templates"
}

// Validate 验证模板模型
func (tm *TemplateModel) Validate() error {
	if tm.Name == "" {
		return errors.New("template name is required")
	}
	if !contains(ImagePositions, tm.ImagePosition) {
		return errors.New("invalid image position")
	}
	if !contains(TextAligns, tm.TextAlign) {
		return errors.New("invalid text align")
	}
	if tm.PartsPerLabel != 1 && tm.PartsPerLabel != 2 {
		return errors.New("parts per label must be 1 or 2")
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
