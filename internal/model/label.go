package model

import (
	"errors"
	"time"
)

// LabelModel 标签数据模型,左侧零件必填,右侧零件仅双栏模板使用
type LabelModel struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TemplateID uint `gorm:"not null;index" json:"template_id"`

	Manufacturer  string `gorm:"type:varchar(255);not null" json:"manufacturer"`
	PartNumber    string `gorm:"type:varchar(255);not null;index" json:"part_number"`
	Description   string `gorm:"type:text" json:"description"`
	StockQuantity int    `gorm:"not null;default:0" json:"stock_quantity"`
	BinLocation   string `gorm:"type:varchar(255)" json:"bin_location"`
	ImageURL      string `gorm:"type:text" json:"image_url"`
	Notes         string `gorm:"type:text" json:"notes"`

	ManufacturerRight  string `gorm:"type:varchar(255)" json:"manufacturer_right"`
	PartNumberRight    string `gorm:"type:varchar(255)" json:"part_number_right"`
	DescriptionRight   string `gorm:"type:text" json:"description_right"`
	StockQuantityRight int    `gorm:"not null;default:0" json:"stock_quantity_right"`
	BinLocationRight   string `gorm:"type:varchar(255)" json:"bin_location_right"`
	ImageURLRight      string `gorm:"type:text" json:"image_url_right"`
	NotesRight         string `gorm:"type:text" json:"notes_right"`

	DefaultCopies int       `gorm:"not null;default:1" json:"default_copies"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`

	Template *TemplateModel `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"template,omitempty"`
}

// TableName 指定表名
func (LabelModel) TableName() string {
	return "labels"
}

// Validate 验证标签模型,partsPerLabel 为所属模板的栏数
func (lm *LabelModel) Validate(partsPerLabel int) error {
	if lm.TemplateID == 0 {
		return errors.New("template_id is required")
	}
	if lm.Manufacturer == "" || lm.PartNumber == "" {
		return errors.New("manufacturer and part number are required")
	}
	if partsPerLabel == 2 {
		if lm.ManufacturerRight == "" || lm.PartNumberRight == "" {
			return errors.New("right side manufacturer and part number are required for dual part templates")
		}
	}
	if lm.StockQuantity < 0 || lm.StockQuantityRight < 0 {
		return errors.New("stock quantity cannot be negative")
	}
	if lm.DefaultCopies < 1 {
		return errors.New("default copies must be at least 1")
	}
	return nil
}

// HasRightPart 判断是否填写了右侧零件
func (lm *LabelModel) HasRightPart() bool {
	return lm.ManufacturerRight != "" || lm.PartNumberRight != "" ||
		lm.DescriptionRight != "" || lm.BinLocationRight != "" ||
		lm.ImageURLRight != "" || lm.NotesRight != "" || lm.StockQuantityRight != 0
}
