package render

import (
	"github.com/Jkweks/labelgen/internal/layout"
)

// TemplateConfig 渲染用的模板配置快照
type TemplateConfig struct {
	Name               string
	ImagePosition      string
	AccentColor        string
	TextAlign          string
	IncludeDescription bool
	PartsPerLabel      int
	Layout             layout.Config
	FieldFormats       map[string]string
}

// Part 标签单侧的零件数据
type Part struct {
	Manufacturer  string
	PartNumber    string
	Description   string
	StockQuantity int
	BinLocation   string
	ImageURL      string
	Notes         string
}

// LabelData 一次渲染的标签输入,渲染过程中不被修改
type LabelData struct {
	Left     Part
	Right    *Part
	Template TemplateConfig
}

// PrintItem 打印选择项: 标签数据 + 物理份数
type PrintItem struct {
	Label  LabelData
	Copies int
}

// partValue 按字段 key 提取零件字段值,_right 变体映射到基础字段
func partValue(part Part, key string) any {
	switch layout.BaseKey(key) {
	case "manufacturer":
		return part.Manufacturer
	case "part_number":
		return part.PartNumber
	case "description":
		return part.Description
	case "stock_quantity":
		return part.StockQuantity
	case "bin_location":
		return part.BinLocation
	case "image_url":
		return part.ImageURL
	case "notes":
		return part.Notes
	default:
		return nil
	}
}
