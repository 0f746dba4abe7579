package render

import (
	"strconv"

	"github.com/Jkweks/labelgen/internal/layout"
)

const pointsPerInch = 72.0

const (
	columnGap    = 0.08 * pointsPerInch
	rowGapFull   = 0.1 * pointsPerInch
	rowGapSplit  = 0.07 * pointsPerInch
	labelPadding = 0.18 * pointsPerInch
	pageMargin   = 0.35 * pointsPerInch
)

// rgbColor PDF 文本/线条颜色
type rgbColor struct {
	R, G, B int
}

var (
	labelTextColor = rgbColor{R: 102, G: 117, B: 148}
	dividerColor   = rgbColor{R: 209, G: 209, B: 209}
	blackColor     = rgbColor{R: 0, G: 0, B: 0}
	defaultAccent  = rgbColor{R: 10, G: 61, B: 98} // #0a3d62
)

// FieldStyle 字段样式记录: 标签/值字体与字号、是否使用强调色
type FieldStyle struct {
	ShowLabel      bool
	LabelStyle     string // fpdf 字体样式: "" 常规 / "B" 粗体 / "I" 斜体
	LabelSize      float64
	ValueStyle     string
	ValueSize      float64
	ValueSizeSplit float64 // 双栏标签下的字号,0 表示沿用 ValueSize
	UseAccent      bool
}

// resolvedValueSize 返回当前布局模式下的值字号
func (s FieldStyle) resolvedValueSize(isSplit bool) float64 {
	if isSplit && s.ValueSizeSplit > 0 {
		return s.ValueSizeSplit
	}
	return s.ValueSize
}

var defaultFieldStyle = FieldStyle{
	ShowLabel:  true,
	LabelStyle: "B",
	LabelSize:  6,
	ValueStyle: "",
	ValueSize:  9,
}

// fieldStyleOverrides 字段样式覆盖表,未列出的字段使用默认样式
var fieldStyleOverrides = map[string]FieldStyle{
	"manufacturer": {
		LabelStyle: "B", LabelSize: 6,
		ValueStyle: "", ValueSize: 9, ValueSizeSplit: 8,
	},
	"part_number": {
		LabelStyle: "B", LabelSize: 6,
		ValueStyle: "B", ValueSize: 14, ValueSizeSplit: 12,
		UseAccent: true,
	},
	"stock_quantity": {
		LabelStyle: "B", LabelSize: 6,
		ValueStyle: "B", ValueSize: 11, ValueSizeSplit: 10,
	},
	"notes": {
		LabelStyle: "B", LabelSize: 6,
		ValueStyle: "I", ValueSize: 8, ValueSizeSplit: 7,
	},
}

// fieldStyleForKey 查找字段样式,_right 变体共享基础字段的样式
func fieldStyleForKey(key string) FieldStyle {
	if style, ok := fieldStyleOverrides[layout.BaseKey(key)]; ok {
		return style
	}
	return defaultFieldStyle
}

// parseHexColor 解析 #rrggbb / #rgb 强调色,无效值回退到默认色
func parseHexColor(value string) rgbColor {
	hex := value
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return defaultAccent
	}
	parsed, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defaultAccent
	}
	return rgbColor{
		R: int(parsed >> 16 & 0xff),
		G: int(parsed >> 8 & 0xff),
		B: int(parsed & 0xff),
	}
}
