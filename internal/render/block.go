package render

import (
	"strings"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/go-pdf/fpdf"
)

// BlockLayout 单个字段块的排版结果
type BlockLayout struct {
	Key        string
	Label      string // 为空表示不显示字段标签
	Lines      []string
	Style      FieldStyle
	ValueStyle string
	ValueSize  float64
	Height     float64
	Width      float64
}

// RowLayout 一行内的块与行高(行内块高度的最大值)
type RowLayout struct {
	Blocks []BlockLayout
	Height float64
}

// groupBlocksByRow 将块按行分组
// full 宽块独占一行并结束未配对的 half 块;half 块两两成行,
// 末尾落单的 half 块自成一行。
func groupBlocksByRow(blocks []layout.Block) [][]layout.Block {
	var rows [][]layout.Block
	var current []layout.Block
	for _, block := range blocks {
		width := "full"
		if block.Width == "half" {
			width = "half"
		}
		candidate := layout.Block{Key: block.Key, Width: width}
		if width == "full" {
			if len(current) > 0 {
				rows = append(rows, current)
				current = nil
			}
			rows = append(rows, []layout.Block{candidate})
		} else {
			current = append(current, candidate)
			if len(current) == 2 {
				rows = append(rows, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// prepareBlockLayout 排版单个字段块: 解析标签与样式、格式化值、换行并计算块高
func prepareBlockLayout(doc *fpdf.Fpdf, block layout.Block, part Part, template TemplateConfig, width float64, isSplit bool) BlockLayout {
	key := block.Key
	label := humanizeKey(key)
	if field, ok := layout.LookupField(key); ok {
		label = field.Label
	}

	style := fieldStyleForKey(key)
	valueSize := style.resolvedValueSize(isSplit)
	formatted := layout.FormatValue(template.FieldFormats, key, partValue(part, key))

	maxWidth := width - 2
	if maxWidth < 1 {
		maxWidth = 1
	}
	var lines []string
	if formatted != "" {
		lines = wrapText(doc, formatted, style.ValueStyle, valueSize, maxWidth)
		if len(lines) == 0 {
			lines = []string{formatted}
		}
	}

	labelText := ""
	if style.ShowLabel && label != "" {
		labelText = label
	}

	height := 0.0
	if labelText != "" {
		height += style.LabelSize
	}
	if labelText != "" && len(lines) > 0 {
		height += 2
	}
	if len(lines) > 0 {
		height += float64(len(lines)) * valueSize
		if len(lines) > 1 {
			height += float64(len(lines)-1) * 2
		}
	} else {
		// 无文本的块仍保留最小高度
		height += valueSize * 0.6
	}
	height += 4

	return BlockLayout{
		Key:        key,
		Label:      labelText,
		Lines:      lines,
		Style:      style,
		ValueStyle: style.ValueStyle,
		ValueSize:  valueSize,
		Height:     height,
		Width:      width,
	}
}

// buildRowLayouts 将字段块排成行并计算每行宽度分配与行高
func buildRowLayouts(doc *fpdf.Fpdf, blocks []layout.Block, part Part, template TemplateConfig, availableWidth float64, isSplit bool) []RowLayout {
	if availableWidth <= 0 {
		return nil
	}

	var rowLayouts []RowLayout
	for _, row := range groupBlocksByRow(blocks) {
		if len(row) == 0 {
			continue
		}

		var widths []float64
		if len(row) == 1 {
			blockWidth := availableWidth
			if row[0].Width == "half" {
				// 落单的 half 块占约 48% 宽,与 full 块区分
				half := (availableWidth - columnGap) / 2
				if half < availableWidth*0.48 {
					half = availableWidth * 0.48
				}
				blockWidth = half
			}
			widths = []float64{blockWidth}
		} else {
			innerWidth := availableWidth - columnGap*float64(len(row)-1)
			if innerWidth < 1 {
				innerWidth = 1
			}
			widths = make([]float64, len(row))
			for i := range row {
				widths[i] = innerWidth / float64(len(row))
			}
		}

		rowBlocks := make([]BlockLayout, 0, len(row))
		maxHeight := 0.0
		for i, block := range row {
			width := widths[i]
			if width < 1 {
				width = 1
			}
			blockLayout := prepareBlockLayout(doc, block, part, template, width, isSplit)
			rowBlocks = append(rowBlocks, blockLayout)
			if blockLayout.Height > maxHeight {
				maxHeight = blockLayout.Height
			}
		}
		rowLayouts = append(rowLayouts, RowLayout{Blocks: rowBlocks, Height: maxHeight})
	}

	return rowLayouts
}

// humanizeKey 字段库缺失时由 key 推导可读标签
func humanizeKey(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
