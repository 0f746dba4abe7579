package render

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// wrapText 贪心换行: 按词累积,超出可用宽度时断行
// 宽度用目标字体/字号在当前文档上实测,对自身输出重新换行结果不变。
func wrapText(doc *fpdf.Fpdf, value string, style string, size float64, maxWidth float64) []string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return nil
	}

	doc.SetFont(fontFamily, style, size)

	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if doc.GetStringWidth(candidate) <= maxWidth {
			current = candidate
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	lines = append(lines, current)
	return lines
}

// drawAligned 按对齐方式在给定区间内绘制一行文本
func drawAligned(doc *fpdf.Fpdf, text string, style string, size float64, align string, x, width, baseline float64) {
	doc.SetFont(fontFamily, style, size)
	switch align {
	case "center":
		doc.Text(x+(width-doc.GetStringWidth(text))/2, baseline, text)
	case "right":
		doc.Text(x+width-doc.GetStringWidth(text), baseline, text)
	default:
		doc.Text(x, baseline, text)
	}
}
