package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// pageGrids 每页标签数 -> (列数, 行数) 预设
var pageGrids = map[int][2]int{
	10: {2, 5},
	12: {2, 6},
}

// DefaultLabelsPerPage 默认页面网格预设
const DefaultLabelsPerPage = 12

// SheetOptions 整页构建选项
type SheetOptions struct {
	UploadsRoot   string
	LabelsPerPage int
}

// GridFor 返回预设对应的网格形状,未知预设回退到默认 2x6
func GridFor(labelsPerPage int) (columns, rows int) {
	grid, ok := pageGrids[labelsPerPage]
	if !ok {
		grid = pageGrids[DefaultLabelsPerPage]
	}
	return grid[0], grid[1]
}

// BuildSheet 把标签按份数平铺到多页网格并输出 PDF 字节
// 每个条目展开为 copies 次渲染(下限 1),按行优先填充单元格,
// 网格填满时开新页;空输入输出带占位文案的单页文档。
func BuildSheet(items []PrintItem, opts SheetOptions) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	pageWidth, pageHeight := doc.GetPageSize()
	columns, rows := GridFor(opts.LabelsPerPage)

	usableWidth := pageWidth - 2*pageMargin
	usableHeight := pageHeight - 2*pageMargin
	cellWidth := usableWidth / float64(columns)
	cellHeight := usableHeight / float64(rows)
	perPage := columns * rows

	session := newRenderSession(NewImageCache(opts.UploadsRoot))

	index := 0
	for _, item := range items {
		copies := item.Copies
		if copies < 1 {
			copies = 1
		}
		for copyIndex := 0; copyIndex < copies; copyIndex++ {
			if index%perPage == 0 {
				doc.AddPage()
			}
			position := index % perPage
			column := position % columns
			row := position / columns
			x := pageMargin + float64(column)*cellWidth
			y := pageMargin + float64(row)*cellHeight
			drawLabel(doc, session, item.Label, x, y, cellWidth, cellHeight)
			index++
		}
	}

	if index == 0 {
		doc.AddPage()
		doc.SetTextColor(blackColor.R, blackColor.G, blackColor.B)
		doc.SetFont(fontFamily, "", 12)
		doc.Text(pageMargin, pageMargin+20, "No labels selected.")
	}

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write sheet: %w", err)
	}
	return buffer.Bytes(), nil
}

// PageCount 计算 N 份标签在给定预设下占用的页数,空输入仍为 1 页
func PageCount(totalCopies, labelsPerPage int) int {
	columns, rows := GridFor(labelsPerPage)
	perPage := columns * rows
	if totalCopies <= 0 {
		return 1
	}
	return (totalCopies + perPage - 1) / perPage
}
