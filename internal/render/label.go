package render

import (
	"bytes"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/go-pdf/fpdf"
)

// renderSession 单次构建的状态: 图片缓存与已注册到文档的图片名
type renderSession struct {
	cache      *ImageCache
	registered map[string]bool
}

func newRenderSession(cache *ImageCache) *renderSession {
	return &renderSession{
		cache:      cache,
		registered: make(map[string]bool),
	}
}

// filterBlocksForSide 选出属于某一侧的布局块
// 左侧取基础字段,右侧取 _right 字段;该侧为空时回退到默认布局再过滤。
func filterBlocksForSide(template TemplateConfig, side string) []layout.Block {
	result := filterSide(template.Layout.Blocks, side)
	if len(result) > 0 {
		return result
	}

	fallback := layout.DefaultConfig(template.PartsPerLabel, template.IncludeDescription)
	return filterSide(fallback.Blocks, side)
}

func filterSide(blocks []layout.Block, side string) []layout.Block {
	var result []layout.Block
	for _, block := range blocks {
		if block.Key == "" {
			continue
		}
		isRight := layout.IsRightKey(block.Key)
		if side == "right" && !isRight {
			continue
		}
		if side != "right" && isRight {
			continue
		}
		width := "full"
		if block.Width == "half" {
			width = "half"
		}
		result = append(result, layout.Block{Key: block.Key, Width: width})
	}
	return result
}

// placeImage 注册并绘制缓存图片,返回是否成功
func (s *renderSession) placeImage(doc *fpdf.Fpdf, reference string, image *CachedImage, x, y, width, height float64) {
	if !s.registered[reference] {
		doc.RegisterImageOptionsReader(reference, fpdf.ImageOptions{ImageType: image.Format}, bytes.NewReader(image.Data))
		s.registered[reference] = true
	}
	doc.ImageOptions(reference, x, y, width, height, false, fpdf.ImageOptions{ImageType: image.Format}, 0, "")
}

// renderPart 渲染标签的一侧: 摆放图片、收缩文本区、绘制字段行
// 坐标系以左上角为原点,y 为该侧单元的顶边。
func renderPart(doc *fpdf.Fpdf, session *renderSession, part Part, template TemplateConfig, blocks []layout.Block, x, y, width, height float64, accent rgbColor, isSplit bool) {
	partPadding := 0.16 * pointsPerInch
	if isSplit {
		partPadding = 0.12 * pointsPerInch
	}
	innerX := x + partPadding
	innerY := y + partPadding
	innerWidth := width - 2*partPadding
	if innerWidth < 0 {
		innerWidth = 0
	}
	innerHeight := height - 2*partPadding
	if innerHeight < 0 {
		innerHeight = 0
	}

	textAreaX := innerX
	textAreaWidth := innerWidth
	textAreaTop := innerY

	effectivePosition := template.ImagePosition
	switch effectivePosition {
	case "left", "right", "top":
	case "":
		effectivePosition = "left"
	default:
		effectivePosition = "none"
	}
	// 双栏标签上左置图片会挤压文本列,强制改为顶部
	if isSplit && effectivePosition == "left" {
		effectivePosition = "top"
	}

	var image *CachedImage
	if part.ImageURL != "" && effectivePosition != "none" {
		image = session.cache.Get(part.ImageURL)
	}

	if image != nil && innerWidth > 0 && innerHeight > 0 {
		aspect := 1.0
		if image.Height > 0 {
			aspect = float64(image.Width) / float64(image.Height)
		}
		switch effectivePosition {
		case "left":
			imageWidth := innerWidth * 0.38
			targetHeight := imageWidth / aspect
			if targetHeight > innerHeight {
				targetHeight = innerHeight
				imageWidth = targetHeight * aspect
			}
			imageY := innerY + (innerHeight-targetHeight)/2
			session.placeImage(doc, part.ImageURL, image, innerX, imageY, imageWidth, targetHeight)
			textAreaX = innerX + imageWidth + partPadding/2
			textAreaWidth = innerWidth - imageWidth - partPadding/2
			if textAreaWidth < 0 {
				textAreaWidth = 0
			}
		case "right":
			imageWidth := innerWidth * 0.35
			targetHeight := imageWidth / aspect
			if targetHeight > innerHeight {
				targetHeight = innerHeight
				imageWidth = targetHeight * aspect
			}
			imageX := innerX + innerWidth - imageWidth
			imageY := innerY + (innerHeight-targetHeight)/2
			session.placeImage(doc, part.ImageURL, image, imageX, imageY, imageWidth, targetHeight)
			textAreaWidth = innerWidth - imageWidth - partPadding/2
			if textAreaWidth < 0 {
				textAreaWidth = 0
			}
		case "top":
			fraction := 0.55
			if isSplit {
				fraction = 0.45
			}
			imageHeight := innerHeight * fraction
			targetWidth := imageHeight * aspect
			if targetWidth > innerWidth {
				targetWidth = innerWidth
				imageHeight = targetWidth / aspect
			}
			imageX := innerX + (innerWidth-targetWidth)/2
			session.placeImage(doc, part.ImageURL, image, imageX, innerY, targetWidth, imageHeight)
			textAreaTop = innerY + imageHeight + partPadding/2
		}
	}

	align := template.TextAlign
	switch align {
	case "left", "center", "right":
	default:
		align = "left"
	}

	rowLayouts := buildRowLayouts(doc, blocks, part, template, textAreaWidth, isSplit)
	if len(rowLayouts) == 0 {
		return
	}

	rowGap := rowGapFull
	if isSplit {
		rowGap = rowGapSplit
	}
	cursor := textAreaTop
	for index, row := range rowLayouts {
		rowX := textAreaX
		for blockIndex, blockLayout := range row.Blocks {
			drawBlock(doc, blockLayout, rowX, cursor, blockLayout.Width, align, accent)
			rowX += blockLayout.Width
			if blockIndex < len(row.Blocks)-1 {
				rowX += columnGap
			}
		}
		cursor += row.Height
		if index < len(rowLayouts)-1 {
			cursor += rowGap
		}
	}
}

// drawBlock 绘制字段块: 先画淡色小号标签,再按对齐方式画值行
func drawBlock(doc *fpdf.Fpdf, block BlockLayout, x, top, width float64, align string, accent rgbColor) {
	cursor := top
	if block.Label != "" {
		doc.SetTextColor(labelTextColor.R, labelTextColor.G, labelTextColor.B)
		baseline := cursor + block.Style.LabelSize
		drawAligned(doc, block.Label, block.Style.LabelStyle, block.Style.LabelSize, align, x, width, baseline)
		cursor = baseline + 2
	}

	textColor := blackColor
	if block.Style.UseAccent {
		textColor = accent
	}
	doc.SetTextColor(textColor.R, textColor.G, textColor.B)
	for index, line := range block.Lines {
		cursor += block.ValueSize
		drawAligned(doc, line, block.ValueStyle, block.ValueSize, align, x, width, cursor)
		if index < len(block.Lines)-1 {
			cursor += 2
		}
	}
}

// drawLabel 渲染一枚标签到目标单元矩形
// 双栏模式把内容区一分为二并画分隔线;任何缺失输入都降级为省略,
// 渲染本身永不失败。
func drawLabel(doc *fpdf.Fpdf, session *renderSession, label LabelData, x, y, width, height float64) {
	innerX := x + labelPadding
	innerY := y + labelPadding
	innerWidth := width - 2*labelPadding
	innerHeight := height - 2*labelPadding

	template := label.Template
	accent := parseHexColor(template.AccentColor)
	isSplit := template.PartsPerLabel == 2 && label.Right != nil

	leftBlocks := filterBlocksForSide(template, "left")

	if isSplit {
		splitGap := labelPadding / 2
		columnWidth := 0.0
		if innerWidth > 0 {
			columnWidth = (innerWidth - splitGap) / 2
		}
		renderPart(doc, session, label.Left, template, leftBlocks, innerX, innerY, columnWidth, innerHeight, accent, true)

		rightBlocks := filterBlocksForSide(template, "right")
		rightX := innerX + columnWidth + splitGap
		renderPart(doc, session, *label.Right, template, rightBlocks, rightX, innerY, columnWidth, innerHeight, accent, true)

		dividerX := innerX + columnWidth + splitGap/2
		doc.SetDrawColor(dividerColor.R, dividerColor.G, dividerColor.B)
		doc.SetLineWidth(0.8)
		doc.Line(dividerX, innerY, dividerX, innerY+innerHeight)
	} else {
		renderPart(doc, session, label.Left, template, leftBlocks, innerX, innerY, innerWidth, innerHeight, accent, false)
	}
}
