package render

import (
	"testing"

	"github.com/Jkweks/labelgen/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(partsPerLabel int) TemplateConfig {
	return TemplateConfig{
		Name:               "Test",
		ImagePosition:      "none",
		AccentColor:        "#0a3d62",
		TextAlign:          "left",
		IncludeDescription: true,
		PartsPerLabel:      partsPerLabel,
		Layout:             layout.DefaultConfig(partsPerLabel, true),
	}
}

func testPart() Part {
	return Part{
		Manufacturer:  "Acme Industries",
		PartNumber:    "ACM-42-9000",
		Description:   "Heavy duty fastener",
		StockQuantity: 128,
		BinLocation:   "A3-14",
		Notes:         "Handle with care",
	}
}

// TestGroupBlocksByRow 测试行分组: half 成对,full 独占,落单 half 自成一行
func TestGroupBlocksByRow(t *testing.T) {
	blocks := []layout.Block{
		{Key: "manufacturer", Width: "half"},
		{Key: "part_number", Width: "half"},
		{Key: "description", Width: "full"},
		{Key: "stock_quantity", Width: "half"},
	}

	rows := groupBlocksByRow(blocks)

	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, "description", rows[1][0].Key)
	assert.Len(t, rows[2], 1)
	assert.Equal(t, "stock_quantity", rows[2][0].Key)
}

// TestGroupBlocksByRow_FullClosesPendingHalf 测试 full 块结束未配对的 half
func TestGroupBlocksByRow_FullClosesPendingHalf(t *testing.T) {
	blocks := []layout.Block{
		{Key: "manufacturer", Width: "half"},
		{Key: "notes", Width: "full"},
		{Key: "part_number", Width: "half"},
	}

	rows := groupBlocksByRow(blocks)

	require.Len(t, rows, 3)
	assert.Equal(t, "manufacturer", rows[0][0].Key)
	assert.Equal(t, "notes", rows[1][0].Key)
	assert.Equal(t, "part_number", rows[2][0].Key)
}

// TestBuildRowLayouts_Widths 测试行内宽度分配
func TestBuildRowLayouts_Widths(t *testing.T) {
	doc := newTestDoc()
	template := testTemplate(1)
	part := testPart()
	available := 200.0

	blocks := []layout.Block{
		{Key: "manufacturer", Width: "half"},
		{Key: "part_number", Width: "half"},
		{Key: "description", Width: "full"},
		{Key: "stock_quantity", Width: "half"},
	}

	rows := buildRowLayouts(doc, blocks, part, template, available, false)
	require.Len(t, rows, 3)

	// 成对 half: 均分可用宽度减列间距
	pairWidth := (available - columnGap) / 2
	assert.InDelta(t, pairWidth, rows[0].Blocks[0].Width, 0.01)
	assert.InDelta(t, pairWidth, rows[0].Blocks[1].Width, 0.01)

	// full 独占整行
	assert.InDelta(t, available, rows[1].Blocks[0].Width, 0.01)

	// 落单 half 取半宽与 48% 的较大值
	loneWidth := (available - columnGap) / 2
	if min := available * 0.48; min > loneWidth {
		loneWidth = min
	}
	assert.InDelta(t, loneWidth, rows[2].Blocks[0].Width, 0.01)
}

// TestBuildRowLayouts_RowHeightIsMax 测试行高为行内块高最大值
func TestBuildRowLayouts_RowHeightIsMax(t *testing.T) {
	doc := newTestDoc()
	template := testTemplate(1)
	part := testPart()

	blocks := []layout.Block{
		{Key: "manufacturer", Width: "half"},
		{Key: "part_number", Width: "half"},
	}

	rows := buildRowLayouts(doc, blocks, part, template, 200, false)
	require.Len(t, rows, 1)

	maxHeight := 0.0
	for _, block := range rows[0].Blocks {
		if block.Height > maxHeight {
			maxHeight = block.Height
		}
	}
	assert.Equal(t, maxHeight, rows[0].Height)
}

// TestBuildRowLayouts_ZeroWidth 测试可用宽度为零时不产生行
func TestBuildRowLayouts_ZeroWidth(t *testing.T) {
	doc := newTestDoc()
	rows := buildRowLayouts(doc, testTemplate(1).Layout.Blocks, testPart(), testTemplate(1), 0, false)
	assert.Empty(t, rows)

	rows = buildRowLayouts(doc, testTemplate(1).Layout.Blocks, testPart(), testTemplate(1), -5, false)
	assert.Empty(t, rows)
}

// TestPrepareBlockLayout_EmptyValueReservesHeight 测试空值块仍保留最小高度
func TestPrepareBlockLayout_EmptyValueReservesHeight(t *testing.T) {
	doc := newTestDoc()
	template := testTemplate(1)
	part := Part{Manufacturer: "Acme", PartNumber: "A-1"}

	block := prepareBlockLayout(doc, layout.Block{Key: "notes", Width: "full"}, part, template, 200, false)

	assert.Empty(t, block.Lines)
	assert.Greater(t, block.Height, 0.0)
}

// TestPrepareBlockLayout_SplitUsesSmallerSize 测试双栏模式使用缩小字号
func TestPrepareBlockLayout_SplitUsesSmallerSize(t *testing.T) {
	doc := newTestDoc()
	template := testTemplate(2)
	part := testPart()

	full := prepareBlockLayout(doc, layout.Block{Key: "part_number", Width: "half"}, part, template, 200, false)
	split := prepareBlockLayout(doc, layout.Block{Key: "part_number", Width: "half"}, part, template, 200, true)

	assert.Equal(t, 14.0, full.ValueSize)
	assert.Equal(t, 12.0, split.ValueSize)
}

// TestFieldStyleForKey 测试样式表查找与 _right 共享
func TestFieldStyleForKey(t *testing.T) {
	partNumber := fieldStyleForKey("part_number")
	assert.True(t, partNumber.UseAccent)
	assert.Equal(t, "B", partNumber.ValueStyle)
	assert.False(t, partNumber.ShowLabel)

	rightPartNumber := fieldStyleForKey("part_number_right")
	assert.Equal(t, partNumber, rightPartNumber)

	unknown := fieldStyleForKey("bin_location")
	assert.Equal(t, defaultFieldStyle, unknown)
	assert.True(t, unknown.ShowLabel)
}

// TestHumanizeKey 测试字段库缺失时的标签推导
func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Custom Field", humanizeKey("custom_field"))
}
