package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePageCount 检查 PDF 字节中的页树节点数量
func requirePageCount(t *testing.T, data []byte, pages int) {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	marker := []byte(fmt.Sprintf("/Count %d", pages))
	assert.True(t, bytes.Contains(data, marker), "expected a %d page document", pages)
}

func TestGridFor(t *testing.T) {
	columns, rows := GridFor(10)
	assert.Equal(t, 2, columns)
	assert.Equal(t, 5, rows)

	columns, rows = GridFor(12)
	assert.Equal(t, 2, columns)
	assert.Equal(t, 6, rows)

	// 未知预设回退到默认网格
	columns, rows = GridFor(30)
	assert.Equal(t, 2, columns)
	assert.Equal(t, 6, rows)

	columns, rows = GridFor(0)
	assert.Equal(t, 2, columns)
	assert.Equal(t, 6, rows)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 12))
	assert.Equal(t, 1, PageCount(1, 12))
	assert.Equal(t, 1, PageCount(12, 12))
	assert.Equal(t, 2, PageCount(13, 12))
	assert.Equal(t, 3, PageCount(25, 12))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 1, PageCount(-4, 12))
}

// TestBuildSheet_SinglePage 测试三份同一标签落在同一页
func TestBuildSheet_SinglePage(t *testing.T) {
	items := []PrintItem{
		{Label: LabelData{Left: testPart(), Template: testTemplate(1)}, Copies: 3},
	}

	data, err := BuildSheet(items, SheetOptions{LabelsPerPage: 12})
	require.NoError(t, err)
	requirePageCount(t, data, 1)
}

// TestBuildSheet_OverflowOpensNewPage 测试超出网格容量时翻页
func TestBuildSheet_OverflowOpensNewPage(t *testing.T) {
	items := []PrintItem{
		{Label: LabelData{Left: testPart(), Template: testTemplate(1)}, Copies: 13},
	}

	data, err := BuildSheet(items, SheetOptions{LabelsPerPage: 12})
	require.NoError(t, err)
	requirePageCount(t, data, 2)
}

// TestBuildSheet_CopiesFloor 测试份数下限为 1
func TestBuildSheet_CopiesFloor(t *testing.T) {
	items := []PrintItem{
		{Label: LabelData{Left: testPart(), Template: testTemplate(1)}, Copies: 0},
		{Label: LabelData{Left: testPart(), Template: testTemplate(1)}, Copies: -5},
	}

	data, err := BuildSheet(items, SheetOptions{LabelsPerPage: 12})
	require.NoError(t, err)
	requirePageCount(t, data, 1)
}

// TestBuildSheet_Empty 测试空选择输出占位单页文档
func TestBuildSheet_Empty(t *testing.T) {
	data, err := BuildSheet(nil, SheetOptions{LabelsPerPage: 12})
	require.NoError(t, err)
	requirePageCount(t, data, 1)
	assert.NotEmpty(t, data)
}

// TestBuildSheet_DualPart 测试双栏标签可渲染
func TestBuildSheet_DualPart(t *testing.T) {
	right := Part{Manufacturer: "Omega Supply", PartNumber: "OS-77", StockQuantity: 4}
	template := testTemplate(2)
	items := []PrintItem{
		{Label: LabelData{Left: testPart(), Right: &right, Template: template}, Copies: 1},
	}

	data, err := BuildSheet(items, SheetOptions{LabelsPerPage: 10})
	require.NoError(t, err)
	requirePageCount(t, data, 1)
}

// TestBuildSheet_UnreachableImage 测试图片引用失效时标签仍然渲染
func TestBuildSheet_UnreachableImage(t *testing.T) {
	part := testPart()
	part.ImageURL = "/uploads/no-such-image.png"
	template := testTemplate(1)
	template.ImagePosition = "left"

	data, err := BuildSheet([]PrintItem{
		{Label: LabelData{Left: part, Template: template}, Copies: 1},
	}, SheetOptions{UploadsRoot: t.TempDir(), LabelsPerPage: 12})
	require.NoError(t, err)
	requirePageCount(t, data, 1)
}
