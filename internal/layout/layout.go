package layout

import "encoding/json"

// Field 字段库条目
type Field struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Sample       string `json:"sample"`
	RequiresDual bool   `json:"requires_dual,omitempty"`
}

// Block 布局块,一个字段的排布指令
type Block struct {
	Key   string `json:"key"`
	Width string `json:"width"` // half 或 full
}

// Config 模板布局配置
type Config struct {
	Version int     `json:"version"`
	Blocks  []Block `json:"blocks"`
}

// FieldLibrary 可用字段库(7 个基础字段 + 6 个右侧变体)
var FieldLibrary = []Field{
	{Key: "manufacturer", Label: "Manufacturer", Sample: "Acme Industries"},
	{Key: "part_number", Label: "Part number", Sample: "ACM-42-9000"},
	{Key: "description", Label: "Description", Sample: "Heavy duty fastener"},
	{Key: "stock_quantity", Label: "Quantity", Sample: "Qty: 128"},
	{Key: "bin_location", Label: "Bin", Sample: "Bin: A3-14"},
	{Key: "image_url", Label: "Image", Sample: "Product image"},
	{Key: "notes", Label: "Notes", Sample: "Handle with care"},
	{Key: "manufacturer_right", Label: "Manufacturer (right)", Sample: "Globex Corp", RequiresDual: true},
	{Key: "part_number_right", Label: "Part number (right)", Sample: "GBX-77-100", RequiresDual: true},
	{Key: "description_right", Label: "Description (right)", Sample: "Right side description", RequiresDual: true},
	{Key: "stock_quantity_right", Label: "Quantity (right)", Sample: "Qty: 64", RequiresDual: true},
	{Key: "bin_location_right", Label: "Bin (right)", Sample: "Bin: B2-07", RequiresDual: true},
	{Key: "notes_right", Label: "Notes (right)", Sample: "Secondary notes", RequiresDual: true},
}

var fieldIndex = func() map[string]Field {
	index := make(map[string]Field, len(FieldLibrary))
	for _, field := range FieldLibrary {
		index[field.Key] = field
	}
	return index
}()

// LookupField 根据 key 查找字段库条目
func LookupField(key string) (Field, bool) {
	field, ok := fieldIndex[key]
	return field, ok
}

var defaultSingleBlocks = []Block{
	{Key: "manufacturer", Width: "half"},
	{Key: "part_number", Width: "half"},
	{Key: "description", Width: "full"},
	{Key: "stock_quantity", Width: "half"},
	{Key: "bin_location", Width: "half"},
	{Key: "notes", Width: "full"},
}

var defaultDualBlocks = []Block{
	{Key: "manufacturer", Width: "half"},
	{Key: "part_number", Width: "half"},
	{Key: "manufacturer_right", Width: "half"},
	{Key: "part_number_right", Width: "half"},
	{Key: "description", Width: "full"},
	{Key: "description_right", Width: "full"},
	{Key: "stock_quantity", Width: "half"},
	{Key: "bin_location", Width: "half"},
	{Key: "stock_quantity_right", Width: "half"},
	{Key: "bin_location_right", Width: "half"},
	{Key: "notes", Width: "full"},
	{Key: "notes_right", Width: "full"},
}

// DefaultConfig 根据模板设置返回内置默认布局
func DefaultConfig(partsPerLabel int, includeDescription bool) Config {
	source := defaultSingleBlocks
	if partsPerLabel == 2 {
		source = defaultDualBlocks
	}

	blocks := make([]Block, 0, len(source))
	for _, block := range source {
		if !includeDescription && isDescriptionKey(block.Key) {
			continue
		}
		blocks = append(blocks, block)
	}
	return Config{Version: 1, Blocks: blocks}
}

// Normalize 校验布局载荷并返回规范化配置
// 未知字段、单栏模板上的右侧字段、关闭描述时的描述字段都会被剔除;
// 剔除后为空或载荷无法解析时回退到默认布局,永不返回空布局。
func Normalize(raw []byte, partsPerLabel int, includeDescription bool) Config {
	var parsed Config
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed.Blocks = nil
		}
	}
	return NormalizeBlocks(parsed.Blocks, partsPerLabel, includeDescription)
}

// NormalizeBlocks 规范化已解析的布局块列表
func NormalizeBlocks(candidates []Block, partsPerLabel int, includeDescription bool) Config {
	blocks := make([]Block, 0, len(candidates))
	for _, candidate := range candidates {
		field, ok := fieldIndex[candidate.Key]
		if !ok {
			continue
		}
		if field.RequiresDual && partsPerLabel != 2 {
			continue
		}
		if isDescriptionKey(candidate.Key) && !includeDescription {
			continue
		}
		width := "full"
		if candidate.Width == "half" {
			width = "half"
		}
		blocks = append(blocks, Block{Key: candidate.Key, Width: width})
	}

	if len(blocks) == 0 {
		return DefaultConfig(partsPerLabel, includeDescription)
	}
	return Config{Version: 1, Blocks: blocks}
}

// MarshalConfig 将布局配置序列化为紧凑 JSON
func MarshalConfig(config Config) string {
	data, err := json.Marshal(config)
	if err != nil {
		return `{"version":1,"blocks":[]}`
	}
	return string(data)
}

func isDescriptionKey(key string) bool {
	return key == "description" || key == "description_right"
}

// BaseKey 去掉 _right 后缀,返回基础字段 key
func BaseKey(key string) string {
	const suffix = "_right"
	if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
		return key[:len(key)-len(suffix)]
	}
	return key
}

// IsRightKey 判断是否为右侧字段 key
func IsRightKey(key string) bool {
	return key != BaseKey(key)
}
