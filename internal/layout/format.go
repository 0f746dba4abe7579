package layout

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldFormatDefaults 内置字段格式表
var FieldFormatDefaults = map[string]string{
	"stock_quantity": "Qty: {value}",
	"bin_location":   "Bin: {value}",
}

var placeholderPattern = regexp.MustCompile(`\{[^{}]*\}`)

// FormatValue 按字段格式串渲染原始值
// 查找顺序: 字段自身格式 -> 右侧字段回退到基础字段 -> 内置默认表 -> "{value}"。
// 未知占位符替换为空串,格式化失败时回退到原始值的字符串形式,结果两端去空白。
func FormatValue(formats map[string]string, key string, value any) string {
	formatString := ""
	if formats != nil {
		formatString = formats[key]
		if formatString == "" && IsRightKey(key) {
			formatString = formats[BaseKey(key)]
		}
	}
	if formatString == "" {
		formatString = FieldFormatDefaults[key]
	}
	if formatString == "" && IsRightKey(key) {
		formatString = FieldFormatDefaults[BaseKey(key)]
	}
	if formatString == "" {
		formatString = "{value}"
	}

	valueText := stringifyValue(value)
	replacements := map[string]string{
		"value":        valueText,
		"value_upper":  strings.ToUpper(valueText),
		"value_lower":  strings.ToLower(valueText),
		"value_title":  titleCase(valueText),
		"value_number": numericValue(value),
		"value_raw":    rawValue(value),
	}

	formatted := placeholderPattern.ReplaceAllStringFunc(formatString, func(match string) string {
		name := match[1 : len(match)-1]
		return replacements[name]
	})
	return strings.TrimSpace(formatted)
}

// NormalizeFormats 解析并过滤字段格式载荷,仅保留字段库中的 key
func NormalizeFormats(raw []byte) map[string]string {
	formats := make(map[string]string)
	if len(raw) == 0 {
		return formats
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return formats
	}
	for key, value := range parsed {
		if _, ok := fieldIndex[key]; !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		formats[key] = value
	}
	return formats
}

// MarshalFormats 将字段格式表序列化为紧凑 JSON
func MarshalFormats(formats map[string]string) string {
	if formats == nil {
		formats = map[string]string{}
	}
	data, err := json.Marshal(formats)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func numericValue(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func rawValue(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return v
	default:
		return stringifyValue(value)
	}
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
