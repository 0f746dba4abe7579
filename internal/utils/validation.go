package utils

import (
	"errors"
	"strings"
	"unicode"
)

// 校验错误
var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name is too long")
	ErrDangerousChars = errors.New("name contains dangerous characters")
)

// SanitizeString 清理自由文本，移除控制字符（保留换行符和制表符）
// 存储的文本会原样落到 PDF 上,因此不做 HTML 转义。
func SanitizeString(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// ValidateName 验证模板/标签名称类输入
func ValidateName(name string) error {
	// 1. 检查是否为空或仅包含空白字符
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}

	// 2. 检查长度（最大 255 字符）
	if len(trimmed) > 255 {
		return ErrNameTooLong
	}

	// 3. 检查是否包含危险字符（XSS 等）
	if containsDangerousChars(trimmed) {
		return ErrDangerousChars
	}

	return nil
}

// TrimAndValidate 去除首尾空白并截断到最大长度
func TrimAndValidate(input string, maxLength int) (string, bool) {
	trimmed := strings.TrimSpace(input)
	truncated := false
	if maxLength > 0 && len(trimmed) > maxLength {
		trimmed = trimmed[:maxLength]
		truncated = true
	}
	return trimmed, truncated
}

// containsDangerousChars 检查字符串是否包含危险字符
func containsDangerousChars(s string) bool {
	lowered := strings.ToLower(s)
	dangerousPatterns := []string{
		"<script",
		"</script>",
		"javascript:",
		"onerror=",
		"onload=",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}
