package service

import "errors"

// 服务层哨兵错误,控制器据此映射 HTTP 状态码
var (
	// ErrNotFound 引用的模板或标签不存在
	ErrNotFound = errors.New("not found")
	// ErrValidation 请求数据校验失败
	ErrValidation = errors.New("validation failed")
)

// ValidationError 包装校验失败详情
func ValidationError(detail string) error {
	return &wrappedError{sentinel: ErrValidation, detail: detail}
}

// NotFoundError 包装未找到详情
func NotFoundError(detail string) error {
	return &wrappedError{sentinel: ErrNotFound, detail: detail}
}

type wrappedError struct {
	sentinel error
	detail   string
}

func (e *wrappedError) Error() string {
	return e.detail
}

func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
