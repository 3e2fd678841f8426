package document

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat 不支持的文档格式
// 调用方应跳过该文档并继续处理后续文档
var ErrUnsupportedFormat = errors.New("unsupported document type")

// ParseError 单个文档内容解析失败
// 这类错误只影响当前文档，不应中止整个批处理
type ParseError struct {
	Source string // 出错的文件路径或URL
	Err    error  // 底层错误
}

// Error 实现error接口
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

// Unwrap 返回底层错误
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError 创建解析错误
func NewParseError(source string, err error) *ParseError {
	return &ParseError{Source: source, Err: err}
}
