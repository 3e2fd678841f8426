package document

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Parser 文档解析器接口
// 负责将不同格式的文档解析为纯文本
type Parser interface {
	// Parse 解析文档，返回文本内容
	Parse(filePath string) (string, error)

	// ParseReader 从Reader解析文档，返回文本内容
	// filename用于确定文档类型
	ParseReader(r io.Reader, filename string) (string, error)
}

// ContentType 表示文档的内容类型
type ContentType string

const (
	// HTML 网页文档类型
	HTML ContentType = "html"
	// PDF 文档类型
	PDF ContentType = "pdf"
	// Markdown 文档类型
	Markdown ContentType = "markdown"
	// PlainText 纯文本类型
	PlainText ContentType = "plaintext"
	// JSONL 行式JSON语料类型
	JSONL ContentType = "jsonl"
	// Unknown 未知类型
	Unknown ContentType = "unknown"
)

// ParserFactory 解析器工厂函数，根据文件类型创建对应的解析器
// 新增格式时在这里增加一个分支，调用方不需要感知具体格式
func ParserFactory(filePath string, opts ...ParserOption) (Parser, error) {
	options := defaultParserOptions()
	for _, opt := range opts {
		opt(&options)
	}

	contentType := DetectContentType(filePath)

	switch contentType {
	case HTML:
		return NewHTMLParser(), nil
	case PDF:
		return NewPDFParser(), nil
	case Markdown:
		return NewMarkdownParser(), nil
	case PlainText:
		return NewPlainTextParser(), nil
	case JSONL:
		return NewJSONLParser(options.JSONLKey, options.Logger), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParserOption 解析器选项函数
type ParserOption func(*parserOptions)

type parserOptions struct {
	JSONLKey string         // JSONL文档中提取文本的字段名
	Logger   *logrus.Logger // 记录解析过程中跳过内容的警告
}

func defaultParserOptions() parserOptions {
	return parserOptions{
		JSONLKey: "text",
		Logger:   logrus.StandardLogger(),
	}
}

// WithJSONLKey 设置JSONL文档中提取文本的字段名
func WithJSONLKey(key string) ParserOption {
	return func(o *parserOptions) {
		if key != "" {
			o.JSONLKey = key
		}
	}
}

// WithParserLogger 设置解析器使用的日志器
func WithParserLogger(logger *logrus.Logger) ParserOption {
	return func(o *parserOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// DetectContentType 根据文件扩展名检测内容类型
func DetectContentType(filePath string) ContentType {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".html", ".htm":
		return HTML
	case ".pdf":
		return PDF
	case ".md", ".markdown":
		return Markdown
	case ".txt":
		return PlainText
	case ".jsonl":
		return JSONL
	default:
		return Unknown
	}
}

// Document 解析后的文档结构
type Document struct {
	Content string      // 文档文本内容（已规范化）
	Title   string      // 文档标题（可选）
	Source  string      // 源文件路径或URL
	Type    ContentType // 文档格式
}
