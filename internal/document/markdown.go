package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownParser Markdown文档解析器
type MarkdownParser struct{}

// NewMarkdownParser 创建新的Markdown解析器
func NewMarkdownParser() Parser {
	return &MarkdownParser{}
}

// Parse 解析Markdown文件并提取文本内容
func (p *MarkdownParser) Parse(filePath string) (string, error) {
	// 读取文件
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open markdown file: %v", err)
	}
	defer file.Close()

	// 使用ParseReader实现
	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析Markdown内容
// 剥离标记语法（标题、强调、链接），保留底层文本，标题文本作为普通句子内容保留
func (p *MarkdownParser) ParseReader(r io.Reader, filename string) (string, error) {
	// 读取文件内容
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown content: %v", err)
	}

	// 创建Markdown解析器
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	mdParser := parser.NewWithExtensions(extensions)

	// 解析Markdown内容
	doc := mdParser.Parse(content)

	// 创建HTML渲染器
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	// 将Markdown转换为HTML
	htmlContent := markdown.Render(doc, renderer)

	// 复用HTML解析器从渲染结果中提取纯文本
	htmlParser := NewHTMLParser()
	plainText, err := htmlParser.ParseReader(strings.NewReader(string(htmlContent)), filename)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from rendered markdown: %v", err)
	}

	return plainText, nil
}
