package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// skippedElements HTML中整体跳过的元素（内容对语料没有意义）
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// blockElements 文本提取时作为段落边界处理的元素
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "br": true, "blockquote": true, "pre": true,
}

// skippedClasses 按class跳过的页面装饰元素
var skippedClasses = map[string]bool{
	"sidebar": true,
	"toc":     true,
}

// HTMLParser HTML文档解析器
type HTMLParser struct{}

// NewHTMLParser 创建一个新的HTML解析器
func NewHTMLParser() Parser {
	return &HTMLParser{}
}

// Parse 解析HTML文件并提取可见文本
func (p *HTMLParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open html file: %v", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析HTML内容
// 优先提取<main>或<article>子树，跳过script/style等不可见元素，按文档顺序拼接文本节点
func (p *HTMLParser) ParseReader(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %v", err)
	}

	// 页面有主内容区时只取主内容区，避免混入导航和侧边栏
	root := findElement(doc, "main")
	if root == nil {
		root = findElement(doc, "article")
	}
	if root == nil {
		root = doc
	}

	var b strings.Builder
	extractVisibleText(root, &b)

	return strings.TrimSpace(b.String()), nil
}

// findElement 深度优先查找第一个指定标签的元素
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// ExtractHTMLTitle 从HTML中提取<title>文本，找不到时返回空字符串
func ExtractHTMLTitle(r io.Reader) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}
	return findTitle(doc)
}

// findTitle 深度优先查找title元素
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return strings.TrimSpace(b.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// extractVisibleText 按文档顺序收集可见文本节点
func extractVisibleText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		if skippedElements[n.Data] {
			return
		}
		if hasSkippedClass(n) {
			return
		}
		// head中除title外没有可见文本
		if n.Data == "head" {
			return
		}
		if blockElements[n.Data] && b.Len() > 0 {
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(text)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractVisibleText(c, b)
	}
}

// hasSkippedClass 判断元素的class属性是否包含需要跳过的装饰类名
func hasSkippedClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if skippedClasses[strings.ToLower(class)] {
				return true
			}
		}
	}
	return false
}
