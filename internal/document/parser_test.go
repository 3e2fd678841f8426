package document

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func createTempFile(t *testing.T, content, ext string) string {
	tmpFile, err := os.CreateTemp("", "corpusprep-test-*"+ext)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func createTempPDF(t *testing.T, text string) string {
	tmpFile, err := os.CreateTemp("", "corpusprep-test-*.pdf")
	if err != nil {
		t.Fatalf("Failed to create temp PDF file: %v", err)
	}
	defer tmpFile.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, text, "", "", false)
	if err := pdf.Output(tmpFile); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}
	return tmpFile.Name()
}

func TestPlainTextParser(t *testing.T) {
	content := "Hello, this is a plain text file.\nSecond line."
	file := createTempFile(t, content, ".txt")
	defer os.Remove(file)

	parser := NewPlainTextParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("PlainTextParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "plain text file") {
		t.Errorf("Expected content not found in parsed text: %s", text)
	}
}

func TestMarkdownParser(t *testing.T) {
	content := "# Title\n\nThis is a **markdown** file.\n\n- Item 1\n- Item 2"
	file := createTempFile(t, content, ".md")
	defer os.Remove(file)

	parser := NewMarkdownParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("MarkdownParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "markdown file") {
		t.Errorf("Expected content not found in parsed text: %s", text)
	}
	if !strings.Contains(text, "Item 1") {
		t.Errorf("Expected list item not found in parsed text: %s", text)
	}
	// 标题文本作为普通内容保留，标记语法被剥离
	if !strings.Contains(text, "Title") {
		t.Errorf("Expected heading text in parsed text: %s", text)
	}
	if strings.Contains(text, "**") || strings.Contains(text, "# ") {
		t.Errorf("Markup syntax should be stripped: %s", text)
	}
}

func TestPDFParser(t *testing.T) {
	content := "This is a PDF test.\nSecond line."
	file := createTempPDF(t, content)
	defer os.Remove(file)

	parser := NewPDFParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("PDFParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "PDF test") {
		t.Errorf("Expected content not found in parsed PDF text: %s", text)
	}
}

func TestPDFParserMalformed(t *testing.T) {
	file := createTempFile(t, "this is not a pdf at all", ".pdf")
	defer os.Remove(file)

	parser := NewPDFParser()
	if _, err := parser.Parse(file); err == nil {
		t.Error("Expected error for malformed PDF")
	}
}

func TestHTMLParser(t *testing.T) {
	content := `<html>
<head><title>Test Page</title><style>body { color: red; }</style></head>
<body>
<script>console.log("hidden");</script>
<h1>Main Heading</h1>
<p>First paragraph with visible text.</p>
<p>Second paragraph.</p>
</body>
</html>`
	file := createTempFile(t, content, ".html")
	defer os.Remove(file)

	parser := NewHTMLParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("HTMLParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "First paragraph with visible text") {
		t.Errorf("Expected paragraph text not found: %s", text)
	}
	// 标题作为纯文本保留
	if !strings.Contains(text, "Main Heading") {
		t.Errorf("Expected heading text not found: %s", text)
	}
	// script和style内容不可见
	if strings.Contains(text, "console.log") || strings.Contains(text, "color: red") {
		t.Errorf("Script/style content should be stripped: %s", text)
	}

	title := ExtractHTMLTitle(strings.NewReader(content))
	if title != "Test Page" {
		t.Errorf("Expected title 'Test Page', got %q", title)
	}
}

func TestHTMLParserMainContent(t *testing.T) {
	// 有<main>时只取主内容区，导航和侧边栏不进入文本
	content := `<html>
<body>
<div class="sidebar">Sidebar links here.</div>
<main>
<p>Body text inside main.</p>
<div class="toc">Table of contents entries.</div>
</main>
<footer>Footer boilerplate.</footer>
</body>
</html>`
	parser := NewHTMLParser()
	text, err := parser.ParseReader(strings.NewReader(content), "page.html")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if !strings.Contains(text, "Body text inside main") {
		t.Errorf("Expected main content not found: %s", text)
	}
	if strings.Contains(text, "Sidebar links") || strings.Contains(text, "Footer boilerplate") {
		t.Errorf("Content outside <main> should be excluded: %s", text)
	}
	// class选择器裁掉的装饰元素即使在main内部也不可见
	if strings.Contains(text, "Table of contents") {
		t.Errorf("Elements with toc class should be stripped: %s", text)
	}
}

func TestHTMLParserArticleFallback(t *testing.T) {
	content := `<html><body>
<nav>Nav menu.</nav>
<article><p>Article body text.</p></article>
</body></html>`
	parser := NewHTMLParser()
	text, err := parser.ParseReader(strings.NewReader(content), "page.html")
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if !strings.Contains(text, "Article body text") {
		t.Errorf("Expected article content not found: %s", text)
	}
	if strings.Contains(text, "Nav menu") {
		t.Errorf("Content outside <article> should be excluded: %s", text)
	}
}

func TestParserFactory(t *testing.T) {
	txtFile := createTempFile(t, "plain text", ".txt")
	defer os.Remove(txtFile)
	mdFile := createTempFile(t, "# Markdown", ".md")
	defer os.Remove(mdFile)
	htmlFile := createTempFile(t, "<html><body><p>Web content</p></body></html>", ".html")
	defer os.Remove(htmlFile)
	pdfFile := createTempPDF(t, "PDF content")
	defer os.Remove(pdfFile)

	tests := []struct {
		file     string
		expected string
	}{
		{txtFile, "plain text"},
		{mdFile, "Markdown"},
		{htmlFile, "Web content"},
		{pdfFile, "PDF content"},
	}

	for _, tt := range tests {
		parser, err := ParserFactory(tt.file)
		if err != nil {
			t.Fatalf("ParserFactory failed for %s: %v", tt.file, err)
		}
		text, err := parser.Parse(tt.file)
		if err != nil {
			t.Fatalf("Parser.Parse failed for %s: %v", tt.file, err)
		}
		if !strings.Contains(text, tt.expected) {
			t.Errorf("Expected '%s' in parsed text, got: %s", tt.expected, text)
		}
	}
}

func TestParserFactoryUnsupported(t *testing.T) {
	_, err := ParserFactory("document.xyz")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path     string
		expected ContentType
	}{
		{"index.html", HTML},
		{"page.HTM", HTML},
		{"report.pdf", PDF},
		{"readme.md", Markdown},
		{"readme.markdown", Markdown},
		{"notes.txt", PlainText},
		{"corpus.jsonl", JSONL},
		{"archive.zip", Unknown},
		{"noext", Unknown},
	}

	for _, tt := range tests {
		if got := DetectContentType(tt.path); got != tt.expected {
			t.Errorf("DetectContentType(%s) = %s, expected %s", tt.path, got, tt.expected)
		}
	}
}
