package document

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// JSONLParser 行式JSON语料解析器
// 每行是一个JSON对象，从指定字段提取待分块的文本
type JSONLParser struct {
	textKey string         // 提取文本的字段名
	logger  *logrus.Logger // 记录跳过行的警告
}

// NewJSONLParser 创建新的JSONL解析器
// textKey为空时使用默认字段名"text"，logger为nil时使用全局日志器
func NewJSONLParser(textKey string, logger *logrus.Logger) Parser {
	if textKey == "" {
		textKey = "text"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &JSONLParser{
		textKey: textKey,
		logger:  logger,
	}
}

// Parse 解析JSONL文件
func (p *JSONLParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open jsonl file: %v", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader逐行解析JSON记录
// 缺少文本字段或JSON非法的行跳过并告警，不中止解析
func (p *JSONLParser) ParseReader(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	// 语料行可能很长，放宽单行缓冲上限
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var documents []string
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record map[string]interface{}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			p.logger.Warnf("%s line %d: invalid JSON, skipped", filename, lineNum)
			continue
		}

		text, _ := record[p.textKey].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			p.logger.Warnf("%s line %d: no %q field or empty, skipped", filename, lineNum, p.textKey)
			continue
		}

		documents = append(documents, p.formatEntry(record, text))
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read jsonl content: %v", err)
	}

	if len(documents) == 0 {
		return "", fmt.Errorf("no usable records found in jsonl")
	}

	return strings.Join(documents, "\n\n"), nil
}

// formatEntry 将单条记录的标题和来源信息折叠进正文
func (p *JSONLParser) formatEntry(record map[string]interface{}, text string) string {
	var b strings.Builder

	if title, ok := record["title"].(string); ok && title != "" {
		b.WriteString(title)
		b.WriteString(". ")
	}
	if url, ok := record["url"].(string); ok && url != "" {
		b.WriteString("Source: ")
		b.WriteString(url)
		b.WriteString(". ")
	} else if source, ok := record["source"].(string); ok && source != "" {
		b.WriteString("Source: ")
		b.WriteString(source)
		b.WriteString(". ")
	}
	b.WriteString(text)

	return b.String()
}
