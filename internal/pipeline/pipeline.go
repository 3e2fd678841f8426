package pipeline

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/rag-corpus-prep/internal/chunker"
	"github.com/fyerfyer/rag-corpus-prep/internal/corpus"
	"github.com/fyerfyer/rag-corpus-prep/internal/document"
	"github.com/fyerfyer/rag-corpus-prep/internal/segment"
)

// Config 流水线配置
type Config struct {
	JSONLKey string // JSONL源中文本字段的键名
	Workers  int    // 并发处理文档的worker数量
	ChunkDir string // 可选的分块markdown文件输出目录，为空时不导出
}

// Pipeline 语料准备流水线
// 解析 -> 规范化 -> 句子切分 -> 分块 -> 写入，单向无反馈
// 文档之间没有共享可变状态，按文档并行处理后由单个写入者按来源顺序落盘
type Pipeline struct {
	config    Config
	segmenter segment.Segmenter
	chunker   *chunker.Chunker
	fetcher   *Fetcher
	logger    *logrus.Logger
}

// NewPipeline 创建流水线
func NewPipeline(config Config, segmenter segment.Segmenter, chk *chunker.Chunker, fetcher *Fetcher, logger *logrus.Logger) *Pipeline {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.JSONLKey == "" {
		config.JSONLKey = "text"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		config:    config,
		segmenter: segmenter,
		chunker:   chk,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// taskResult 单个任务的处理结果
// records和skipped只有一个非空，chunkStem和chunkRelDir用于分块文件导出
type taskResult struct {
	records     []corpus.Record
	skipped     *SkippedSource
	chunkStem   string
	chunkRelDir string
}

// Run 执行一次完整的语料准备运行
// 每个文档的失败只记录并跳过；输出文件的打开和写入失败是致命的
func (p *Pipeline) Run(source, output string) (*Summary, error) {
	tasks, err := Resolve(source)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no documents found in %s", source)
	}

	// 先打开输出文件，路径不可写时尽早失败
	writer, err := corpus.NewWriter(output)
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	var chunkWriter *corpus.ChunkDirWriter
	if p.config.ChunkDir != "" {
		chunkWriter, err = corpus.NewChunkDirWriter(p.config.ChunkDir)
		if err != nil {
			return nil, err
		}
	}

	results := p.processTasks(tasks)

	summary := &Summary{}
	for _, result := range results {
		if result.skipped != nil {
			summary.Skipped = append(summary.Skipped, *result.skipped)
			continue
		}
		for _, record := range result.records {
			if err := writer.Write(record); err != nil {
				return nil, err
			}
		}
		summary.Documents++
		summary.Chunks += len(result.records)

		// 分块文件写入失败只记录，不中止整个运行
		if chunkWriter != nil {
			texts := make([]string, 0, len(result.records))
			for _, record := range result.records {
				texts = append(texts, record.Text)
			}
			written, err := chunkWriter.WriteDocument(result.chunkRelDir, result.chunkStem, texts)
			summary.ChunkFiles += written
			if err != nil {
				p.logger.Errorf("Chunk file export failed: %v", err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return summary, nil
}

// processTasks 处理所有任务，结果按任务顺序返回
// worker只负责计算并返回分块列表，不直接写输出，保证输出顺序确定
func (p *Pipeline) processTasks(tasks []Task) []taskResult {
	results := make([]taskResult, len(tasks))

	if p.config.Workers == 1 || len(tasks) == 1 {
		for i, task := range tasks {
			results[i] = p.processTask(task)
		}
		return results
	}

	pool, err := ants.NewPool(p.config.Workers)
	if err != nil {
		p.logger.Warnf("Failed to create worker pool: %v, processing sequentially", err)
		for i, task := range tasks {
			results[i] = p.processTask(task)
		}
		return results
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = p.processTask(task)
		}); err != nil {
			// 提交失败时退回当前goroutine内执行
			results[i] = p.processTask(task)
			wg.Done()
		}
	}
	wg.Wait()

	return results
}

// processTask 处理单个来源：提取文档、规范化、切句、分块
func (p *Pipeline) processTask(task Task) taskResult {
	var doc *document.Document
	var err error

	switch task.Kind {
	case SourceURL:
		doc, err = p.extractURL(task.Location)
	default:
		doc, err = p.extractFile(task.Location)
	}
	if err != nil {
		p.logger.Warnf("Skipping %s: %v", task.Location, err)
		return taskResult{skipped: &SkippedSource{Location: task.Location, Reason: err.Error()}}
	}

	doc.Content = document.Normalize(doc.Content)
	if doc.Content == "" {
		p.logger.Warnf("Skipping %s: no text content", task.Location)
		return taskResult{skipped: &SkippedSource{Location: task.Location, Reason: "no text content"}}
	}

	sentences := p.segmenter.Segment(doc.Content)
	if len(sentences) == 0 {
		p.logger.Warnf("Skipping %s: no sentences found", task.Location)
		return taskResult{skipped: &SkippedSource{Location: task.Location, Reason: "no sentences found"}}
	}

	chunks := p.chunker.Chunk(sentences)

	records := make([]corpus.Record, 0, len(chunks))
	for _, chunk := range chunks {
		records = append(records, corpus.Record{
			ID:          corpus.RecordID(doc.Source, chunk.Index),
			Text:        chunk.Text(),
			Source:      doc.Source,
			Title:       doc.Title,
			ChunkIndex:  chunk.Index,
			TotalChunks: len(chunks),
		})
	}

	p.logger.Debugf("Processed %s: %d sentences, %d chunks", task.Location, len(sentences), len(chunks))
	return taskResult{
		records:     records,
		chunkStem:   chunkStem(task),
		chunkRelDir: task.RelDir,
	}
}

// chunkStem 生成分块文件名主干，URL用主机名中的点替换为下划线
func chunkStem(task Task) string {
	if task.Kind == SourceURL {
		if u, err := url.Parse(task.Location); err == nil && u.Host != "" {
			return strings.ReplaceAll(u.Host, ".", "_")
		}
		return "url"
	}
	return fileStem(task.Location)
}

// extractFile 解析本地文件为文档
func (p *Pipeline) extractFile(path string) (*document.Document, error) {
	contentType := document.DetectContentType(path)

	parser, err := document.ParserFactory(path,
		document.WithJSONLKey(p.config.JSONLKey),
		document.WithParserLogger(p.logger))
	if err != nil {
		return nil, err
	}

	// HTML文件的标题取自<title>，其余格式用文件名主干
	if contentType == document.HTML {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, document.NewParseError(path, err)
		}
		text, err := parser.ParseReader(bytes.NewReader(data), path)
		if err != nil {
			return nil, document.NewParseError(path, err)
		}
		title := document.ExtractHTMLTitle(bytes.NewReader(data))
		if title == "" {
			title = fileStem(path)
		}
		return &document.Document{Content: text, Title: title, Source: path, Type: contentType}, nil
	}

	text, err := parser.Parse(path)
	if err != nil {
		return nil, document.NewParseError(path, err)
	}
	return &document.Document{Content: text, Title: fileStem(path), Source: path, Type: contentType}, nil
}

// extractURL 抓取网页并提取为文档
func (p *Pipeline) extractURL(location string) (*document.Document, error) {
	body, err := p.fetcher.Fetch(location)
	if err != nil {
		return nil, err
	}

	parser := document.NewHTMLParser()
	text, err := parser.ParseReader(bytes.NewReader(body), location)
	if err != nil {
		return nil, document.NewParseError(location, err)
	}

	title := document.ExtractHTMLTitle(bytes.NewReader(body))
	if title == "" {
		if u, err := url.Parse(location); err == nil {
			title = u.Host
		}
	}

	return &document.Document{Content: text, Title: title, Source: location, Type: document.HTML}, nil
}

// fileStem 返回去掉扩展名的文件名
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
