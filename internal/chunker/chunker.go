package chunker

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Chunk 一个token预算内的句子窗口
// 句子顺序与原文档一致，除开头的重叠句子外是原句子序列的连续子段
type Chunk struct {
	Sentences  []string // 分块包含的句子
	Index      int      // 分块在文档内的序号，从0开始
	TokenCount int      // 分块的token估算值
}

// Text 将分块的句子用单个空格拼接为文本
func (c *Chunk) Text() string {
	return strings.Join(c.Sentences, " ")
}

// Config 分块器配置
type Config struct {
	MaxTokens        int // 每个分块的token预算
	OverlapSentences int // 相邻分块之间重叠的句子数
}

// DefaultConfig 返回默认分块器配置
func DefaultConfig() Config {
	return Config{
		MaxTokens:        500,
		OverlapSentences: 2,
	}
}

// Chunker 句子级语义分块器
// 将有序句子序列组合为token预算内的窗口，相邻窗口间保留可配置的句子重叠
type Chunker struct {
	config    Config
	estimator TokenEstimator
	logger    *logrus.Logger
}

// NewChunker 创建新的分块器
func NewChunker(config Config, estimator TokenEstimator, logger *logrus.Logger) *Chunker {
	if estimator == nil {
		estimator = &WordCountEstimator{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Chunker{
		config:    config,
		estimator: estimator,
		logger:    logger,
	}
}

// Chunk 将一个文档的句子序列分块
// 句子永远不会被从中间切开；单个句子超出预算时单独成块并记录告警
func (c *Chunker) Chunk(sentences []string) []Chunk {
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var buffer []string
	bufferTokens := 0

	emit := func() {
		chunks = append(chunks, Chunk{
			Sentences:  append([]string(nil), buffer...),
			Index:      len(chunks),
			TokenCount: bufferTokens,
		})
	}

	for _, sentence := range sentences {
		sentenceTokens := c.estimator.Estimate(sentence)

		// 单个句子独自超出预算：单独成块，不拆分句子
		if sentenceTokens > c.config.MaxTokens && len(buffer) == 0 {
			c.logger.Warnf("Sentence with %d tokens exceeds budget of %d, emitting as its own chunk",
				sentenceTokens, c.config.MaxTokens)
			buffer = []string{sentence}
			bufferTokens = sentenceTokens
			emit()
			buffer = nil
			bufferTokens = 0
			continue
		}

		if bufferTokens+sentenceTokens > c.config.MaxTokens && len(buffer) > 0 {
			emit()

			// 用上一个分块末尾的句子作为新分块的开头，保持上下文连续
			// 重叠句子计入新分块的token预算，不是免费的
			overlap := c.config.OverlapSentences
			if overlap > len(buffer) {
				overlap = len(buffer)
			}
			if overlap > 0 {
				buffer = append([]string(nil), buffer[len(buffer)-overlap:]...)
				bufferTokens = 0
				for _, s := range buffer {
					bufferTokens += c.estimator.Estimate(s)
				}
			} else {
				buffer = nil
				bufferTokens = 0
			}
		}

		buffer = append(buffer, sentence)
		bufferTokens += sentenceTokens
	}

	// 结尾的非空缓冲作为最后一个分块
	if len(buffer) > 0 {
		emit()
	}

	return chunks
}
