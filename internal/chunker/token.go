package chunker

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// TokenEstimator token数量估算器接口
// 估算必须是文本的确定性函数，同一次运行内保持一致
type TokenEstimator interface {
	// Estimate 估算文本的token数量
	Estimate(text string) int
}

// EstimatorType token估算方式
type EstimatorType string

const (
	// EstimatorWords 按空白分词计数（原始工具的方式）
	EstimatorWords EstimatorType = "words"
	// EstimatorTiktoken 使用tiktoken BPE分词器精确计数
	EstimatorTiktoken EstimatorType = "tiktoken"
)

// NewTokenEstimator 根据类型创建token估算器
func NewTokenEstimator(estimatorType EstimatorType) (TokenEstimator, error) {
	switch estimatorType {
	case EstimatorWords, "":
		return &WordCountEstimator{}, nil
	case EstimatorTiktoken:
		return NewTiktokenEstimator()
	default:
		return nil, fmt.Errorf("unknown token estimator type: %s", estimatorType)
	}
}

// WordCountEstimator 基于空白分词的token估算器
type WordCountEstimator struct{}

// Estimate 返回空白分隔的词数
func (e *WordCountEstimator) Estimate(text string) int {
	return len(strings.Fields(text))
}

// TiktokenEstimator 基于tiktoken BPE编码的token估算器
type TiktokenEstimator struct {
	codec tokenizer.Codec
}

// NewTiktokenEstimator 创建tiktoken估算器，使用cl100k_base编码
func NewTiktokenEstimator() (*TiktokenEstimator, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to get cl100k_base tokenizer: %v", err)
	}
	return &TiktokenEstimator{codec: codec}, nil
}

// Estimate 返回BPE编码后的token数量
func (e *TiktokenEstimator) Estimate(text string) int {
	ids, _, err := e.codec.Encode(text)
	if err != nil {
		// 编码失败时退回词数估算，保证分块流程不中断
		return len(strings.Fields(text))
	}
	return len(ids)
}
