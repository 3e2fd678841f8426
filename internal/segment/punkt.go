package segment

import (
	"fmt"
	"os"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// PunktSegmenter 基于punkt统计模型的句子切分器
// 通过缩写词和搭配频率统计避免在缩写、首字母、小数、省略号处误切
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter 创建punkt切分器
// trainingFile为空时使用内置英文训练数据，否则从文件加载
// 初始化是显式且幂等的，不依赖任何进程级全局状态
func NewPunktSegmenter(trainingFile string) (*PunktSegmenter, error) {
	if trainingFile == "" {
		tokenizer, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load english training data: %v", err)
		}
		return &PunktSegmenter{tokenizer: tokenizer}, nil
	}

	data, err := os.ReadFile(trainingFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read training file %s: %v", trainingFile, err)
	}

	training, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data from %s: %v", trainingFile, err)
	}

	return &PunktSegmenter{tokenizer: sentences.NewSentenceTokenizer(training)}, nil
}

// Segment 将文本切分为句子
func (s *PunktSegmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := s.tokenizer.Tokenize(text)

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		sentence := strings.TrimSpace(token.Text)
		if sentence != "" {
			result = append(result, sentence)
		}
	}

	return result
}
