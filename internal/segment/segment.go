package segment

import (
	"github.com/sirupsen/logrus"
)

// Segmenter 句子切分器接口
// 将规范化后的文本切分为有序的句子序列
// 无状态调用，切分结果用单个空格拼接后应能无损还原输入（空白折叠除外）
type Segmenter interface {
	// Segment 将文本切分为句子
	Segment(text string) []string
}

// Config 切分器配置
type Config struct {
	TrainingFile string // 自定义punkt训练数据文件路径（为空时使用内置英文模型）
}

// NewSegmenter 创建句子切分器
// 优先使用punkt统计模型，模型初始化失败时降级为标点启发式切分并告警
// 降级是非致命的，只影响句子边界识别的准确度
func NewSegmenter(cfg Config, logger *logrus.Logger) Segmenter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	punkt, err := NewPunktSegmenter(cfg.TrainingFile)
	if err != nil {
		logger.Warnf("Statistical sentence model unavailable: %v, falling back to heuristic segmentation", err)
		return NewHeuristicSegmenter()
	}

	return punkt
}
