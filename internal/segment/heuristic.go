package segment

import (
	"strings"
	"unicode"
)

// HeuristicSegmenter 标点启发式句子切分器
// punkt模型不可用时的降级实现：在句末标点后跟空白加大写字母处切分
// 对缩写和小数会产生误切，属于文档化的降级模式
type HeuristicSegmenter struct{}

// NewHeuristicSegmenter 创建启发式切分器
func NewHeuristicSegmenter() *HeuristicSegmenter {
	return &HeuristicSegmenter{}
}

// Segment 将文本切分为句子
func (s *HeuristicSegmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var result []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		// 吞掉连续的句末标点（如省略号、?!组合）
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}

		// 只有标点后是空白且其后首个非空白字符为大写时才视为句子边界
		next := end + 1
		if next >= len(runes) || !unicode.IsSpace(runes[next]) {
			i = end
			continue
		}
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) && !unicode.IsUpper(runes[next]) {
			i = end
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			result = append(result, sentence)
		}
		start = next
		i = end
	}

	// 末尾可能有不以句末标点结束的残余句子
	if last := strings.TrimSpace(string(runes[start:])); last != "" {
		result = append(result, last)
	}

	return result
}

// isTerminal 判断是否为句末标点
func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
