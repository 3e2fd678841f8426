package pipeline

import (
	"github.com/sirupsen/logrus"
)

// SkippedSource 一个被跳过的来源及原因
type SkippedSource struct {
	Location string // 文件路径或URL
	Reason   string // 跳过原因
}

// Summary 一次运行的处理统计
type Summary struct {
	Documents  int             // 成功处理的文档数
	Chunks     int             // 写入的分块总数
	ChunkFiles int             // 导出的分块markdown文件数，未开启导出时为0
	Skipped    []SkippedSource // 跳过的来源列表
}

// Log 在运行结束时输出处理统计
func (s *Summary) Log(logger *logrus.Logger) {
	fields := logrus.Fields{
		"documents": s.Documents,
		"chunks":    s.Chunks,
		"skipped":   len(s.Skipped),
	}
	if s.ChunkFiles > 0 {
		fields["chunk_files"] = s.ChunkFiles
	}
	logger.WithFields(fields).Info("Processing complete")

	for _, skip := range s.Skipped {
		logger.Warnf("Skipped %s: %s", skip.Location, skip.Reason)
	}
}
