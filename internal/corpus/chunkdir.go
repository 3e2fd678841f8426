package corpus

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChunkDirWriter 将每个分块写为输出目录下的独立markdown文件
// 目录源的子目录结构在输出目录下原样保留
type ChunkDirWriter struct {
	root string // 分块文件的输出根目录
}

// NewChunkDirWriter 创建分块文件写入器，输出根目录不存在时创建
func NewChunkDirWriter(root string) (*ChunkDirWriter, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chunk directory %s: %v", root, err)
	}
	return &ChunkDirWriter{root: root}, nil
}

// WriteDocument 写出一个文档的全部分块文件，返回成功写入的文件数
// 单个分块只有一个时文件名不带序号后缀，多个时从_1开始编号
func (w *ChunkDirWriter) WriteDocument(relDir, stem string, texts []string) (int, error) {
	dir := filepath.Join(w.root, relDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create chunk subdirectory %s: %v", dir, err)
	}

	written := 0
	for i, text := range texts {
		path := filepath.Join(dir, ChunkFileName(stem, i, len(texts)))
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return written, fmt.Errorf("failed to write chunk file %s: %v", path, err)
		}
		written++
	}
	return written, nil
}

// ChunkFileName 生成分块文件名
func ChunkFileName(stem string, index, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s_%d.md", stem, index+1)
	}
	return stem + ".md"
}
