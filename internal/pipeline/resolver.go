package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceKind 输入源的种类
type SourceKind string

const (
	// SourceFile 本地单文件
	SourceFile SourceKind = "file"
	// SourceURL 远程网页
	SourceURL SourceKind = "url"
)

// Task 一个待处理的文档来源
type Task struct {
	Kind     SourceKind // 来源种类
	Location string     // 文件路径或URL
	RelDir   string     // 目录源下文件相对源根目录的子目录，其余来源为空
}

// Resolve 将输入参数解析为有序的任务列表
// 目录递归展开为其中的所有文件，路径按字典序排序保证单次运行内顺序稳定
// URL和单文件各解析为一个任务
func Resolve(source string) ([]Task, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return []Task{{Kind: SourceURL, Location: source}}, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source %s: %v", source, err)
	}

	if !info.IsDir() {
		return []Task{{Kind: SourceFile, Location: source}}, nil
	}

	var paths []string
	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %v", source, err)
	}

	sort.Strings(paths)

	tasks := make([]Task, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(source, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		relDir := filepath.Dir(rel)
		if relDir == "." {
			relDir = ""
		}
		tasks = append(tasks, Task{Kind: SourceFile, Location: path, RelDir: relDir})
	}
	return tasks, nil
}
