package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Writer JSON Lines语料库写入器
// 单写者模式：所有记录经由同一个Writer顺序追加，保证输出确定性
// 打开和写入失败都是致命错误，应中止整个运行
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	enc    *json.Encoder
	n      int  // 已写入的记录数
	closed bool // 防止重复关闭
}

// NewWriter 打开输出文件并创建写入器
// 以截断模式打开：用相同输出路径重跑会覆盖而不是追加重复内容
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file %s: %v", path, err)
	}

	buf := bufio.NewWriter(file)
	enc := json.NewEncoder(buf)
	// 语料文本中可能出现<>&，不做HTML转义，保持输出可读
	enc.SetEscapeHTML(false)

	return &Writer{
		file: file,
		buf:  buf,
		enc:  enc,
	}, nil
}

// Write 将一条记录序列化为一行JSON并追加到输出文件
func (w *Writer) Write(record Record) error {
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("failed to write corpus record: %v", err)
	}
	w.n++
	return nil
}

// Count 返回已写入的记录数
func (w *Writer) Count() int {
	return w.n
}

// Close 刷新缓冲并关闭输出文件，重复调用是安全的
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush output file: %v", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %v", err)
	}
	return nil
}
