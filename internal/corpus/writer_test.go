package corpus

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordID 记录ID是来源和序号的确定性函数
func TestRecordID(t *testing.T) {
	id1 := RecordID("docs/a.txt", 0)
	id2 := RecordID("docs/a.txt", 0)
	assert.Equal(t, id1, id2)

	// 不同来源或序号产生不同ID
	assert.NotEqual(t, id1, RecordID("docs/a.txt", 1))
	assert.NotEqual(t, id1, RecordID("docs/b.txt", 0))
}

// TestWriter 测试语料写入和回读
func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	writer, err := NewWriter(path)
	require.NoError(t, err)

	records := []Record{
		{ID: RecordID("a.txt", 0), Text: "First chunk text.", Source: "a.txt", Title: "a", ChunkIndex: 0, TotalChunks: 2},
		{ID: RecordID("a.txt", 1), Text: "Second chunk text.", Source: "a.txt", Title: "a", ChunkIndex: 1, TotalChunks: 2},
	}
	for _, record := range records {
		require.NoError(t, writer.Write(record))
	}
	assert.Equal(t, 2, writer.Count())
	require.NoError(t, writer.Close())

	// 每行都是合法JSON且包含所有必需字段
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var got []Record
	for scanner.Scan() {
		var record Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		assert.NotEmpty(t, record.ID)
		assert.NotEmpty(t, record.Text)
		assert.NotEmpty(t, record.Source)
		got = append(got, record)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, records, got)
}

// TestWriterTruncates 重新打开同一路径会覆盖旧内容
func TestWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	writer, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(Record{ID: "1", Text: "old", Source: "a"}))
	require.NoError(t, writer.Write(Record{ID: "2", Text: "old", Source: "a"}))
	require.NoError(t, writer.Close())

	writer, err = NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(Record{ID: "3", Text: "new", Source: "b"}))
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "new")
	assert.NotContains(t, string(data), "old")
}

// TestWriterNoHTMLEscape 文本中的特殊字符不做HTML转义
func TestWriterNoHTMLEscape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	writer, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Write(Record{ID: "1", Text: "a < b && c > d", Source: "a"}))
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a < b && c > d")
}

// TestWriterBadPath 输出路径不可写时立即失败
func TestWriterBadPath(t *testing.T) {
	_, err := NewWriter("/nonexistent-dir/corpus.jsonl")
	assert.Error(t, err)
}

// TestWriterDoubleClose 重复关闭是安全的
func TestWriterDoubleClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")

	writer, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.NoError(t, writer.Close())
}
