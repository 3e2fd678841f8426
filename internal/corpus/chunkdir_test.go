package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChunkFileName 测试分块文件命名规则
func TestChunkFileName(t *testing.T) {
	t.Run("single chunk has no suffix", func(t *testing.T) {
		assert.Equal(t, "notes.md", ChunkFileName("notes", 0, 1))
	})

	t.Run("multiple chunks numbered from one", func(t *testing.T) {
		assert.Equal(t, "notes_1.md", ChunkFileName("notes", 0, 3))
		assert.Equal(t, "notes_3.md", ChunkFileName("notes", 2, 3))
	})
}

// TestChunkDirWriter 测试分块文件写入
func TestChunkDirWriter(t *testing.T) {
	t.Run("write document chunks", func(t *testing.T) {
		root := t.TempDir()
		writer, err := NewChunkDirWriter(root)
		require.NoError(t, err)

		written, err := writer.WriteDocument("", "doc", []string{"first chunk", "second chunk"})
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		data, err := os.ReadFile(filepath.Join(root, "doc_1.md"))
		require.NoError(t, err)
		assert.Equal(t, "first chunk", string(data))

		data, err = os.ReadFile(filepath.Join(root, "doc_2.md"))
		require.NoError(t, err)
		assert.Equal(t, "second chunk", string(data))
	})

	t.Run("subdirectory structure preserved", func(t *testing.T) {
		root := t.TempDir()
		writer, err := NewChunkDirWriter(root)
		require.NoError(t, err)

		written, err := writer.WriteDocument(filepath.Join("guides", "intro"), "setup", []string{"only chunk"})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		data, err := os.ReadFile(filepath.Join(root, "guides", "intro", "setup.md"))
		require.NoError(t, err)
		assert.Equal(t, "only chunk", string(data))
	})

	t.Run("missing root created", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "chunks")
		_, err := NewChunkDirWriter(root)
		require.NoError(t, err)

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
