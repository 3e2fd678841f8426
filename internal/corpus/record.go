package corpus

import (
	"fmt"

	"github.com/google/uuid"
)

// recordNamespace 生成记录ID的UUID命名空间
// 固定值保证ID只由来源和分块序号决定，重复运行产生相同的ID
var recordNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Record 语料库中的一条持久化记录，对应一个分块
// 写入后不再修改
type Record struct {
	ID          string `json:"id"`              // 确定性ID，由来源和分块序号派生
	Text        string `json:"text"`            // 分块文本，句子用单个空格拼接
	Source      string `json:"source"`          // 源文件路径或URL
	Title       string `json:"title,omitempty"` // 文档标题（可选）
	ChunkIndex  int    `json:"chunk_index"`     // 分块在文档内的序号
	TotalChunks int    `json:"total_chunks"`    // 该文档的分块总数
}

// RecordID 根据来源和分块序号生成确定性的记录ID
func RecordID(source string, chunkIndex int) string {
	return uuid.NewSHA1(recordNamespace, []byte(fmt.Sprintf("%s#%d", source, chunkIndex))).String()
}
