package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Chunk   ChunkConfig   `mapstructure:"chunk"`
	Segment SegmentConfig `mapstructure:"segment"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Log     LogConfig     `mapstructure:"log"`
}

// ChunkConfig 分块配置
type ChunkConfig struct {
	MaxTokens        int    `mapstructure:"max_tokens"`        // 每个分块的token预算
	OverlapSentences int    `mapstructure:"overlap_sentences"` // 相邻分块之间重叠的句子数
	Estimator        string `mapstructure:"estimator"`         // token估算方式：words 或 tiktoken
	JSONLKey         string `mapstructure:"jsonl_key"`         // JSONL源中文本字段的键名
}

// SegmentConfig 句子切分配置
type SegmentConfig struct {
	TrainingFile string `mapstructure:"training_file"` // 自定义punkt训练数据文件路径（为空时使用内置英文模型）
}

// FetchConfig URL抓取配置
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`     // 单次请求超时时间
	MaxRetries int           `mapstructure:"max_retries"` // 最大重试次数
	RetryWait  time.Duration `mapstructure:"retry_wait"`  // 重试初始等待时间
	MaxWait    time.Duration `mapstructure:"max_wait"`    // 重试最大等待时间（指数退避上限）
	UserAgent  string        `mapstructure:"user_agent"`  // 请求User-Agent
}

// WorkerConfig 并发处理配置
type WorkerConfig struct {
	Count int `mapstructure:"count"` // 并发处理文档的worker数量
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`       // 日志级别
	File       string `mapstructure:"file"`        // 日志文件路径（为空时只输出到stderr）
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // 单个日志文件最大大小
	MaxBackups int    `mapstructure:"max_backups"` // 保留的旧日志文件数量
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	v := viper.New()
	setDefaults(v)

	// 配置文件是可选的，只在指定时读取
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	// 支持环境变量覆盖，例如 CORPUSPREP_CHUNK_MAX_TOKENS
	v.SetEnvPrefix("corpusprep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	return &config, nil
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 分块默认配置
	v.SetDefault("chunk.max_tokens", 500)
	v.SetDefault("chunk.overlap_sentences", 2)
	v.SetDefault("chunk.estimator", "words")
	v.SetDefault("chunk.jsonl_key", "text")

	// 句子切分默认配置
	v.SetDefault("segment.training_file", "")

	// URL抓取默认配置
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.retry_wait", "500ms")
	v.SetDefault("fetch.max_wait", "8s")
	v.SetDefault("fetch.user_agent", "corpusprep/1.0")

	// worker默认配置
	v.SetDefault("worker.count", 4)

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}
