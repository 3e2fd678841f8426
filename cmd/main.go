package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	prepconfig "github.com/fyerfyer/rag-corpus-prep/config"
	"github.com/fyerfyer/rag-corpus-prep/internal/chunker"
	"github.com/fyerfyer/rag-corpus-prep/internal/pipeline"
	"github.com/fyerfyer/rag-corpus-prep/internal/segment"
)

// cliConfig 命令行配置选项
type cliConfig struct {
	Source           string // 输入来源：目录、文件或URL
	Output           string // 输出JSONL文件路径
	MaxTokens        int    // 每个分块的token预算
	OverlapSentences int    // 相邻分块之间重叠的句子数
	JSONLKey         string // JSONL源中文本字段的键名
	ChunkDir         string // 可选的分块markdown文件输出目录
	Estimator        string // token估算方式 (words/tiktoken)
	Workers          int    // 并发worker数量
	SegmentTraining  string // 自定义punkt训练数据文件
	LogLevel         string // 日志级别
	LogFile          string // 日志文件路径
	ConfigFile       string // 配置文件路径
}

func main() {
	cfg, setFlags := parseFlags()

	// 加载配置文件(如果指定)，命令行上显式设置的参数优先
	// 抓取和日志轮转参数只能通过配置文件调整
	fetchCfg := pipeline.DefaultFetchConfig()
	rotateCfg := rotationConfig{MaxSizeMB: 10, MaxBackups: 3}
	if cfg.ConfigFile != "" {
		appConfig, err := prepconfig.Load(cfg.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config file: %v\n", err)
			os.Exit(1)
		}
		updateConfigFromFile(&cfg, appConfig, setFlags)
		fetchCfg = pipeline.FetchConfig{
			Timeout:    appConfig.Fetch.Timeout,
			MaxRetries: appConfig.Fetch.MaxRetries,
			RetryWait:  appConfig.Fetch.RetryWait,
			MaxWait:    appConfig.Fetch.MaxWait,
			UserAgent:  appConfig.Fetch.UserAgent,
		}
		rotateCfg = rotationConfig{
			MaxSizeMB:  appConfig.Log.MaxSizeMB,
			MaxBackups: appConfig.Log.MaxBackups,
		}
	}

	// 初始化日志
	logger := setupLogger(cfg.LogLevel, cfg.LogFile, rotateCfg)
	logger.Infof("Preparing corpus from %s", cfg.Source)

	// 创建token估算器
	estimator, err := chunker.NewTokenEstimator(chunker.EstimatorType(cfg.Estimator))
	if err != nil {
		logger.Fatalf("Failed to initialize token estimator: %v", err)
	}

	// 创建句子切分器（模型不可用时内部降级为启发式切分）
	segmenter := segment.NewSegmenter(segment.Config{
		TrainingFile: cfg.SegmentTraining,
	}, logger)

	// 创建分块器
	chk := chunker.NewChunker(chunker.Config{
		MaxTokens:        cfg.MaxTokens,
		OverlapSentences: cfg.OverlapSentences,
	}, estimator, logger)

	// 创建URL抓取器
	fetcher := pipeline.NewFetcher(fetchCfg)

	// 组装流水线并执行
	pipe := pipeline.NewPipeline(pipeline.Config{
		JSONLKey: cfg.JSONLKey,
		Workers:  cfg.Workers,
		ChunkDir: cfg.ChunkDir,
	}, segmenter, chk, fetcher, logger)

	summary, err := pipe.Run(cfg.Source, cfg.Output)
	if err != nil {
		logger.Fatalf("Run failed: %v", err)
	}

	summary.Log(logger)
	logger.Infof("Corpus saved: %s (%d records)", cfg.Output, summary.Chunks)
}

// parseFlags 解析命令行参数
// 返回配置和显式出现在命令行上的flag名集合
func parseFlags() (cliConfig, map[string]bool) {
	cfg := cliConfig{}

	flag.IntVar(&cfg.MaxTokens, "max-tokens", 500, "Approximate maximum tokens per chunk")
	flag.IntVar(&cfg.OverlapSentences, "overlap-sentences", 2, "Number of sentences to overlap between chunks")
	flag.StringVar(&cfg.JSONLKey, "jsonl-key", "text", "JSON key to extract text from in .jsonl files")
	flag.StringVar(&cfg.ChunkDir, "chunk-dir", "", "Optional directory to export each chunk as a .md file")
	flag.StringVar(&cfg.Estimator, "estimator", "words", "Token estimation method (words/tiktoken)")
	flag.IntVar(&cfg.Workers, "workers", 4, "Number of documents processed in parallel")
	flag.StringVar(&cfg.SegmentTraining, "segment-training", "", "Path to custom punkt training data file")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file path (stderr only if empty)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to config file")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <source> <output.jsonl>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Source can be a directory, a file (.html/.htm/.pdf/.md/.txt/.jsonl), or a URL.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.Source = flag.Arg(0)
	cfg.Output = flag.Arg(1)

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	return cfg, setFlags
}

// updateConfigFromFile 用配置文件的值填充未在命令行上设置的参数
func updateConfigFromFile(cfg *cliConfig, appConfig *prepconfig.Config, setFlags map[string]bool) {
	if !setFlags["max-tokens"] {
		cfg.MaxTokens = appConfig.Chunk.MaxTokens
	}
	if !setFlags["overlap-sentences"] {
		cfg.OverlapSentences = appConfig.Chunk.OverlapSentences
	}
	if !setFlags["jsonl-key"] {
		cfg.JSONLKey = appConfig.Chunk.JSONLKey
	}
	if !setFlags["estimator"] {
		cfg.Estimator = appConfig.Chunk.Estimator
	}
	if !setFlags["workers"] {
		cfg.Workers = appConfig.Worker.Count
	}
	if !setFlags["segment-training"] {
		cfg.SegmentTraining = appConfig.Segment.TrainingFile
	}
	if !setFlags["log-level"] {
		cfg.LogLevel = appConfig.Log.Level
	}
	if !setFlags["log-file"] {
		cfg.LogFile = appConfig.Log.File
	}
}

// rotationConfig 日志文件轮转配置
type rotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
}

// setupLogger 设置日志系统
func setupLogger(level, file string, rotate rotationConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// 指定日志文件时同时写入文件和stderr，文件按大小轮转
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    rotate.MaxSizeMB,
			MaxBackups: rotate.MaxBackups,
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	return logger
}
