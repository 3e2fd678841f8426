package pipeline

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// FetchError URL在重试耗尽后仍不可达
// 该来源被跳过，运行继续
type FetchError struct {
	URL string
	Err error
}

// Error 实现error接口
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap 返回底层错误
func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchConfig 抓取配置
type FetchConfig struct {
	Timeout    time.Duration // 单次请求超时时间
	MaxRetries int           // 最大重试次数
	RetryWait  time.Duration // 重试初始等待时间
	MaxWait    time.Duration // 指数退避的等待上限
	UserAgent  string        // 请求User-Agent
}

// DefaultFetchConfig 返回默认抓取配置
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:    15 * time.Second,
		MaxRetries: 3,
		RetryWait:  500 * time.Millisecond,
		MaxWait:    8 * time.Second,
		UserAgent:  "corpusprep/1.0",
	}
}

// Fetcher 带超时和重试的网页抓取器
type Fetcher struct {
	client *resty.Client
}

// NewFetcher 创建抓取器
// 重试等待时间按指数退避增长，上限为MaxWait
func NewFetcher(cfg FetchConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.MaxWait)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		// 网络错误重试
		if err != nil {
			return true
		}
		if r == nil {
			return false
		}
		// 服务端错误和限流重试，其余状态码不重试
		code := r.StatusCode()
		return code >= 500 || code == 429
	})

	return &Fetcher{client: client}
}

// Fetch 抓取URL内容
// 重试耗尽后返回FetchError，调用方跳过该来源
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}
	return resp.Body(), nil
}
