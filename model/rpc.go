package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/rushteam/feedrank/core"
)

// RPCPredictor 通过 HTTP 调用外部互动预估服务。
// 调用由熔断器保护：连续失败达到阈值后快速失败（UNAVAILABLE），不做重试。
//
// 请求格式（JSON）：
//
//	{"post": {"id": "1", "author_id": "alice", ...}, "follows_author": true}
//
// 响应格式（JSON）：
//
//	{"predictions": {"favorite": 0.12, "reply": 0.03, ...}}
type RPCPredictor struct {
	Endpoint string // 例如 "http://localhost:8080/predict"
	Timeout  time.Duration
	Client   *http.Client

	breaker *gobreaker.CircuitBreaker[core.Predictions]
}

// RPCOption RPCPredictor 配置选项
type RPCOption func(*rpcOptions)

type rpcOptions struct {
	failureThreshold uint32
	openTimeout      time.Duration
	client           *http.Client
}

// WithFailureThreshold 设置连续失败多少次后熔断
func WithFailureThreshold(n uint32) RPCOption {
	return func(o *rpcOptions) { o.failureThreshold = n }
}

// WithOpenTimeout 设置熔断打开后多久进入半开状态
func WithOpenTimeout(d time.Duration) RPCOption {
	return func(o *rpcOptions) { o.openTimeout = d }
}

// WithHTTPClient 指定 http.Client（测试时注入）
func WithHTTPClient(c *http.Client) RPCOption {
	return func(o *rpcOptions) { o.client = c }
}

func NewRPCPredictor(endpoint string, timeout time.Duration, opts ...RPCOption) *RPCPredictor {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	o := &rpcOptions{
		failureThreshold: 5,
		openTimeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	client := o.client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	threshold := o.failureThreshold
	return &RPCPredictor{
		Endpoint: endpoint,
		Timeout:  timeout,
		Client:   client,
		breaker: gobreaker.NewCircuitBreaker[core.Predictions](gobreaker.Settings{
			Name:    "predictor.rpc",
			Timeout: o.openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
		}),
	}
}

func (p *RPCPredictor) Name() string { return "rpc" }

func (p *RPCPredictor) Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	if post == nil {
		return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "post is nil")
	}
	pred, err := p.breaker.Execute(func() (core.Predictions, error) {
		return p.call(ctx, post, followsAuthor)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, core.WrapDomainError(core.ModulePredictor, core.ErrorCodeUnavailable, "predictor circuit open", err)
	}
	return pred, err
}

// State 返回熔断器状态（用于观测）。
func (p *RPCPredictor) State() gobreaker.State {
	return p.breaker.State()
}

func (p *RPCPredictor) call(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	jsonData, err := json.Marshal(map[string]any{
		"post":           post,
		"follows_author": followsAuthor,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("rpc error: status=%d, read body failed: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("rpc error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Predictions map[string]float64 `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Predictions) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	pred := make(core.Predictions, len(result.Predictions))
	for k, v := range result.Predictions {
		a, err := core.ParseActionKind(k)
		if err != nil {
			return nil, err
		}
		pred[a] = v
	}
	return pred, nil
}

var _ Predictor = (*RPCPredictor)(nil)
