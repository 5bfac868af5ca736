package model

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/feedrank/core"
)

// StorePredictor 从 KV 存储读取离线预计算的预测向量。
//
// Key 格式：
//   - <KeyPrefix><post_id>:follow  关注作者时优先读取
//   - <KeyPrefix><post_id>         缺省向量
//
// Value 为 JSON：{"favorite": 0.12, "reply": 0.03, ...}
type StorePredictor struct {
	Store     core.Store
	KeyPrefix string
}

// DefaultPredictionKeyPrefix 默认 key 前缀
const DefaultPredictionKeyPrefix = "feedrank:pred:"

func NewStorePredictor(store core.Store, keyPrefix string) *StorePredictor {
	if keyPrefix == "" {
		keyPrefix = DefaultPredictionKeyPrefix
	}
	return &StorePredictor{Store: store, KeyPrefix: keyPrefix}
}

func (p *StorePredictor) Name() string { return "store." + p.Store.Name() }

// PredictionKey 返回 post 的存储 key。
func (p *StorePredictor) PredictionKey(postID string, followsAuthor bool) string {
	if followsAuthor {
		return p.KeyPrefix + postID + ":follow"
	}
	return p.KeyPrefix + postID
}

func (p *StorePredictor) Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	if post == nil {
		return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "post is nil")
	}

	keys := []string{p.PredictionKey(post.ID, false)}
	if followsAuthor {
		keys = []string{p.PredictionKey(post.ID, true), keys[0]}
	}
	for _, key := range keys {
		data, err := p.Store.Get(ctx, key)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("store get %s: %w", key, err)
		}
		return DecodePredictions(data)
	}
	return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeNotFound, fmt.Sprintf("no stored predictions for post %q", post.ID))
}

// Put 写入预测向量，供离线任务或测试使用。
func (p *StorePredictor) Put(ctx context.Context, postID string, followsAuthor bool, pred core.Predictions, ttl ...int) error {
	data, err := EncodePredictions(pred)
	if err != nil {
		return err
	}
	return p.Store.Set(ctx, p.PredictionKey(postID, followsAuthor), data, ttl...)
}

// EncodePredictions 将预测向量编码为 JSON。
func EncodePredictions(pred core.Predictions) ([]byte, error) {
	raw := make(map[string]float64, len(pred))
	for a, v := range pred {
		raw[string(a)] = v
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal predictions: %w", err)
	}
	return data, nil
}

// DecodePredictions 解析 JSON 预测向量，未知 action 返回 INVALID_INPUT。
func DecodePredictions(data []byte) (core.Predictions, error) {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, core.WrapDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "decode predictions", err)
	}
	pred := make(core.Predictions, len(raw))
	for k, v := range raw {
		a, err := core.ParseActionKind(k)
		if err != nil {
			return nil, err
		}
		pred[a] = v
	}
	return pred, nil
}

var _ Predictor = (*StorePredictor)(nil)
