package model

import (
	"context"

	"github.com/rushteam/feedrank/core"
)

// ScoreModel 是排序阶段的最小抽象：输入预测向量，输出一个可比较的分数。
type ScoreModel interface {
	Name() string
	Score(predictions core.Predictions) (float64, error)
}

// Predictor 是外部互动预估模型的能力边界。
// 实现可以是训练好的模型服务、查表、或随机桩；Pipeline 只依赖这个方法。
//   - followsAuthor 由调用方根据观看者关注列表计算
//   - 每个 Post 调用一次，调用之间无共享状态
//   - 重试策略属于实现方，Pipeline 不做重试
type Predictor interface {
	Name() string
	Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error)
}

// PredictorFunc 允许用普通函数实现 Predictor。
type PredictorFunc func(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error)

func (f PredictorFunc) Name() string { return "func" }

func (f PredictorFunc) Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	return f(ctx, post, followsAuthor)
}
