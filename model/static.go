package model

import (
	"context"
	"fmt"

	"github.com/rushteam/feedrank/core"
)

// StaticPredictor 按 Post ID 查表返回预测向量，常用于测试与回放。
// Default 不为 nil 时作为缺省向量，否则未命中返回 NOT_FOUND。
type StaticPredictor struct {
	Table   map[string]core.Predictions
	Default core.Predictions
}

func NewStaticPredictor(table map[string]core.Predictions) *StaticPredictor {
	return &StaticPredictor{Table: table}
}

func (p *StaticPredictor) Name() string { return "static" }

func (p *StaticPredictor) Predict(_ context.Context, post *core.Post, _ bool) (core.Predictions, error) {
	if post == nil {
		return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "post is nil")
	}
	if pred, ok := p.Table[post.ID]; ok {
		return pred.Clone(), nil
	}
	if p.Default != nil {
		return p.Default.Clone(), nil
	}
	return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeNotFound, fmt.Sprintf("no predictions for post %q", post.ID))
}

// Uniform 返回所有 action 概率均为 v 的预测向量。
func Uniform(v float64) core.Predictions {
	pred := make(core.Predictions, len(core.AllActions()))
	for _, a := range core.AllActions() {
		pred[a] = v
	}
	return pred
}

var _ Predictor = (*StaticPredictor)(nil)
