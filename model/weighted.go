package model

import (
	"fmt"

	"github.com/rushteam/feedrank/core"
)

// WeightedModel 是互动概率的线性加权模型。
//
// 预测原理：
//
//	score = sum(Weight_a * P(a))，a 遍历全部 ActionKind
//
// 与 LR 不同，这里不做 sigmoid，也不做裁剪：分数是无界实数，
// 实际上界为所有正权重之和（每个概率 <= 1）。
type WeightedModel struct {
	Weights *WeightTable
}

// NewWeightedModel 创建加权模型，weights 为 nil 时返回配置错误。
func NewWeightedModel(weights *WeightTable) (*WeightedModel, error) {
	if weights == nil {
		return nil, core.NewDomainError(core.ModuleWeights, core.ErrorCodeMissingWeight, "weight table is nil")
	}
	return &WeightedModel{Weights: weights}, nil
}

func (m *WeightedModel) Name() string { return "weighted" }

// Score 计算加权和。预测向量中出现权重表没有的 action 时返回 MISSING_WEIGHT。
func (m *WeightedModel) Score(predictions core.Predictions) (float64, error) {
	if m.Weights == nil {
		return 0, core.NewDomainError(core.ModuleWeights, core.ErrorCodeMissingWeight, "weight table is nil")
	}
	var score float64
	for _, a := range core.AllActions() {
		p, ok := predictions[a]
		if !ok {
			continue
		}
		w, _ := m.Weights.Weight(a)
		score += w * p
	}
	for a := range predictions {
		if _, ok := m.Weights.Weight(a); !ok {
			return 0, core.NewDomainError(core.ModuleWeights, core.ErrorCodeMissingWeight, fmt.Sprintf("no weight for action %q", a))
		}
	}
	return score, nil
}

// Contribution 是单个 action 对分数的贡献。
type Contribution struct {
	Action       core.ActionKind `json:"action"`
	Probability  float64         `json:"probability"`
	Weight       float64         `json:"weight"`
	Contribution float64         `json:"contribution"`
}

// Contributions 返回每个 action 的贡献，按 |weight| 降序。
// 各项 Contribution 之和等于 Score 的结果。
func (m *WeightedModel) Contributions(predictions core.Predictions) []Contribution {
	actions := m.Weights.ByMagnitude()
	out := make([]Contribution, 0, len(actions))
	for _, a := range actions {
		w, _ := m.Weights.Weight(a)
		p := predictions.Get(a)
		out = append(out, Contribution{
			Action:       a,
			Probability:  p,
			Weight:       w,
			Contribution: w * p,
		})
	}
	return out
}

var _ ScoreModel = (*WeightedModel)(nil)
