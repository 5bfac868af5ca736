package model

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/feedrank/core"
)

// WeightTable 是 ActionKind -> 权重 的不可变映射。
// 构造时校验覆盖所有 ActionKind 且每个权重为有限实数，之后不再修改。
type WeightTable struct {
	weights map[core.ActionKind]float64
}

// NewWeightTable 校验并构造权重表。缺项返回 MISSING_WEIGHT，未知类型或非有限值返回 INVALID_INPUT。
func NewWeightTable(weights map[core.ActionKind]float64) (*WeightTable, error) {
	table := make(map[core.ActionKind]float64, len(weights))
	for a, w := range weights {
		if !a.Valid() {
			return nil, core.NewDomainError(core.ModuleWeights, core.ErrorCodeInvalidInput, fmt.Sprintf("weight for unknown action %q", a))
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, core.NewDomainError(core.ModuleWeights, core.ErrorCodeInvalidInput, fmt.Sprintf("weight for %q is not finite", a))
		}
		table[a] = w
	}
	for _, a := range core.AllActions() {
		if _, ok := table[a]; !ok {
			return nil, core.NewDomainError(core.ModuleWeights, core.ErrorCodeMissingWeight, fmt.Sprintf("missing weight for action %q", a))
		}
	}
	return &WeightTable{weights: table}, nil
}

// DefaultWeights 返回默认权重（正向互动为正，负向/安全信号为负）。
func DefaultWeights() map[core.ActionKind]float64 {
	return map[core.ActionKind]float64{
		core.ActionFavorite:      1.0,
		core.ActionReply:         2.0,
		core.ActionRepost:        1.5,
		core.ActionQuote:         2.5,
		core.ActionClick:         0.5,
		core.ActionProfileClick:  0.3,
		core.ActionVideoView:     0.8,
		core.ActionPhotoExpand:   0.3,
		core.ActionShare:         1.5,
		core.ActionDwell:         0.2,
		core.ActionFollowAuthor:  3.0,
		core.ActionNotInterested: -5.0,
		core.ActionBlockAuthor:   -10.0,
		core.ActionMuteAuthor:    -8.0,
		core.ActionReport:        -15.0,
	}
}

// DefaultWeightTable 返回默认权重表。默认值是常量，校验不会失败。
func DefaultWeightTable() *WeightTable {
	t, err := NewWeightTable(DefaultWeights())
	if err != nil {
		panic(err)
	}
	return t
}

// ParseWeights 将 string key 的权重转换为 ActionKind key，并与 base 合并（覆盖同名项）。
// base 为 nil 时不合并，缺项会在 NewWeightTable 中报错。
func ParseWeights(raw map[string]float64, base map[core.ActionKind]float64) (*WeightTable, error) {
	merged := make(map[core.ActionKind]float64, len(core.AllActions()))
	for a, w := range base {
		merged[a] = w
	}
	for k, w := range raw {
		a, err := core.ParseActionKind(k)
		if err != nil {
			return nil, err
		}
		merged[a] = w
	}
	return NewWeightTable(merged)
}

// LoadWeightTable 从 YAML/JSON 文件加载完整权重表（JSON 是 YAML 的子集）。
// 文件格式：
//
//	weights:
//	  favorite: 1.0
//	  reply: 2.0
//	  ...
func LoadWeightTable(path string) (*WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var raw struct {
		Weights map[string]float64 `yaml:"weights" json:"weights"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse weights: %w", err)
	}
	return ParseWeights(raw.Weights, nil)
}

// Weight 返回 action 的权重。
func (t *WeightTable) Weight(a core.ActionKind) (float64, bool) {
	w, ok := t.weights[a]
	return w, ok
}

// Map 返回权重表的副本。
func (t *WeightTable) Map() map[core.ActionKind]float64 {
	out := make(map[core.ActionKind]float64, len(t.weights))
	for a, w := range t.weights {
		out[a] = w
	}
	return out
}

// ByMagnitude 返回按 |weight| 降序排列的 ActionKind，绝对值相同按固定顺序。
func (t *WeightTable) ByMagnitude() []core.ActionKind {
	actions := core.AllActions()
	sort.SliceStable(actions, func(i, j int) bool {
		return math.Abs(t.weights[actions[i]]) > math.Abs(t.weights[actions[j]])
	})
	return actions
}

// MaxScore 返回所有正权重之和，即概率均为 1 时的理论上界。
func (t *WeightTable) MaxScore() float64 {
	var sum float64
	for _, w := range t.weights {
		if w > 0 {
			sum += w
		}
	}
	return sum
}
