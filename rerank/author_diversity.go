package rerank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/metrics"
	"github.com/rushteam/feedrank/pipeline"
	"github.com/rushteam/feedrank/pkg/utils"
)

// DefaultDecayFactor 默认作者多样性衰减因子。
const DefaultDecayFactor = 0.7

// ValidateDecayFactor 校验衰减因子在 (0,1] 内。
func ValidateDecayFactor(factor float64) error {
	if math.IsNaN(factor) || factor <= 0 || factor > 1 {
		return core.NewDomainError(core.ModuleRerank, core.ErrorCodeInvalidInput,
			fmt.Sprintf("decay factor must be in (0,1], got %v", factor))
	}
	return nil
}

// DecayAuthorDiversity 对已按分数降序排列的 items 做一次从左到右的作者衰减：
// 同一作者第 k 次出现（k 从 0 开始）的分数乘以 factor^k。
//
// 输出与输入等长、顺序不变，不重新排序；重新排序由调用方负责。
// 计数器只存在于本次调用内，不同批次之间不共享。
// 写入 labels：diversity_decay（乘数）、author_rank（k）。
func DecayAuthorDiversity(items []*core.Item, factor float64) ([]*core.Item, error) {
	if err := ValidateDecayFactor(factor); err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			return nil, core.NewDomainError(core.ModuleRerank, core.ErrorCodeInvalidInput, "nil item")
		}
		author := it.AuthorID()
		k := seen[author]
		multiplier := math.Pow(factor, float64(k))
		seen[author] = k + 1

		next := it.WithScore(it.Score * multiplier)
		next.PutLabel(utils.LabelDiversityDecay, utils.FloatLabel(multiplier, "rerank"))
		next.PutLabel(utils.LabelAuthorRank, utils.IntLabel(k, "rerank"))
		out = append(out, next)
	}
	return out, nil
}

// AuthorDiversityNode 是作者多样性重排 Node：先衰减，再按衰减后的分数降序稳定排序。
// 输入需已按分数降序排列（通常位于 rank.weighted 之后）。
type AuthorDiversityNode struct {
	// Factor 衰减因子，取值 (0,1]；1.0 时不改变分数与顺序
	Factor float64

	Metrics *metrics.Collectors
}

func (n *AuthorDiversityNode) Name() string        { return "rerank.author_diversity" }
func (n *AuthorDiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *AuthorDiversityNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out, err := DecayAuthorDiversity(items, n.Factor)
	if err != nil {
		return nil, err
	}

	if n.Factor < 1 {
		decayed := 0
		for _, it := range out {
			if lbl, ok := it.GetLabel(utils.LabelAuthorRank); ok && lbl.Value != "0" {
				decayed++
			}
		}
		n.Metrics.RecordDecayed(decayed)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
