package rank

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/metrics"
	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/pipeline"
	"github.com/rushteam/feedrank/pkg/utils"
)

// WeightedNode 是排序 Node：
//  1. 每个 Post 调用一次 Predictor 获取预测向量
//  2. base = Model.Score(predictions)
//  3. score = base + VideoBonus
//  4. 按分数降序稳定排序（同分保持输入顺序）
//
// 写入 labels：rank_model / predictor / base_score / video_bonus。
// 任意一个 Post 预测失败则整批失败（UPSTREAM），不返回部分结果。
type WeightedNode struct {
	Predictor  model.Predictor
	Model      model.ScoreModel
	VideoBonus model.VideoBonus

	// Concurrency <= 1 时顺序调用 Predictor；> 1 时并发调用，结果与顺序调用一致。
	Concurrency int

	Metrics *metrics.Collectors
}

func (n *WeightedNode) Name() string        { return "rank.weighted" }
func (n *WeightedNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *WeightedNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Predictor == nil || n.Model == nil {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, "rank.weighted requires predictor and model")
	}
	if len(items) == 0 {
		return []*core.Item{}, nil
	}
	for i, it := range items {
		if it == nil || it.Post == nil {
			return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, fmt.Sprintf("item %d has no post", i))
		}
	}

	out := make([]*core.Item, len(items))
	score := func(ctx context.Context, i int) error {
		it, err := n.scoreItem(ctx, rctx, items[i])
		if err != nil {
			return err
		}
		out[i] = it
		return nil
	}

	if n.Concurrency <= 1 {
		for i := range items {
			if err := score(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(n.Concurrency)
		for i := range items {
			eg.Go(func() error { return score(egCtx, i) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	SortByScore(out)
	return out, nil
}

func (n *WeightedNode) scoreItem(ctx context.Context, rctx *core.RecommendContext, in *core.Item) (*core.Item, error) {
	post := in.Post
	pred, err := n.Predictor.Predict(ctx, post, rctx.Follows(post.AuthorID))
	if err == nil {
		err = pred.Validate()
	}
	if err != nil {
		n.Metrics.RecordPredictorError(n.Predictor.Name())
		return nil, core.WrapDomainError(core.ModulePredictor, core.ErrorCodeUpstream,
			fmt.Sprintf("predict post %q", post.ID), err)
	}

	base, err := n.Model.Score(pred)
	if err != nil {
		return nil, err
	}
	bonus := n.VideoBonus.Bonus(post)

	next := in.WithScore(base + bonus)
	next.Predictions = pred
	next.PutLabel(utils.LabelRankModel, utils.Label{Value: n.Model.Name(), Source: "rank"})
	next.PutLabel(utils.LabelPredictor, utils.Label{Value: n.Predictor.Name(), Source: "rank"})
	next.PutLabel(utils.LabelBaseScore, utils.FloatLabel(base, "rank"))
	next.PutLabel(utils.LabelVideoBonus, utils.FloatLabel(bonus, "rank"))
	return next, nil
}

// SortByScore 按分数降序稳定排序，同分保持原有相对顺序。
func SortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
