package model

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/rushteam/feedrank/core"
)

// SimulatedPredictor 是随机预测桩，模拟互动预估模型的输出。
//
// 每个 Post 的随机数种子由 (Seed, post.ID) 派生，因此结果只取决于
// (post, followsAuthor)，与调用顺序、并发度无关，可用于可复现的测试数据。
//
// 生成规则：
//   - base ~ U(0.01, 0.05)
//   - 关注作者时直接互动 x1.5，有视频时 video_view x1.3
//   - 正向概率上限 0.95，负向信号下限 0.001
type SimulatedPredictor struct {
	Seed uint64
}

func NewSimulatedPredictor(seed uint64) *SimulatedPredictor {
	return &SimulatedPredictor{Seed: seed}
}

func (p *SimulatedPredictor) Name() string { return "simulated" }

func (p *SimulatedPredictor) Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if post == nil {
		return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "post is nil")
	}

	rng := rand.New(rand.NewPCG(p.Seed, postSeed(post.ID)))
	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	capped := func(v float64) float64 { return math.Min(0.95, v) }
	floored := func(v float64) float64 { return math.Max(0.001, v) }

	base := uniform(0.01, 0.05)
	networkBoost := 1.0
	if followsAuthor {
		networkBoost = 1.5
	}
	videoBoost := 1.0
	if post.HasVideo {
		videoBoost = 1.3
	}

	pred := make(core.Predictions, len(core.AllActions()))
	pred[core.ActionFavorite] = capped(base*3*networkBoost + uniform(0, 0.1))
	pred[core.ActionReply] = capped(base*0.5*networkBoost + uniform(0, 0.03))
	pred[core.ActionRepost] = capped(base*0.8*networkBoost + uniform(0, 0.05))
	pred[core.ActionQuote] = capped(base*0.3*networkBoost + uniform(0, 0.02))
	pred[core.ActionClick] = capped(base*2 + uniform(0, 0.15))
	pred[core.ActionProfileClick] = capped(base*0.4 + uniform(0, 0.05))
	if post.HasVideo {
		pred[core.ActionVideoView] = capped(base * 4 * videoBoost)
	} else {
		pred[core.ActionVideoView] = 0.01
	}
	pred[core.ActionPhotoExpand] = capped(base*0.6 + uniform(0, 0.05))
	pred[core.ActionShare] = capped(base*0.4*networkBoost + uniform(0, 0.03))
	pred[core.ActionDwell] = capped(base*5 + uniform(0, 0.2))
	if followsAuthor {
		pred[core.ActionFollowAuthor] = 0.001
	} else {
		pred[core.ActionFollowAuthor] = capped(base * 0.1)
	}
	pred[core.ActionNotInterested] = floored(uniform(0, 0.02))
	pred[core.ActionBlockAuthor] = floored(uniform(0, 0.005))
	pred[core.ActionMuteAuthor] = floored(uniform(0, 0.008))
	pred[core.ActionReport] = floored(uniform(0, 0.002))
	return pred, nil
}

func postSeed(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

var _ Predictor = (*SimulatedPredictor)(nil)
