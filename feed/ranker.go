// Package feed 是排序链路的门面：预测 -> 加权打分 -> 视频加分 -> 排序 -> 作者多样性衰减 -> 再排序。
//
//	ranker, err := feed.NewRanker(model.NewSimulatedPredictor(42))
//	results, err := ranker.Rank(ctx, posts, []string{"alice", "bob"})
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/logging"
	"github.com/rushteam/feedrank/metrics"
	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/pipeline"
	"github.com/rushteam/feedrank/pkg/utils"
	"github.com/rushteam/feedrank/rank"
	"github.com/rushteam/feedrank/rerank"
)

// Result 是最终排序结果中的一项：(Post, 最终分数, 预测向量)。
type Result struct {
	Post        *core.Post
	Score       float64
	Predictions core.Predictions
	Labels      map[string]utils.Label
}

// Ranker 组装并执行两段排序链路。
//
// 链路固定为 rank.weighted -> rerank.author_diversity：
// 多样性衰减依赖第一次排序得到的名次，衰减后名次可能变化，因此需要再排一次。
type Ranker struct {
	predictor   model.Predictor
	weights     *model.WeightTable
	model       *model.WeightedModel
	videoBonus  model.VideoBonus
	factor      float64
	concurrency int
	metrics     *metrics.Collectors

	pipeline *pipeline.Pipeline
}

// Option Ranker 配置选项
type Option func(*Ranker)

// WithWeights 指定权重表，默认 model.DefaultWeightTable()
func WithWeights(w *model.WeightTable) Option {
	return func(r *Ranker) { r.weights = w }
}

// WithDecayFactor 指定作者多样性衰减因子，默认 0.7
func WithDecayFactor(f float64) Option {
	return func(r *Ranker) { r.factor = f }
}

// WithVideoBonus 指定视频加分分档
func WithVideoBonus(v model.VideoBonus) Option {
	return func(r *Ranker) { r.videoBonus = v }
}

// WithConcurrency 指定 Predictor 调用并发度，<=1 为顺序调用
func WithConcurrency(n int) Option {
	return func(r *Ranker) { r.concurrency = n }
}

// WithMetrics 指定指标集合
func WithMetrics(m *metrics.Collectors) Option {
	return func(r *Ranker) { r.metrics = m }
}

// NewRanker 创建 Ranker。配置错误（权重表缺项、衰减因子越界）在这里直接返回，
// 不会推迟到第一次 Rank 调用。
func NewRanker(predictor model.Predictor, opts ...Option) (*Ranker, error) {
	defaults := &core.DefaultRankConfig{}
	r := &Ranker{
		predictor:   predictor,
		videoBonus:  model.DefaultVideoBonus(),
		factor:      defaults.DefaultDecayFactor(),
		concurrency: defaults.DefaultConcurrency(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.predictor == nil {
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "predictor is required")
	}
	if r.weights == nil {
		r.weights = model.DefaultWeightTable()
	}
	m, err := model.NewWeightedModel(r.weights)
	if err != nil {
		return nil, err
	}
	r.model = m
	if err := rerank.ValidateDecayFactor(r.factor); err != nil {
		return nil, err
	}

	r.pipeline = &pipeline.Pipeline{
		Metrics: r.metrics,
		Nodes: []pipeline.Node{
			&rank.WeightedNode{
				Predictor:   r.predictor,
				Model:       r.model,
				VideoBonus:  r.videoBonus,
				Concurrency: r.concurrency,
				Metrics:     r.metrics,
			},
			&rerank.AuthorDiversityNode{Factor: r.factor, Metrics: r.metrics},
		},
	}
	return r, nil
}

// Weights 返回当前权重表。
func (r *Ranker) Weights() *model.WeightTable { return r.weights }

// DecayFactor 返回当前衰减因子。
func (r *Ranker) DecayFactor() float64 { return r.factor }

// Rank 对 posts 排序，following 是观看者关注的作者列表。
func (r *Ranker) Rank(ctx context.Context, posts []*core.Post, following []string) ([]Result, error) {
	return r.RankWithContext(ctx, core.NewRecommendContext("", following), posts)
}

// RankWithContext 使用已有的 RecommendContext 排序。
// 输出是输入的一个排列：数量相同、无重复、无遗漏；空输入返回空结果。
// 任意 Post 预测失败时整批失败，不返回部分结果。
func (r *Ranker) RankWithContext(ctx context.Context, rctx *core.RecommendContext, posts []*core.Post) ([]Result, error) {
	if rctx == nil {
		rctx = core.NewRecommendContext("", nil)
	}
	if rctx.RequestID != "" {
		ctx = logging.ContextWithRequestID(ctx, rctx.RequestID)
	}
	log := logging.Ctx(ctx)
	start := time.Now()

	items, err := toItems(posts)
	if err != nil {
		r.metrics.RecordBatch(metrics.OutcomeInvalidInput, len(posts))
		log.Warn().Err(err).Int("posts", len(posts)).Msg("rank rejected input")
		return nil, err
	}

	ranked, err := r.pipeline.Run(ctx, rctx, items)
	if err != nil {
		outcome := metrics.OutcomeError
		if core.IsUpstream(err) {
			outcome = metrics.OutcomePredictorError
		}
		r.metrics.RecordBatch(outcome, len(posts))
		log.Error().Err(err).Int("posts", len(posts)).Str("predictor", r.predictor.Name()).Msg("rank failed")
		return nil, err
	}
	if len(ranked) != len(items) {
		r.metrics.RecordBatch(metrics.OutcomeError, len(posts))
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInternalError,
			fmt.Sprintf("pipeline returned %d items for %d posts", len(ranked), len(items)))
	}

	results := make([]Result, len(ranked))
	for i, it := range ranked {
		results[i] = Result{
			Post:        it.Post,
			Score:       it.Score,
			Predictions: it.Predictions,
			Labels:      it.Labels,
		}
	}

	r.metrics.RecordBatch(metrics.OutcomeOK, len(results))
	log.Info().
		Int("posts", len(results)).
		Str("predictor", r.predictor.Name()).
		Float64("decay_factor", r.factor).
		Dur("elapsed", time.Since(start)).
		Msg("rank done")
	return results, nil
}

// toItems 校验输入并转换为 Item：不允许 nil Post 或重复 ID。
func toItems(posts []*core.Post) ([]*core.Item, error) {
	items := make([]*core.Item, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		if p == nil {
			return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, fmt.Sprintf("post %d is nil", i))
		}
		if _, dup := seen[p.ID]; dup {
			return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, fmt.Sprintf("duplicate post id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		items = append(items, core.NewItem(p))
	}
	return items, nil
}
