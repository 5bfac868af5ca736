// Package metrics 定义排序链路的 Prometheus 指标。
//
// Collectors 通过 Registerer 注入，测试中可使用独立的 prometheus.NewRegistry()。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors 是一组排序指标。
type Collectors struct {
	// Batches 按结果统计批次数，outcome: ok / predictor_error / invalid_input / error
	Batches *prometheus.CounterVec

	// ItemsRanked 成功排序的 Post 数
	ItemsRanked prometheus.Counter

	// PredictorErrors 按 predictor 名称统计失败次数
	PredictorErrors *prometheus.CounterVec

	// DecayedItems 被作者多样性衰减（倍数 < 1）的 Post 数
	DecayedItems prometheus.Counter

	// NodeDuration 每个 Node 的处理耗时
	NodeDuration *prometheus.HistogramVec
}

// NewCollectors 在 reg 上注册并返回指标集合，reg 为 nil 时不注册（仅本地计数）。
func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		Batches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedrank_batches_total",
				Help: "Total number of ranking batches by outcome",
			},
			[]string{"outcome"},
		),
		ItemsRanked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "feedrank_items_ranked_total",
				Help: "Total number of posts ranked",
			},
		),
		PredictorErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedrank_predictor_errors_total",
				Help: "Total number of predictor failures",
			},
			[]string{"predictor"},
		),
		DecayedItems: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "feedrank_decayed_items_total",
				Help: "Total number of posts attenuated by author diversity decay",
			},
		),
		NodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feedrank_node_duration_seconds",
				Help:    "Duration of pipeline node processing in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"node", "kind"},
		),
	}
}

// ObserveNode 记录一个 Node 的耗时，c 为 nil 时忽略。
func (c *Collectors) ObserveNode(node, kind string, d time.Duration) {
	if c == nil {
		return
	}
	c.NodeDuration.WithLabelValues(node, kind).Observe(d.Seconds())
}

// RecordBatch 记录批次结果，c 为 nil 时忽略。
func (c *Collectors) RecordBatch(outcome string, items int) {
	if c == nil {
		return
	}
	c.Batches.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		c.ItemsRanked.Add(float64(items))
	}
}

// RecordPredictorError 记录 predictor 失败，c 为 nil 时忽略。
func (c *Collectors) RecordPredictorError(predictor string) {
	if c == nil {
		return
	}
	c.PredictorErrors.WithLabelValues(predictor).Inc()
}

// RecordDecayed 记录被衰减的 Post 数，c 为 nil 时忽略。
func (c *Collectors) RecordDecayed(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.DecayedItems.Add(float64(n))
}

// 批次结果
const (
	OutcomeOK             = "ok"
	OutcomePredictorError = "predictor_error"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeError          = "error"
)
