package pipeline

import (
	"context"

	"github.com/rushteam/feedrank/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRank        Kind = "rank"        // 排序阶段：预测、打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：在排序结果上做多样性调整
	KindPostProcess Kind = "postprocess" // 后处理阶段：截断等展示相关处理
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态；Node 不应原地修改收到的 Item。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
