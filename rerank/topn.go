package rerank

import (
	"context"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在最终排序后截取前 N 个 Post 用于展示。
// 它会丢弃尾部结果，因此不属于 feed.Ranker 的默认链路，只在配置驱动的展示链路中使用。
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.WeightedNode{...},
//	        &rerank.AuthorDiversityNode{Factor: 0.7},
//	        &rerank.TopNNode{N: 20},
//	    },
//	}
type TopNNode struct {
	// N 要保留的数量；N <= 0 或 N >= len(items) 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
