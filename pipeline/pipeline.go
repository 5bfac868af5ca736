package pipeline

import (
	"context"
	"time"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/logging"
	"github.com/rushteam/feedrank/metrics"
)

// Pipeline 把排序逻辑拆成可组合的 Node 链，按顺序同步执行。
// 任意 Node 返回错误时整条链路失败，不返回部分结果。
type Pipeline struct {
	Nodes   []Node
	Metrics *metrics.Collectors
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	log := logging.Ctx(ctx)
	cur := items
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		elapsed := time.Since(start)
		p.Metrics.ObserveNode(node.Name(), string(node.Kind()), elapsed)
		if err != nil {
			log.Debug().Err(err).Str("node", node.Name()).Msg("pipeline node failed")
			return nil, err
		}
		log.Debug().
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("in", len(cur)).
			Int("out", len(next)).
			Dur("elapsed", elapsed).
			Msg("pipeline node done")
		cur = next
	}
	return cur, nil
}
