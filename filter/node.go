package filter

import (
	"context"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/logging"
	"github.com/rushteam/feedrank/pipeline"
)

// FilterNode 组合多个过滤器，任意一个过滤器返回 true 时该条目被移除。
// 保留条目的相对顺序不变；过滤器出错时记录日志并保留该条目。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	log := logging.Ctx(ctx)
	out := make([]*core.Item, 0, len(items))
	filtered := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		drop := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				log.Warn().Err(err).Str("filter", f.Name()).Str("post_id", item.ID()).Msg("filter failed, keeping item")
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if drop {
			filtered++
			continue
		}
		out = append(out, item)
	}

	log.Debug().Int("filtered", filtered).Int("kept", len(out)).Msg("filter done")
	return out, nil
}
