// Package filter 提供排序之后的展示层过滤。
//
// 过滤会丢弃条目，因此不属于 feed.Ranker 的默认链路；
// 只在配置驱动的展示链路（或命令行 --where）中位于重排之后使用。
package filter

import (
	"context"

	"github.com/rushteam/feedrank/core"
)

// Filter 判断一个 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
