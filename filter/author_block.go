package filter

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/rushteam/feedrank/core"
)

// AuthorBlockFilter 过滤观看者屏蔽的作者。
//
// 屏蔽列表来自两处（取并集）：
//   - Authors：静态配置
//   - Store：key 为 {KeyPrefix}:{ViewerID}，value 为作者 ID 的 JSON 数组
type AuthorBlockFilter struct {
	Authors map[string]struct{}

	Store core.Store

	// KeyPrefix 默认 "feedrank:block"
	KeyPrefix string
}

// NewAuthorBlockFilter 创建一个作者屏蔽过滤器，store 可为 nil。
func NewAuthorBlockFilter(authors []string, store core.Store, keyPrefix string) *AuthorBlockFilter {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return &AuthorBlockFilter{Authors: set, Store: store, KeyPrefix: keyPrefix}
}

func (f *AuthorBlockFilter) Name() string {
	return "filter.author_block"
}

func (f *AuthorBlockFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return false, nil
	}
	author := item.AuthorID()
	if _, ok := f.Authors[author]; ok {
		return true, nil
	}
	if f.Store == nil || rctx == nil || rctx.ViewerID == "" {
		return false, nil
	}

	blocked, err := f.blocked(ctx, rctx.ViewerID)
	if err != nil {
		return false, err
	}
	_, ok := blocked[author]
	return ok, nil
}

func (f *AuthorBlockFilter) blocked(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	keyPrefix := f.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "feedrank:block"
	}
	data, err := f.Store.Get(ctx, keyPrefix+":"+viewerID)
	if core.IsStoreNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
