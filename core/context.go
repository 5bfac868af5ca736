package core

import (
	"github.com/google/uuid"

	"github.com/rushteam/feedrank/pkg/utils"
)

// RecommendContext 承载观看者/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	ViewerID  string
	RequestID string

	// Following 是观看者关注的作者集合，仅用于计算 follows_author。
	Following map[string]struct{}

	// Labels 是用户级标签
	Labels map[string]utils.Label

	// Params 请求级参数
	Params map[string]any
}

// NewRecommendContext 创建上下文并生成 RequestID。
func NewRecommendContext(viewerID string, following []string) *RecommendContext {
	rctx := &RecommendContext{
		ViewerID:  viewerID,
		RequestID: uuid.New().String(),
		Following: make(map[string]struct{}, len(following)),
	}
	for _, a := range following {
		rctx.Following[a] = struct{}{}
	}
	return rctx
}

// Follows 判断观看者是否关注了 authorID。nil 上下文视为未关注。
func (rctx *RecommendContext) Follows(authorID string) bool {
	if rctx == nil || rctx.Following == nil {
		return false
	}
	_, ok := rctx.Following[authorID]
	return ok
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
