package core

import "github.com/rushteam/feedrank/pkg/utils"

// Item 是排序链路中的统一承载结构：Post、分数、预测向量、标签。
// Labels 用于解释与观测；Score 用于排序决策。
//
// 各阶段不原地修改收到的 Item，而是通过 WithScore 生成新的 Item，
// 避免同一个 Item 被多个阶段共享时产生别名问题。
type Item struct {
	Post        *Post
	Score       float64
	Predictions Predictions
	Labels      map[string]utils.Label
}

func NewItem(post *Post) *Item {
	return &Item{
		Post:   post,
		Labels: make(map[string]utils.Label),
	}
}

// ID 返回 Post ID。
func (it *Item) ID() string {
	if it == nil || it.Post == nil {
		return ""
	}
	return it.Post.ID
}

// AuthorID 返回作者 ID。
func (it *Item) AuthorID() string {
	if it == nil || it.Post == nil {
		return ""
	}
	return it.Post.AuthorID
}

// WithScore 返回一个分数被替换的新 Item；Labels 被复制，Post 与 Predictions 只读共享。
func (it *Item) WithScore(score float64) *Item {
	next := &Item{
		Post:        it.Post,
		Score:       score,
		Predictions: it.Predictions,
		Labels:      make(map[string]utils.Label, len(it.Labels)+1),
	}
	for k, v := range it.Labels {
		next.Labels[k] = v
	}
	return next
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
