package model

import (
	"context"
	"fmt"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/feast"
)

// FeastPredictor 从 Feast 在线特征库读取预测向量。
//
// 特征命名约定：<FeatureView>:p_<action>，例如 post_engagement:p_favorite。
// 关注作者时若配置了 FollowingFeatureView，则读取该视图（通常是 in-network 模型的输出）。
type FeastPredictor struct {
	Client               feast.Client
	Project              string
	FeatureView          string
	FollowingFeatureView string
	EntityKey            string // 默认 "post_id"
}

func NewFeastPredictor(client feast.Client, project, featureView string) *FeastPredictor {
	return &FeastPredictor{
		Client:      client,
		Project:     project,
		FeatureView: featureView,
		EntityKey:   "post_id",
	}
}

func (p *FeastPredictor) Name() string { return "feast" }

// FeatureRefs 返回某个视图下全部 action 的特征引用。
func FeatureRefs(view string) []string {
	actions := core.AllActions()
	refs := make([]string, 0, len(actions))
	for _, a := range actions {
		refs = append(refs, view+":p_"+string(a))
	}
	return refs
}

func (p *FeastPredictor) Predict(ctx context.Context, post *core.Post, followsAuthor bool) (core.Predictions, error) {
	if post == nil {
		return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, "post is nil")
	}
	view := p.FeatureView
	if followsAuthor && p.FollowingFeatureView != "" {
		view = p.FollowingFeatureView
	}
	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = "post_id"
	}

	refs := FeatureRefs(view)
	resp, err := p.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   refs,
		EntityRows: []map[string]interface{}{{entityKey: post.ID}},
		Project:    p.Project,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.FeatureVectors) != 1 {
		return nil, fmt.Errorf("feast returned %d feature vectors, want 1", len(resp.FeatureVectors))
	}

	values := resp.FeatureVectors[0].Values
	pred := make(core.Predictions, len(refs))
	for i, a := range core.AllActions() {
		raw, ok := values[refs[i]]
		if !ok {
			return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeNotFound, fmt.Sprintf("feature %s missing for post %q", refs[i], post.ID))
		}
		v, ok := raw.(float64)
		if !ok {
			return nil, core.NewDomainError(core.ModulePredictor, core.ErrorCodeInvalidInput, fmt.Sprintf("feature %s has type %T", refs[i], raw))
		}
		pred[a] = v
	}
	return pred, nil
}

var _ Predictor = (*FeastPredictor)(nil)
