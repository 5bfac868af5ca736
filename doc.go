// Package feedrank 是一个信息流排序工具包。
//
// 设计要点：
// - Pipeline-first: 排序逻辑通过 Node 串联（Rank → ReRank → PostProcess）
// - Labels-first: 每个阶段写入 labels（base_score / video_bonus / diversity_decay），支持 explain 与观测
// - 全有或全无: 任意 Post 预测失败时整批失败，不返回部分结果
package feedrank

import (
	"github.com/rushteam/feedrank/feed"
	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/pipeline"
)

// 轻量 facade：便于用户直接 import "feedrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Ranker = feed.Ranker
type Result = feed.Result
type Predictor = model.Predictor

const (
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// NewRanker 使用默认权重表、视频加分与 0.7 衰减因子创建 Ranker。
func NewRanker(predictor Predictor, opts ...feed.Option) (*Ranker, error) {
	return feed.NewRanker(predictor, opts...)
}
