package core

import (
	"fmt"
	"math"
)

// ActionKind 是互动信号类型（闭集合）。
// 正/负向语义由权重符号决定，ActionKind 本身不携带方向。
type ActionKind string

const (
	// 直接互动
	ActionFavorite ActionKind = "favorite"
	ActionReply    ActionKind = "reply"
	ActionRepost   ActionKind = "repost"
	ActionQuote    ActionKind = "quote"
	ActionShare    ActionKind = "share"

	// 轻量互动
	ActionClick        ActionKind = "click"
	ActionProfileClick ActionKind = "profile_click"
	ActionPhotoExpand  ActionKind = "photo_expand"
	ActionVideoView    ActionKind = "video_view"
	ActionDwell        ActionKind = "dwell"

	// 强正向
	ActionFollowAuthor ActionKind = "follow_author"

	// 负向 / 安全信号
	ActionNotInterested ActionKind = "not_interested"
	ActionBlockAuthor   ActionKind = "block_author"
	ActionMuteAuthor    ActionKind = "mute_author"
	ActionReport        ActionKind = "report"
)

// allActions 固定顺序，用于遍历与输出。
var allActions = []ActionKind{
	ActionFavorite,
	ActionReply,
	ActionRepost,
	ActionQuote,
	ActionClick,
	ActionProfileClick,
	ActionVideoView,
	ActionPhotoExpand,
	ActionShare,
	ActionDwell,
	ActionFollowAuthor,
	ActionNotInterested,
	ActionBlockAuthor,
	ActionMuteAuthor,
	ActionReport,
}

// AllActions 返回全部 ActionKind 的副本（固定顺序）。
func AllActions() []ActionKind {
	out := make([]ActionKind, len(allActions))
	copy(out, allActions)
	return out
}

// Valid 判断 ActionKind 是否属于已定义集合。
func (a ActionKind) Valid() bool {
	for _, k := range allActions {
		if k == a {
			return true
		}
	}
	return false
}

func (a ActionKind) String() string { return string(a) }

// ParseActionKind 将字符串解析为 ActionKind，未知类型返回 INVALID_INPUT。
func ParseActionKind(s string) (ActionKind, error) {
	a := ActionKind(s)
	if !a.Valid() {
		return "", NewDomainError(ModuleWeights, ErrorCodeInvalidInput, fmt.Sprintf("unknown action kind %q", s))
	}
	return a, nil
}

// Predictions 是单个 Post 的预测向量：ActionKind -> 概率 [0,1]。
// 由 Predictor 产生，进入 Pipeline 后只读。
type Predictions map[ActionKind]float64

// Get 返回某个 action 的概率，缺失时为 0。
func (p Predictions) Get(a ActionKind) float64 {
	return p[a]
}

// Clone 返回深拷贝。
func (p Predictions) Clone() Predictions {
	if p == nil {
		return nil
	}
	out := make(Predictions, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Validate 校验预测向量：每个 ActionKind 都存在，且概率有限并落在 [0,1]。
func (p Predictions) Validate() error {
	for _, a := range allActions {
		v, ok := p[a]
		if !ok {
			return NewDomainError(ModulePredictor, ErrorCodeInvalidInput, fmt.Sprintf("prediction missing action %q", a))
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return NewDomainError(ModulePredictor, ErrorCodeInvalidInput, fmt.Sprintf("prediction %q out of range: %v", a, v))
		}
	}
	for a := range p {
		if !a.Valid() {
			return NewDomainError(ModulePredictor, ErrorCodeInvalidInput, fmt.Sprintf("prediction has unknown action %q", a))
		}
	}
	return nil
}
