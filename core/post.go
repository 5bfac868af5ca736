package core

import "math"

// Post 是待排序的候选内容，创建后只读。
//   - VideoDurationSec 仅在 HasVideo 时有意义，单位秒
//   - InNetwork 表示观看者关注了作者，只作为上下文元信息，不参与打分
type Post struct {
	ID               string   `json:"id" yaml:"id"`
	AuthorID         string   `json:"author_id" yaml:"author_id"`
	Text             string   `json:"text" yaml:"text"`
	HasVideo         bool     `json:"has_video" yaml:"has_video"`
	VideoDurationSec *float64 `json:"video_duration_sec,omitempty" yaml:"video_duration_sec,omitempty"`
	InNetwork        bool     `json:"in_network" yaml:"in_network"`
}

// NewPost 创建一个无视频的 Post。
func NewPost(id, authorID, text string) *Post {
	return &Post{ID: id, AuthorID: authorID, Text: text}
}

// NewVideoPost 创建一个带视频时长的 Post。
func NewVideoPost(id, authorID, text string, durationSec float64) *Post {
	d := durationSec
	return &Post{ID: id, AuthorID: authorID, Text: text, HasVideo: true, VideoDurationSec: &d}
}

// VideoDuration 返回有效的视频时长。
// 无视频、时长缺失、非有限值或非正数时返回 (0, false)，调用方按“未知时长”处理。
func (p *Post) VideoDuration() (float64, bool) {
	if p == nil || !p.HasVideo || p.VideoDurationSec == nil {
		return 0, false
	}
	d := *p.VideoDurationSec
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0, false
	}
	return d, true
}
