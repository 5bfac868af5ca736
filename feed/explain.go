package feed

import (
	"math"
	"strconv"

	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/pkg/utils"
)

// Explanation 是单个结果的分数拆解：
//
//	Final = (Base + VideoBonus) * Multiplier
type Explanation struct {
	PostID        string               `json:"post_id"`
	AuthorID      string               `json:"author_id"`
	Base          float64              `json:"base"`
	VideoBonus    float64              `json:"video_bonus"`
	AuthorRank    int                  `json:"author_rank"`
	Multiplier    float64              `json:"multiplier"`
	Final         float64              `json:"final"`
	Contributions []model.Contribution `json:"contributions"`
}

// Explain 拆解 result 的最终分数。Base 与 VideoBonus 按当前 Ranker 的权重表与分档重新计算，
// 作者名次取自 author_rank 标签。
func (r *Ranker) Explain(res Result) Explanation {
	e := Explanation{
		Multiplier: 1,
		Final:      res.Score,
	}
	if res.Post != nil {
		e.PostID = res.Post.ID
		e.AuthorID = res.Post.AuthorID
	}
	if base, err := r.model.Score(res.Predictions); err == nil {
		e.Base = base
	}
	e.VideoBonus = r.videoBonus.Bonus(res.Post)
	if lbl, ok := res.Labels[utils.LabelAuthorRank]; ok {
		if k, err := strconv.Atoi(lbl.Value); err == nil {
			e.AuthorRank = k
			e.Multiplier = math.Pow(r.factor, float64(k))
		}
	}
	e.Contributions = r.model.Contributions(res.Predictions)
	return e
}

// AuthorEntry 是某个作者在结果中的一次出现。
type AuthorEntry struct {
	Position   int     `json:"position"` // 在最终结果中的下标（从 0 开始）
	PostID     string  `json:"post_id"`
	Score      float64 `json:"score"`
	Multiplier float64 `json:"multiplier"`
}

// AuthorSummary 返回 authorID 在 results 中的全部出现，按最终顺序排列。
func (r *Ranker) AuthorSummary(results []Result, authorID string) []AuthorEntry {
	var out []AuthorEntry
	for i, res := range results {
		if res.Post == nil || res.Post.AuthorID != authorID {
			continue
		}
		e := r.Explain(res)
		out = append(out, AuthorEntry{
			Position:   i,
			PostID:     res.Post.ID,
			Score:      res.Score,
			Multiplier: e.Multiplier,
		})
	}
	return out
}

// Authors 返回 results 中出现过的作者，按首次出现的顺序。
func Authors(results []Result) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, res := range results {
		if res.Post == nil {
			continue
		}
		if _, ok := seen[res.Post.AuthorID]; ok {
			continue
		}
		seen[res.Post.AuthorID] = struct{}{}
		out = append(out, res.Post.AuthorID)
	}
	return out
}
