package model

import "github.com/rushteam/feedrank/core"

// VideoBonus 是按视频时长分档的加分策略（只加不减）。
//
// 默认分档（秒）：
//   - [15, 60]            -> 0.5（最佳）
//   - [5, 15) 或 (60, 180] -> 0.3（良好）
//   - 其它                 -> 0.1（保底，所有视频都有加分）
//   - 无视频或时长未知      -> 0
type VideoBonus struct {
	OptimalMin float64
	OptimalMax float64
	GoodMin    float64
	GoodMax    float64

	Optimal float64
	Good    float64
	Floor   float64
}

// DefaultVideoBonus 返回默认分档。
func DefaultVideoBonus() VideoBonus {
	return VideoBonus{
		OptimalMin: 15,
		OptimalMax: 60,
		GoodMin:    5,
		GoodMax:    180,
		Optimal:    0.5,
		Good:       0.3,
		Floor:      0.1,
	}
}

// Bonus 返回 post 的视频加分，恒 >= 0。
// 分档按“最佳 -> 良好 -> 保底”顺序判断，15 与 60 属于最佳档，5 与 180 属于良好档。
func (v VideoBonus) Bonus(post *core.Post) float64 {
	d, ok := post.VideoDuration()
	if !ok {
		return 0
	}
	var bonus float64
	switch {
	case d >= v.OptimalMin && d <= v.OptimalMax:
		bonus = v.Optimal
	case (d >= v.GoodMin && d < v.OptimalMin) || (d > v.OptimalMax && d <= v.GoodMax):
		bonus = v.Good
	default:
		bonus = v.Floor
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}
