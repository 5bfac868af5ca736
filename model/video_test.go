package model

import (
	"math"
	"testing"

	"github.com/rushteam/feedrank/core"
)

func TestVideoBonus_Bands(t *testing.T) {
	v := DefaultVideoBonus()
	tests := []struct {
		duration float64
		want     float64
	}{
		{1, 0.1},
		{4.999, 0.1},
		{5, 0.3},
		{14.999, 0.3},
		{15, 0.5},
		{45, 0.5},
		{60, 0.5},
		{60.001, 0.3},
		{120, 0.3},
		{180, 0.3},
		{181, 0.1},
		{3600, 0.1},
	}
	for _, tt := range tests {
		post := core.NewVideoPost("v", "a", "", tt.duration)
		if got := v.Bonus(post); got != tt.want {
			t.Errorf("Bonus(%vs) = %v, want %v", tt.duration, got, tt.want)
		}
	}
}

func TestVideoBonus_NoBonus(t *testing.T) {
	v := DefaultVideoBonus()
	neg := -3.0
	nan := math.NaN()
	zero := 0.0
	tests := []struct {
		name string
		post *core.Post
	}{
		{"nil post", nil},
		{"no video", core.NewPost("p", "a", "")},
		{"video without duration", &core.Post{ID: "p", HasVideo: true}},
		{"duration without video flag", &core.Post{ID: "p", VideoDurationSec: &zero}},
		{"negative duration", &core.Post{ID: "p", HasVideo: true, VideoDurationSec: &neg}},
		{"zero duration", &core.Post{ID: "p", HasVideo: true, VideoDurationSec: &zero}},
		{"nan duration", &core.Post{ID: "p", HasVideo: true, VideoDurationSec: &nan}},
	}
	for _, tt := range tests {
		if got := v.Bonus(tt.post); got != 0 {
			t.Errorf("%s: Bonus() = %v, want 0", tt.name, got)
		}
	}
}
