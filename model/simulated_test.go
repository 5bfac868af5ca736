package model

import (
	"context"
	"testing"

	"github.com/rushteam/feedrank/core"
)

func TestSimulatedPredictor_Deterministic(t *testing.T) {
	p := NewSimulatedPredictor(42)
	post := core.NewPost("1", "alice", "hello")

	a, err := p.Predict(context.Background(), post, true)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	b, _ := p.Predict(context.Background(), post, true)
	for _, k := range core.AllActions() {
		if a[k] != b[k] {
			t.Errorf("%s: %v != %v", k, a[k], b[k])
		}
	}

	other, _ := NewSimulatedPredictor(43).Predict(context.Background(), post, true)
	same := true
	for _, k := range core.AllActions() {
		if a[k] != other[k] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical predictions")
	}
}

func TestSimulatedPredictor_Valid(t *testing.T) {
	p := NewSimulatedPredictor(7)
	for i, post := range []*core.Post{
		core.NewPost("1", "alice", ""),
		core.NewVideoPost("2", "viral", "", 45),
		core.NewPost("3", "news", ""),
	} {
		for _, follows := range []bool{true, false} {
			pred, err := p.Predict(context.Background(), post, follows)
			if err != nil {
				t.Fatal(err)
			}
			if err := pred.Validate(); err != nil {
				t.Errorf("post %d follows=%v: %v", i, follows, err)
			}
			for _, a := range []core.ActionKind{core.ActionNotInterested, core.ActionBlockAuthor, core.ActionMuteAuthor, core.ActionReport} {
				if pred[a] < 0.001 {
					t.Errorf("%s = %v, want >= 0.001", a, pred[a])
				}
			}
		}
	}
}

func TestSimulatedPredictor_Signals(t *testing.T) {
	p := NewSimulatedPredictor(1)
	text := core.NewPost("t", "a", "")
	pred, _ := p.Predict(context.Background(), text, false)
	if pred[core.ActionVideoView] != 0.01 {
		t.Errorf("video_view without video = %v, want 0.01", pred[core.ActionVideoView])
	}
	followed, _ := p.Predict(context.Background(), text, true)
	if followed[core.ActionFollowAuthor] != 0.001 {
		t.Errorf("follow_author when already following = %v, want 0.001", followed[core.ActionFollowAuthor])
	}
}

func TestSimulatedPredictor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSimulatedPredictor(1).Predict(ctx, core.NewPost("1", "a", ""), false); err == nil {
		t.Error("expected context error")
	}
}
