package core

import (
	"math"
	"testing"
)

func fullPredictions(v float64) Predictions {
	p := make(Predictions)
	for _, a := range AllActions() {
		p[a] = v
	}
	return p
}

func TestAllActions(t *testing.T) {
	actions := AllActions()
	if len(actions) != 15 {
		t.Fatalf("len(AllActions()) = %d, want 15", len(actions))
	}
	actions[0] = "mutated"
	if AllActions()[0] != ActionFavorite {
		t.Error("AllActions() exposes internal slice")
	}
}

func TestParseActionKind(t *testing.T) {
	a, err := ParseActionKind("video_view")
	if err != nil || a != ActionVideoView {
		t.Errorf("ParseActionKind(video_view) = %q, %v", a, err)
	}
	if _, err := ParseActionKind("bookmark"); !IsInvalidInput(err) {
		t.Errorf("ParseActionKind(bookmark) err = %v", err)
	}
}

func TestPredictions_Validate(t *testing.T) {
	ok := fullPredictions(0.5)
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Predictions)
	}{
		{"missing", func(p Predictions) { delete(p, ActionDwell) }},
		{"above one", func(p Predictions) { p[ActionFavorite] = 1.01 }},
		{"negative", func(p Predictions) { p[ActionReport] = -0.01 }},
		{"nan", func(p Predictions) { p[ActionShare] = math.NaN() }},
		{"unknown", func(p Predictions) { p[ActionKind("bookmark")] = 0.1 }},
	}
	for _, tt := range tests {
		p := fullPredictions(0.5)
		tt.mutate(p)
		if err := p.Validate(); !IsInvalidInput(err) {
			t.Errorf("%s: Validate() = %v, want INVALID_INPUT", tt.name, err)
		}
	}

	edges := fullPredictions(0)
	edges[ActionFavorite] = 1
	if err := edges.Validate(); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
}

func TestPredictions_Clone(t *testing.T) {
	p := fullPredictions(0.2)
	c := p.Clone()
	c[ActionFavorite] = 0.9
	if p[ActionFavorite] != 0.2 {
		t.Error("Clone() shares storage")
	}
	var nilPred Predictions
	if nilPred.Clone() != nil {
		t.Error("Clone(nil) != nil")
	}
}
