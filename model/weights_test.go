package model

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rushteam/feedrank/core"
)

func TestDefaultWeightTable(t *testing.T) {
	table := DefaultWeightTable()
	for _, a := range core.AllActions() {
		if _, ok := table.Weight(a); !ok {
			t.Errorf("default weights missing %q", a)
		}
	}
	if w, _ := table.Weight(core.ActionReport); w != -15 {
		t.Errorf("report weight = %v, want -15", w)
	}
	if got := table.ByMagnitude()[0]; got != core.ActionReport {
		t.Errorf("ByMagnitude()[0] = %q, want report", got)
	}
	if got := table.MaxScore(); math.Abs(got-13.6) > 1e-9 {
		t.Errorf("MaxScore() = %v, want 13.6", got)
	}
}

func TestNewWeightTable_Errors(t *testing.T) {
	missing := DefaultWeights()
	delete(missing, core.ActionDwell)
	if _, err := NewWeightTable(missing); !core.IsMissingWeight(err) {
		t.Errorf("missing dwell: err = %v, want MISSING_WEIGHT", err)
	}

	unknown := DefaultWeights()
	unknown[core.ActionKind("bookmark")] = 1
	if _, err := NewWeightTable(unknown); !core.IsInvalidInput(err) || !core.IsConfigError(err) {
		t.Errorf("unknown action: err = %v, want INVALID_INPUT config error", err)
	}

	nan := DefaultWeights()
	nan[core.ActionFavorite] = math.NaN()
	if _, err := NewWeightTable(nan); !core.IsInvalidInput(err) {
		t.Errorf("NaN weight: err = %v, want INVALID_INPUT", err)
	}
}

func TestWeightTable_MapIsCopy(t *testing.T) {
	table := DefaultWeightTable()
	m := table.Map()
	m[core.ActionFavorite] = 100
	if w, _ := table.Weight(core.ActionFavorite); w != 1 {
		t.Errorf("table mutated through Map(): %v", w)
	}
}

func TestParseWeights(t *testing.T) {
	table, err := ParseWeights(map[string]float64{"favorite": 4, "report": -20}, DefaultWeights())
	if err != nil {
		t.Fatalf("ParseWeights() error = %v", err)
	}
	if w, _ := table.Weight(core.ActionFavorite); w != 4 {
		t.Errorf("favorite = %v, want 4", w)
	}
	if w, _ := table.Weight(core.ActionReply); w != 2 {
		t.Errorf("reply = %v, want default 2", w)
	}

	if _, err := ParseWeights(map[string]float64{"favourite": 1}, DefaultWeights()); !core.IsInvalidInput(err) {
		t.Errorf("typo action: err = %v, want INVALID_INPUT", err)
	}
	if _, err := ParseWeights(map[string]float64{"favorite": 1}, nil); !core.IsMissingWeight(err) {
		t.Errorf("partial without base: err = %v, want MISSING_WEIGHT", err)
	}
}

func TestLoadWeightTable(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "weights.yaml")
	content := "weights:\n"
	for a, w := range DefaultWeights() {
		v := w
		if a == core.ActionFavorite {
			v = 1.25
		}
		content += "  " + string(a) + ": " + strconv.FormatFloat(v, 'f', -1, 64) + "\n"
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadWeightTable(full)
	if err != nil {
		t.Fatalf("LoadWeightTable() error = %v", err)
	}
	if w, _ := table.Weight(core.ActionFavorite); w != 1.25 {
		t.Errorf("favorite = %v, want 1.25", w)
	}

	partial := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(partial, []byte("weights:\n  favorite: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWeightTable(partial); !core.IsMissingWeight(err) {
		t.Errorf("partial file: err = %v, want MISSING_WEIGHT", err)
	}

	if _, err := LoadWeightTable(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestWeightedModel_Score(t *testing.T) {
	m, err := NewWeightedModel(DefaultWeightTable())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		pred core.Predictions
		want float64
	}{
		{"all zero", Uniform(0), 0},
		{"all one", Uniform(1), 1 + 2 + 1.5 + 2.5 + 0.5 + 0.3 + 0.8 + 0.3 + 1.5 + 0.2 + 3 - 5 - 10 - 8 - 15},
		{"favorite only", core.Predictions{core.ActionFavorite: 0.5}, 0.5},
		{"report dominates", core.Predictions{core.ActionFavorite: 0.9, core.ActionReport: 0.1}, 0.9 - 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Score(tt.pred)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := m.Score(core.Predictions{core.ActionKind("bookmark"): 0.5}); !core.IsMissingWeight(err) {
		t.Errorf("unknown action: err = %v, want MISSING_WEIGHT", err)
	}
	if _, err := NewWeightedModel(nil); !core.IsMissingWeight(err) {
		t.Errorf("NewWeightedModel(nil) err = %v", err)
	}
}

func TestWeightedModel_Contributions(t *testing.T) {
	m, _ := NewWeightedModel(DefaultWeightTable())
	pred, err := NewSimulatedPredictor(42).Predict(context.Background(), core.NewPost("p1", "alice", ""), true)
	if err != nil {
		t.Fatal(err)
	}

	score, err := m.Score(pred)
	if err != nil {
		t.Fatal(err)
	}
	contribs := m.Contributions(pred)
	if len(contribs) != len(core.AllActions()) {
		t.Fatalf("len = %d", len(contribs))
	}
	var sum float64
	for i, c := range contribs {
		sum += c.Contribution
		if i > 0 && math.Abs(contribs[i-1].Weight) < math.Abs(c.Weight) {
			t.Errorf("not ordered by |weight| at %d", i)
		}
	}
	if math.Abs(sum-score) > 1e-9 {
		t.Errorf("sum(contributions) = %v, Score() = %v", sum, score)
	}
}
