package conv

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestConfigGetFromYAML(t *testing.T) {
	var cfg map[string]any
	if err := yaml.Unmarshal([]byte(`
factor: 1
ratio: 0.5
n: 20
name: weighted
authors: [alice, 42]
weights: {favorite: 2, reply: 1.5, bad: x}
`), &cfg); err != nil {
		t.Fatal(err)
	}

	if got := ConfigGetFloat64(cfg, "factor", 0.7); got != 1 {
		t.Errorf("factor = %v, want 1", got)
	}
	if got := ConfigGetFloat64(cfg, "ratio", 0); got != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got)
	}
	if got := ConfigGetFloat64(cfg, "missing", 0.7); got != 0.7 {
		t.Errorf("missing = %v, want default", got)
	}
	if got := ConfigGetInt64(cfg, "n", 0); got != 20 {
		t.Errorf("n = %v, want 20", got)
	}
	if got := ConfigGet(cfg, "name", ""); got != "weighted" {
		t.Errorf("name = %q", got)
	}
	if got := ConfigGet(cfg, "n", "fallback"); got != "fallback" {
		t.Errorf("type mismatch should return default, got %q", got)
	}

	authors := ConfigGetStrings(cfg, "authors")
	if len(authors) != 2 || authors[0] != "alice" || authors[1] != "42" {
		t.Errorf("authors = %v", authors)
	}

	weights := ConfigGetFloatMap(cfg, "weights")
	if len(weights) != 2 || weights["favorite"] != 2 || weights["reply"] != 1.5 {
		t.Errorf("weights = %v", weights)
	}
	if got := ConfigGetFloatMap(cfg, "missing"); got != nil {
		t.Errorf("missing map = %v, want nil", got)
	}
	if _, ok := ConfigGetMap(cfg, "name"); ok {
		t.Error("scalar should not read as map")
	}
}

func TestConfigGetSeconds(t *testing.T) {
	cfg := map[string]any{"timeout": 2, "half": 0.5, "zero": 0, "bad": "5s"}
	def := 5 * time.Second
	tests := []struct {
		key  string
		want time.Duration
	}{
		{"timeout", 2 * time.Second},
		{"half", 500 * time.Millisecond},
		{"zero", def},
		{"bad", def},
		{"missing", def},
	}
	for _, tt := range tests {
		if got := ConfigGetSeconds(cfg, tt.key, def); got != tt.want {
			t.Errorf("ConfigGetSeconds(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConfigGet_NilMap(t *testing.T) {
	if got := ConfigGetFloat64(nil, "factor", 0.7); got != 0.7 {
		t.Errorf("got %v", got)
	}
	if got := ConfigGet[string](nil, "kind", "simulated"); got != "simulated" {
		t.Errorf("got %q", got)
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1.5, 1.5, true},
		{float32(0.5), 0.5, true},
		{3, 3, true},
		{int64(4), 4, true},
		{uint32(7), 7, true},
		{true, 0, false},
		{"1", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToFloat64(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
