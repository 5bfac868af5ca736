package builders

import (
	"context"
	"testing"

	"github.com/rushteam/feedrank/config"
	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/pipeline"
)

func TestSupportedTypes(t *testing.T) {
	want := map[string]bool{
		"filter":                  true,
		"rank.weighted":           true,
		"rerank.author_diversity": true,
		"rerank.topn":             true,
	}
	got := config.SupportedTypes()
	for _, typ := range got {
		delete(want, typ)
	}
	if len(want) != 0 {
		t.Errorf("missing registered types: %v (got %v)", want, got)
	}
}

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: for_you
  nodes:
    - type: rank.weighted
      config:
        concurrency: 2
        weights: {favorite: 1.5}
        predictor: {kind: simulated, seed: 42}
    - type: rerank.author_diversity
      config: {factor: 0.7}
    - type: filter
      config:
        filters:
          - {type: author_block, authors: [news_org]}
    - type: rerank.topn
      config: {n: 3}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}

	posts := []*core.Post{
		core.NewPost("1", "alice", ""),
		core.NewPost("2", "alice", ""),
		core.NewPost("3", "bob", ""),
		core.NewVideoPost("4", "viral_account", "", 45),
		core.NewPost("5", "news_org", ""),
	}
	items := make([]*core.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, core.NewItem(post))
	}

	out, err := p.Run(context.Background(), core.NewRecommendContext("v", []string{"alice", "bob"}), items)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, it := range out {
		if it.AuthorID() == "news_org" {
			t.Errorf("blocked author at %d", i)
		}
		if i > 0 && out[i-1].Score < it.Score {
			t.Errorf("not sorted at %d", i)
		}
	}
}

func TestBuilders_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown type", "pipeline:\n  nodes:\n    - type: rank.lr\n"},
		{"bad factor", "pipeline:\n  nodes:\n    - type: rerank.author_diversity\n      config: {factor: 1.5}\n"},
		{"bad weight", "pipeline:\n  nodes:\n    - type: rank.weighted\n      config:\n        weights: {bookmark: 1}\n"},
		{"bad predictor", "pipeline:\n  nodes:\n    - type: rank.weighted\n      config:\n        predictor: {kind: rpc}\n"},
		{"bad filter", "pipeline:\n  nodes:\n    - type: filter\n      config:\n        filters:\n          - {type: expr, expr: \"item.score >\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := pipeline.ParseYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := cfg.BuildPipeline(config.DefaultFactory()); err == nil {
				t.Error("expected build error")
			}
		})
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"ok", "pipeline:\n  nodes:\n    - type: rank.weighted\n    - type: rerank.author_diversity\n", false},
		{"filter before scoring", "pipeline:\n  nodes:\n    - type: filter\n    - type: rank.weighted\n", false},
		{"empty", "pipeline:\n  name: empty\n", true},
		{"unknown type", "pipeline:\n  nodes:\n    - type: rank.lr\n", true},
		{"missing type", "pipeline:\n  nodes:\n    - config: {n: 1}\n", true},
		{"decay before scoring", "pipeline:\n  nodes:\n    - type: rerank.author_diversity\n    - type: rank.weighted\n", true},
		{"topn without scoring", "pipeline:\n  nodes:\n    - type: rerank.topn\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := pipeline.ParseYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			err = config.ValidatePipelineConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePipelineConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !core.IsConfigError(err) {
				t.Errorf("error %v is not a config error", err)
			}
		})
	}
}
