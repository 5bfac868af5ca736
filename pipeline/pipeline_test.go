package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/metrics"
)

type scaleNode struct {
	factor float64
	err    error
}

func (n *scaleNode) Name() string { return "test.scale" }
func (n *scaleNode) Kind() Kind   { return KindReRank }

func (n *scaleNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.WithScore(it.Score*n.factor))
	}
	return out, nil
}

func TestPipeline_Run(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := &Pipeline{
		Nodes:   []Node{&scaleNode{factor: 2}, &scaleNode{factor: 0.5}},
		Metrics: metrics.NewCollectors(reg),
	}
	in := core.NewItem(core.NewPost("1", "alice", "hi"))
	in.Score = 3

	out, err := p.Run(context.Background(), nil, []*core.Item{in})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || out[0].Score != 3 {
		t.Fatalf("Run() = %+v", out)
	}
	if in.Score != 3 {
		t.Errorf("input item mutated: %v", in.Score)
	}
	if n := testutil.CollectAndCount(p.Metrics.NodeDuration); n != 1 {
		t.Errorf("node duration series = %d, want 1", n)
	}
}

func TestPipeline_RunError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{&scaleNode{factor: 1}, &scaleNode{err: boom}}}
	out, err := p.Run(context.Background(), nil, []*core.Item{core.NewItem(core.NewPost("1", "a", ""))})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() err = %v, want boom", err)
	}
	if out != nil {
		t.Errorf("Run() returned partial result: %v", out)
	}
}

func TestConfig_BuildPipeline(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
pipeline:
  name: test
  nodes:
    - type: test.scale
      config:
        factor: 2
`))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "test" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	factory := NewNodeFactory()
	factory.Register("test.scale", func(c map[string]interface{}) (Node, error) {
		f, _ := c["factor"].(int)
		return &scaleNode{factor: float64(f)}, nil
	})
	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(p.Nodes))
	}

	if _, err := NewNodeFactory().Build("missing", nil); !core.IsNotSupported(err) {
		t.Errorf("Build(missing) err = %v, want NOT_SUPPORTED", err)
	}
	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "missing"})
	if _, err := cfg.BuildPipeline(factory); !core.IsNotSupported(err) {
		t.Errorf("BuildPipeline() err = %v, want NOT_SUPPORTED", err)
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "pipeline.json")
	if err := os.WriteFile(jsonPath, []byte(`{"pipeline":{"name":"j","nodes":[{"type":"test.scale","config":{"factor":3}}]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "pipeline.yml")
	if err := os.WriteFile(yamlPath, []byte("pipeline:\n  name: y\n  nodes:\n    - type: test.scale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for path, name := range map[string]string{jsonPath: "j", yamlPath: "y"} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if cfg.Pipeline.Name != name || len(cfg.Pipeline.Nodes) != 1 {
			t.Errorf("Load(%s) = %+v", path, cfg)
		}
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
