package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/feedrank/config"
	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/feed"
	"github.com/rushteam/feedrank/filter"
	"github.com/rushteam/feedrank/metrics"
	"github.com/rushteam/feedrank/pipeline"
	"github.com/rushteam/feedrank/rerank"
)

type rankOptions struct {
	postsFile    string
	pipelineFile string
	viewer       string
	following    []string
	seed         uint64
	where        string
	top          int
	explain      bool
}

func newRankCmd() *cobra.Command {
	opts := &rankOptions{}
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank candidate posts and print the final feed",
		Long: `Rank candidate posts (the built-in samples unless --posts is given).

--where keeps only results matching a CEL expression over item.*, pred.* and label.*,
for example: --where 'item.has_video && item.score > 1.0'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.postsFile, "posts", "", "YAML file with a list of posts")
	f.StringVar(&opts.pipelineFile, "pipeline", "", "pipeline YAML; runs the configured node graph instead of the default ranker")
	f.StringVar(&opts.viewer, "viewer", "", "viewer id")
	f.StringSliceVar(&opts.following, "following", feed.SampleFollowing, "authors the viewer follows")
	f.Uint64Var(&opts.seed, "seed", 42, "seed for the simulated predictor")
	f.StringVar(&opts.where, "where", "", "CEL filter applied to the ranked feed")
	f.IntVar(&opts.top, "top", 0, "show only the first n results (0 = all)")
	f.BoolVar(&opts.explain, "explain", false, "print a score breakdown for the top post")
	return cmd
}

func runRank(cmd *cobra.Command, opts *rankOptions) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		s.Predictor.Seed = opts.seed
	}

	posts := feed.SamplePosts()
	if opts.postsFile != "" {
		if posts, err = loadPosts(opts.postsFile); err != nil {
			return err
		}
	}
	markInNetwork(posts, opts.following)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rctx := core.NewRecommendContext(opts.viewer, opts.following)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Viewer follows: %v\n", opts.following)
	fmt.Fprintf(out, "Ranking %d candidate posts...\n", len(posts))

	var (
		items  []*core.Item
		ranker *feed.Ranker
	)
	if opts.pipelineFile != "" {
		items, err = runConfiguredPipeline(ctx, rctx, opts.pipelineFile, posts)
	} else {
		ranker, items, err = runRanker(ctx, rctx, s, posts)
	}
	if err != nil {
		return err
	}

	display, err := displayPipeline(opts)
	if err != nil {
		return err
	}
	items, err = display.Run(ctx, rctx, items)
	if err != nil {
		return err
	}
	results := toResults(items)

	printFeed(out, results, rctx)
	if ranker != nil && opts.explain && len(results) > 0 {
		printExplanation(out, ranker.Explain(results[0]))
	}
	if ranker != nil {
		printAuthorDiversity(out, ranker, results)
	}
	return nil
}

func runRanker(ctx context.Context, rctx *core.RecommendContext, s *config.Settings, posts []*core.Post) (*feed.Ranker, []*core.Item, error) {
	predictor, closeFn, err := config.BuildPredictor(s.Predictor)
	if err != nil {
		return nil, nil, err
	}
	defer closeFn()

	weights, err := s.WeightTable()
	if err != nil {
		return nil, nil, err
	}
	ranker, err := feed.NewRanker(predictor,
		feed.WithWeights(weights),
		feed.WithDecayFactor(s.DecayFactor),
		feed.WithVideoBonus(s.VideoBonus()),
		feed.WithConcurrency(s.Concurrency),
		feed.WithMetrics(metrics.NewCollectors(prometheus.NewRegistry())),
	)
	if err != nil {
		return nil, nil, err
	}
	results, err := ranker.RankWithContext(ctx, rctx, posts)
	if err != nil {
		return nil, nil, err
	}
	items := make([]*core.Item, 0, len(results))
	for _, r := range results {
		items = append(items, &core.Item{Post: r.Post, Score: r.Score, Predictions: r.Predictions, Labels: r.Labels})
	}
	return ranker, items, nil
}

func runConfiguredPipeline(ctx context.Context, rctx *core.RecommendContext, path string, posts []*core.Post) ([]*core.Item, error) {
	cfg, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		return nil, err
	}
	items := make([]*core.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, core.NewItem(post))
	}
	return p.Run(ctx, rctx, items)
}

// displayPipeline 是排序之后的展示层：--where 过滤与 --top 截断。
func displayPipeline(opts *rankOptions) (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{}
	if opts.where != "" {
		f, err := filter.NewExprFilter(opts.where)
		if err != nil {
			return nil, err
		}
		p.Nodes = append(p.Nodes, &filter.FilterNode{Filters: []filter.Filter{f}})
	}
	if opts.top > 0 {
		p.Nodes = append(p.Nodes, &rerank.TopNNode{N: opts.top})
	}
	return p, nil
}

func toResults(items []*core.Item) []feed.Result {
	out := make([]feed.Result, 0, len(items))
	for _, it := range items {
		out = append(out, feed.Result{Post: it.Post, Score: it.Score, Predictions: it.Predictions, Labels: it.Labels})
	}
	return out
}

func loadPosts(path string) ([]*core.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	var posts []*core.Post
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}
	return posts, nil
}

func markInNetwork(posts []*core.Post, following []string) {
	set := make(map[string]struct{}, len(following))
	for _, a := range following {
		set[a] = struct{}{}
	}
	for _, p := range posts {
		if p == nil {
			continue
		}
		_, p.InNetwork = set[p.AuthorID]
	}
}
