// Package builders 注册内置 Node 的配置构建逻辑。
//
//	import _ "github.com/rushteam/feedrank/config/builders"
//
//	cfg, _ := pipeline.LoadFromYAML("pipeline.yaml")
//	p, _ := cfg.BuildPipeline(config.DefaultFactory())
package builders

import (
	"fmt"

	"github.com/rushteam/feedrank/config"
	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/filter"
	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/pipeline"
	"github.com/rushteam/feedrank/pkg/conv"
	"github.com/rushteam/feedrank/rank"
	"github.com/rushteam/feedrank/rerank"
)

func init() {
	config.Register("rank.weighted", BuildWeightedNode)
	config.Register("rerank.author_diversity", BuildAuthorDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
}

// BuildWeightedNode 构建 rank.weighted：
//
//	config:
//	  concurrency: 4
//	  weights: {favorite: 1.5}          # 覆盖默认权重
//	  video: {optimal: 0.5, good: 0.3, floor: 0.1}
//	  predictor: {kind: simulated, seed: 42}
//
// 由配置创建的 Predictor 连接（redis/feast）随进程存活。
func BuildWeightedNode(cfg map[string]interface{}) (pipeline.Node, error) {
	weights, err := model.ParseWeights(conv.ConfigGetFloatMap(cfg, "weights"), model.DefaultWeights())
	if err != nil {
		return nil, err
	}
	m, err := model.NewWeightedModel(weights)
	if err != nil {
		return nil, err
	}

	ps := config.DefaultSettings().Predictor
	if pc, ok := conv.ConfigGetMap(cfg, "predictor"); ok {
		ps = predictorSettings(pc, ps)
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	predictor, _, err := config.BuildPredictor(ps)
	if err != nil {
		return nil, err
	}

	video := model.DefaultVideoBonus()
	if vc, ok := conv.ConfigGetMap(cfg, "video"); ok {
		video.Optimal = conv.ConfigGetFloat64(vc, "optimal", video.Optimal)
		video.Good = conv.ConfigGetFloat64(vc, "good", video.Good)
		video.Floor = conv.ConfigGetFloat64(vc, "floor", video.Floor)
	}

	return &rank.WeightedNode{
		Predictor:   predictor,
		Model:       m,
		VideoBonus:  video,
		Concurrency: int(conv.ConfigGetInt64(cfg, "concurrency", 1)),
	}, nil
}

func predictorSettings(pc map[string]interface{}, ps config.PredictorSettings) config.PredictorSettings {
	ps.Kind = conv.ConfigGet(pc, "kind", ps.Kind)
	if seed := conv.ConfigGetInt64(pc, "seed", -1); seed >= 0 {
		ps.Seed = uint64(seed)
	}
	ps.PredictionsFile = conv.ConfigGet(pc, "predictions_file", ps.PredictionsFile)
	ps.Endpoint = conv.ConfigGet(pc, "endpoint", ps.Endpoint)
	ps.Timeout = conv.ConfigGetSeconds(pc, "timeout", ps.Timeout)
	if n := conv.ConfigGetInt64(pc, "failure_threshold", 0); n > 0 {
		ps.FailureThreshold = uint32(n)
	}
	ps.RedisAddr = conv.ConfigGet(pc, "redis_addr", ps.RedisAddr)
	ps.RedisDB = int(conv.ConfigGetInt64(pc, "redis_db", int64(ps.RedisDB)))
	ps.KeyPrefix = conv.ConfigGet(pc, "key_prefix", ps.KeyPrefix)
	ps.FeastEndpoint = conv.ConfigGet(pc, "feast_endpoint", ps.FeastEndpoint)
	ps.FeastProject = conv.ConfigGet(pc, "feast_project", ps.FeastProject)
	ps.FeastFeatureView = conv.ConfigGet(pc, "feast_feature_view", ps.FeastFeatureView)
	ps.FeastFollowingView = conv.ConfigGet(pc, "feast_following_view", ps.FeastFollowingView)
	return ps
}

// BuildAuthorDiversityNode 构建 rerank.author_diversity，factor 缺省 0.7，越界时构建失败。
func BuildAuthorDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	factor := conv.ConfigGetFloat64(cfg, "factor", rerank.DefaultDecayFactor)
	if err := rerank.ValidateDecayFactor(factor); err != nil {
		return nil, err
	}
	return &rerank.AuthorDiversityNode{Factor: factor}, nil
}

// BuildTopNNode 构建 rerank.topn。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n < 0 {
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, fmt.Sprintf("topn n must be >= 0, got %d", n))
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildFilterNode 构建 filter：
//
//	config:
//	  filters:
//	    - {type: expr, expr: "item.score > 0.5"}
//	    - {type: author_block, authors: [spam_account]}
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "filter node requires a filters list")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "filter entry must be a mapping")
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		case "author_block":
			authors := conv.ConfigGetStrings(filterMap, "authors")
			filters = append(filters, filter.NewAuthorBlockFilter(authors, nil, ""))
		default:
			return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, fmt.Sprintf("unknown filter type %q", filterType))
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}
