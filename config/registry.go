package config

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/pipeline"
)

// 配置驱动时需 import _ "github.com/rushteam/feedrank/config/builders"，
// 由其 init 注册 rank.weighted、rerank.author_diversity、rerank.topn、filter。

// NodeBuilder 与 pipeline.NodeBuilder 相同。
type NodeBuilder = pipeline.NodeBuilder

// 依赖打分结果的 Node 类型，必须出现在某个打分 Node 之后。
var scoredTypes = map[string]bool{
	"rerank.author_diversity": true,
	"rerank.topn":             true,
}

// 产生分数的 Node 类型。
var scoringTypes = map[string]bool{
	"rank.weighted": true,
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]NodeBuilder
}

var nodes = &registry{builders: make(map[string]NodeBuilder)}

func (r *registry) lookup(typeName string) (NodeBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[typeName]
	return b, ok
}

// Register 注册 Node 构建逻辑；同名类型后注册者覆盖先注册者。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	nodes.mu.Lock()
	nodes.builders[typeName] = builder
	nodes.mu.Unlock()
}

// SupportedTypes 返回已注册的 Node 类型（有序）。
func SupportedTypes() []string {
	nodes.mu.RLock()
	types := make([]string, 0, len(nodes.builders))
	for t := range nodes.builders {
		types = append(types, t)
	}
	nodes.mu.RUnlock()
	slices.Sort(types)
	return types
}

// DefaultFactory 以当前注册表快照构建 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()
	nodes.mu.RLock()
	defer nodes.mu.RUnlock()
	for typeName, builder := range nodes.builders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 在构建前检查 pipeline 配置：
//   - 至少包含一个 Node，且每个 Node 的类型都已注册
//   - 重排与截断类 Node 必须位于打分 Node 之后
//
// 失败时返回 config 模块的 INVALID_INPUT。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil || len(cfg.Pipeline.Nodes) == 0 {
		return invalidPipeline("pipeline has no nodes")
	}
	scored := false
	for i, nc := range cfg.Pipeline.Nodes {
		if _, ok := nodes.lookup(nc.Type); !ok {
			return invalidPipeline(fmt.Sprintf("node %d: unsupported type %q (supported: %v)", i, nc.Type, SupportedTypes()))
		}
		if scoredTypes[nc.Type] && !scored {
			return invalidPipeline(fmt.Sprintf("node %d: %s must follow a scoring node", i, nc.Type))
		}
		if scoringTypes[nc.Type] {
			scored = true
		}
	}
	return nil
}

func invalidPipeline(msg string) error {
	return core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, msg)
}
