package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/feedrank/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("pred", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的 CEL 过滤表达式，可被多个 goroutine 并发复用。
//
// 可用变量：
//   - item.id / item.author_id / item.score / item.has_video / item.video_duration / item.in_network
//   - pred.<action>：预测概率，例如 pred.favorite
//   - label.<key>：Label 的 Value，例如 label.author_rank
//
// 示例：
//   - `item.score > 1.0`
//   - `item.has_video && item.video_duration <= 60.0`
//   - `label.author_rank == "0"`
//   - `pred.report < 0.01 && item.author_id != "spam"`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。表达式为空时返回 nil Program，其 Match 恒为 true。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.WrapDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, fmt.Sprintf("compile %q", expr), issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Match 对 item 求值，表达式必须返回 bool。
// 访问不存在的 label key 会报错，可以先用 `"key" in label` 判断。
func (p *Program) Match(item *core.Item) (bool, error) {
	if p == nil {
		return true, nil
	}
	if item == nil {
		return false, fmt.Errorf("nil item")
	}
	out, _, err := p.prg.Eval(buildInput(item))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Eval 编译并执行一次表达式，适合一次性判断；批量场景请使用 Compile。
func Eval(expr string, item *core.Item) (bool, error) {
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Match(item)
}

func buildInput(it *core.Item) map[string]interface{} {
	labels := make(map[string]interface{}, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	pred := make(map[string]interface{}, len(it.Predictions))
	for a, v := range it.Predictions {
		pred[string(a)] = v
	}

	item := map[string]interface{}{
		"id":             it.ID(),
		"author_id":      it.AuthorID(),
		"score":          it.Score,
		"has_video":      false,
		"video_duration": 0.0,
		"in_network":     false,
	}
	if it.Post != nil {
		item["has_video"] = it.Post.HasVideo
		item["in_network"] = it.Post.InNetwork
		if d, ok := it.Post.VideoDuration(); ok {
			item["video_duration"] = d
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"pred":  pred,
	}
}
