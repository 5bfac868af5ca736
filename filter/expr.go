package filter

import (
	"context"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/pkg/dsl"
)

// ExprFilter 保留满足 CEL 表达式的条目，其余过滤掉。
//
//	f, err := filter.NewExprFilter(`item.score > 1.0 && pred.report < 0.01`)
type ExprFilter struct {
	Program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	keep, err := f.Program.Match(item)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
