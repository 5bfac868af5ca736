package core

// RankConfig 提供排序链路的默认参数。
type RankConfig interface {
	// DefaultDecayFactor 返回作者多样性衰减因子，取值 (0,1]
	DefaultDecayFactor() float64

	// DefaultConcurrency 返回 Predictor 调用并发度，<=1 表示顺序调用
	DefaultConcurrency() int
}

// DefaultRankConfig 是默认的排序配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultDecayFactor() float64 {
	return 0.7
}

func (c *DefaultRankConfig) DefaultConcurrency() int {
	return 1
}
