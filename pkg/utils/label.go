package utils

import "strconv"

// Label 是排序链路中的一等公民：可解释、可追踪、可透传。
// Value 与 Source 的语义由业务自定义；这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // rank / rerank / rule / postprocess ...
}

// 链路内置的 Label key。
const (
	LabelRankModel      = "rank_model"
	LabelPredictor      = "predictor"
	LabelBaseScore      = "base_score"
	LabelVideoBonus     = "video_bonus"
	LabelDiversityDecay = "diversity_decay"
	LabelAuthorRank     = "author_rank"
)

// FloatLabel 用数值构造 Label，保留 6 位小数。
func FloatLabel(v float64, source string) Label {
	return Label{Value: strconv.FormatFloat(v, 'f', 6, 64), Source: source}
}

// IntLabel 用整数构造 Label。
func IntLabel(v int, source string) Label {
	return Label{Value: strconv.Itoa(v), Source: source}
}

// ParseFloat 解析数值型 Label，非数值返回 (0, false)。
func (l Label) ParseFloat() (float64, bool) {
	f, err := strconv.ParseFloat(l.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MergeLabel 用于合并同名 Label，遵循“保留历史、可追踪”的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
