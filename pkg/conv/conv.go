// Package conv 从 YAML/JSON 解码出的 map[string]any 中按类型读取配置项。
//
// YAML 会把 1 解码为 int、把 1.5 解码为 float64，读取数值时统一兼容。
package conv

import (
	"strconv"
	"time"
)

// ToFloat64 将数值类型转为 float64，非数值返回 false。
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ConfigGet 按 key 取 T，缺失或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if t, ok := m[key].(T); ok {
		return t
	}
	return defaultVal
}

// ConfigGetFloat64 取数值型配置。
func ConfigGetFloat64(m map[string]any, key string, defaultVal float64) float64 {
	if f, ok := ToFloat64(m[key]); ok {
		return f
	}
	return defaultVal
}

// ConfigGetInt64 取整数配置，小数部分被截断。
func ConfigGetInt64(m map[string]any, key string, defaultVal int64) int64 {
	if f, ok := ToFloat64(m[key]); ok {
		return int64(f)
	}
	return defaultVal
}

// ConfigGetSeconds 取以秒为单位的时长，缺失或非正数时返回 defaultVal。
func ConfigGetSeconds(m map[string]any, key string, defaultVal time.Duration) time.Duration {
	f, ok := ToFloat64(m[key])
	if !ok || f <= 0 {
		return defaultVal
	}
	return time.Duration(f * float64(time.Second))
}

// ConfigGetMap 取嵌套的配置段。
func ConfigGetMap(m map[string]any, key string) (map[string]any, bool) {
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

// ConfigGetFloatMap 取 name -> 数值 的配置段（如权重覆盖），非数值条目被跳过。
func ConfigGetFloatMap(m map[string]any, key string) map[string]float64 {
	sub, ok := ConfigGetMap(m, key)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(sub))
	for k, v := range sub {
		if f, ok := ToFloat64(v); ok {
			out[k] = f
		}
	}
	return out
}

// ConfigGetStrings 取字符串列表；数值元素按最短十进制形式转为字符串，其他元素被跳过。
func ConfigGetStrings(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
			continue
		}
		if f, ok := ToFloat64(e); ok {
			out = append(out, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return out
}
