package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/feast"
	"github.com/rushteam/feedrank/model"
	"github.com/rushteam/feedrank/store"
)

// CloseFunc 释放 Predictor 持有的连接，无连接时为空操作。
type CloseFunc func() error

func noopClose() error { return nil }

// BuildPredictor 按 Kind 构造 Predictor：
//   - simulated：确定性模拟（Seed）
//   - static：从 PredictionsFile 加载固定预测向量
//   - store：Redis 中的离线预测向量
//   - rpc：HTTP 预估服务（带熔断）
//   - feast：Feast 在线特征
func BuildPredictor(s PredictorSettings) (model.Predictor, CloseFunc, error) {
	switch s.Kind {
	case "", "simulated":
		return model.NewSimulatedPredictor(s.Seed), noopClose, nil

	case "static":
		table, err := LoadPredictions(s.PredictionsFile)
		if err != nil {
			return nil, nil, err
		}
		return model.NewStaticPredictor(table), noopClose, nil

	case "store":
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout(s.Timeout))
		rs, err := store.NewRedisStore(ctx, s.RedisAddr, s.RedisDB)
		cancel()
		if err != nil {
			return nil, nil, core.WrapDomainError(core.ModuleConfig, core.ErrorCodeUnavailable, "connect redis", err)
		}
		return model.NewStorePredictor(rs, s.KeyPrefix), rs.Close, nil

	case "rpc":
		var opts []model.RPCOption
		if s.FailureThreshold > 0 {
			opts = append(opts, model.WithFailureThreshold(s.FailureThreshold))
		}
		return model.NewRPCPredictor(s.Endpoint, s.Timeout, opts...), noopClose, nil

	case "feast":
		host, port, err := feast.ParseEndpoint(s.FeastEndpoint)
		if err != nil {
			return nil, nil, core.WrapDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "feast endpoint", err)
		}
		var opts []feast.ClientOption
		if s.Timeout > 0 {
			opts = append(opts, feast.WithTimeout(s.Timeout))
		}
		client, err := feast.NewGrpcClient(host, port, s.FeastProject, opts...)
		if err != nil {
			return nil, nil, core.WrapDomainError(core.ModuleConfig, core.ErrorCodeUnavailable, "connect feast", err)
		}
		p := model.NewFeastPredictor(client, s.FeastProject, s.FeastFeatureView)
		p.FollowingFeatureView = s.FeastFollowingView
		return p, client.Close, nil

	default:
		return nil, nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, fmt.Sprintf("unknown predictor kind %q", s.Kind))
	}
}

// LoadPredictions 读取固定预测向量文件：
//
//	"1":
//	  favorite: 0.12
//	  reply: 0.03
//	  ...
func LoadPredictions(path string) (map[string]core.Predictions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var raw map[string]map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse predictions: %w", err)
	}
	table := make(map[string]core.Predictions, len(raw))
	for id, vals := range raw {
		pred := make(core.Predictions, len(vals))
		for k, v := range vals {
			a, err := core.ParseActionKind(k)
			if err != nil {
				return nil, err
			}
			pred[a] = v
		}
		table[id] = pred
	}
	return table, nil
}

func dialTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}
