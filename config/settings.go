// Package config 负责 feedrank 的运行配置与配置驱动的 Pipeline 构建。
//
// 运行配置按以下顺序分层加载，后者覆盖前者：
//  1. 内置默认值
//  2. YAML 配置文件（可选）
//  3. 环境变量：FEEDRANK_ 前缀，嵌套字段用双下划线分隔，
//     例如 FEEDRANK_DECAY_FACTOR=0.5、FEEDRANK_PREDICTOR__KIND=rpc、FEEDRANK_WEIGHTS__FAVORITE=2
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/logging"
	"github.com/rushteam/feedrank/model"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "FEEDRANK_"

// Settings 是 feedrank 的运行配置。
type Settings struct {
	// Weights 覆盖默认权重表中的同名项，未出现的 action 使用默认权重
	Weights map[string]float64 `koanf:"weights"`

	// WeightsFile 完整权重表文件，设置后忽略默认权重（Weights 仍会覆盖其中的同名项）
	WeightsFile string `koanf:"weights_file"`

	DecayFactor float64 `koanf:"decay_factor" validate:"gt=0,lte=1"`
	Concurrency int     `koanf:"concurrency" validate:"gte=0,lte=256"`

	Video     VideoSettings     `koanf:"video"`
	Predictor PredictorSettings `koanf:"predictor"`
	Logging   logging.Config    `koanf:"logging"`
}

// VideoSettings 视频加分分档，单位秒。
type VideoSettings struct {
	OptimalMin float64 `koanf:"optimal_min" validate:"gte=0"`
	OptimalMax float64 `koanf:"optimal_max" validate:"gtefield=OptimalMin"`
	GoodMin    float64 `koanf:"good_min" validate:"gte=0,ltefield=OptimalMin"`
	GoodMax    float64 `koanf:"good_max" validate:"gtefield=OptimalMax"`
	Optimal    float64 `koanf:"optimal" validate:"gte=0"`
	Good       float64 `koanf:"good" validate:"gte=0"`
	Floor      float64 `koanf:"floor" validate:"gte=0"`
}

// PredictorSettings 选择并配置 Predictor 实现。
type PredictorSettings struct {
	Kind string `koanf:"kind" validate:"oneof=simulated static store rpc feast"`

	// simulated
	Seed uint64 `koanf:"seed"`

	// static：YAML 文件，post_id -> action -> 概率
	PredictionsFile string `koanf:"predictions_file" validate:"required_if=Kind static"`

	// rpc
	Endpoint         string        `koanf:"endpoint" validate:"required_if=Kind rpc"`
	Timeout          time.Duration `koanf:"timeout" validate:"gte=0"`
	FailureThreshold uint32        `koanf:"failure_threshold"`

	// store（Redis）
	RedisAddr string `koanf:"redis_addr" validate:"required_if=Kind store"`
	RedisDB   int    `koanf:"redis_db" validate:"gte=0"`
	KeyPrefix string `koanf:"key_prefix"`

	// feast
	FeastEndpoint      string `koanf:"feast_endpoint" validate:"required_if=Kind feast"`
	FeastProject       string `koanf:"feast_project"`
	FeastFeatureView   string `koanf:"feast_feature_view"`
	FeastFollowingView string `koanf:"feast_following_view"`
}

// DefaultSettings 返回内置默认配置。
func DefaultSettings() Settings {
	v := model.DefaultVideoBonus()
	lc := logging.DefaultConfig()
	lc.Output = nil
	return Settings{
		DecayFactor: (&core.DefaultRankConfig{}).DefaultDecayFactor(),
		Concurrency: (&core.DefaultRankConfig{}).DefaultConcurrency(),
		Video: VideoSettings{
			OptimalMin: v.OptimalMin,
			OptimalMax: v.OptimalMax,
			GoodMin:    v.GoodMin,
			GoodMax:    v.GoodMax,
			Optimal:    v.Optimal,
			Good:       v.Good,
			Floor:      v.Floor,
		},
		Predictor: PredictorSettings{
			Kind:             "simulated",
			Seed:             42,
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
			KeyPrefix:        model.DefaultPredictionKeyPrefix,
			FeastProject:     "feedrank",
			FeastFeatureView: "post_engagement",
		},
		Logging: lc,
	}
}

// LoadSettings 加载配置：默认值 -> path 指向的 YAML 文件（为空时跳过）-> 环境变量。
// 校验失败返回 INVALID_INPUT（module config）。
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// envTransformFunc 将环境变量名转换为 koanf 路径：
// FEEDRANK_PREDICTOR__KIND -> predictor.kind
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate 校验配置字段；权重表的完整性在 WeightTable 中校验。
func (s *Settings) Validate() error {
	return validateStruct(s)
}

// Validate 校验 Predictor 配置。
func (p PredictorSettings) Validate() error {
	return validateStruct(p)
}

func validateStruct(v interface{}) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return core.WrapDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "invalid settings", err)
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, "invalid settings: "+strings.Join(msgs, "; "))
}

// WeightTable 根据配置构造权重表。
func (s *Settings) WeightTable() (*model.WeightTable, error) {
	base := model.DefaultWeights()
	if s.WeightsFile != "" {
		t, err := model.LoadWeightTable(s.WeightsFile)
		if err != nil {
			return nil, err
		}
		base = t.Map()
	}
	return model.ParseWeights(s.Weights, base)
}

// VideoBonus 返回视频加分分档。
func (s *Settings) VideoBonus() model.VideoBonus {
	return model.VideoBonus{
		OptimalMin: s.Video.OptimalMin,
		OptimalMax: s.Video.OptimalMax,
		GoodMin:    s.Video.GoodMin,
		GoodMax:    s.Video.GoodMax,
		Optimal:    s.Video.Optimal,
		Good:       s.Video.Good,
		Floor:      s.Video.Floor,
	}
}
