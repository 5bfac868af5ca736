package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征读取的领域抽象。
// 排序链路只需要在线特征（预测向量），不涉及历史特征与物化。
type Client interface {
	// GetOnlineFeatures 获取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 是在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征引用列表，格式 "feature_view:feature_name"
	Features []string

	// EntityRows 实体行，例如 [{"post_id": "p1"}]
	EntityRows []map[string]interface{}

	// Project 项目名称，为空时使用客户端默认项目
	Project string
}

// GetOnlineFeaturesResponse 是在线特征响应，FeatureVectors 与 EntityRows 一一对应。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征值。
type FeatureVector struct {
	Values    map[string]interface{}
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
	Auth     *AuthConfig
}

// AuthConfig 认证配置，目前只支持 static token。
type AuthConfig struct {
	Type  string // "static"
	Token string
}

// WithTimeout 设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
