package feast

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 客户端实现。
type GrpcClient struct {
	client *feastsdk.GrpcClient

	// Project 默认项目名称
	Project string

	// Endpoint 服务端点（用于信息展示）
	Endpoint string

	timeout time.Duration
}

// NewGrpcClient 创建 Feast gRPC 客户端。
//
// 参数：
//   - host: Feast Serving 主机地址，例如 "localhost"
//   - port: gRPC 端口，0 时默认 6565
//   - project: 默认项目名称
func NewGrpcClient(host string, port int, project string, opts ...ClientOption) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}

	config := &ClientConfig{
		Endpoint: net.JoinHostPort(host, strconv.Itoa(port)),
		Project:  project,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(config)
	}

	var client *feastsdk.GrpcClient
	var err error
	if config.Auth != nil && config.Auth.Type == "static" && config.Auth.Token != "" {
		security := feastsdk.SecurityConfig{
			EnableTLS:  false,
			Credential: feastsdk.NewStaticCredential(config.Auth.Token),
		}
		client, err = feastsdk.NewSecureGrpcClient(host, port, security)
	} else {
		client, err = feastsdk.NewGrpcClient(host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("create feast grpc client: %w", err)
	}

	return &GrpcClient{
		client:   client,
		Project:  project,
		Endpoint: config.Endpoint,
		timeout:  config.Timeout,
	}, nil
}

// ParseEndpoint 解析 "host:port" 或 "grpc://host:port"，缺省端口为 6565。
func ParseEndpoint(endpoint string) (string, int, error) {
	endpoint = strings.TrimPrefix(endpoint, "grpc://")
	if !strings.Contains(endpoint, ":") {
		return endpoint, 6565, nil
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", 0, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("parse endpoint port %q: %w", portStr, err)
	}
	return host, port, nil
}

// GetOnlineFeatures 获取在线特征（实现 Client 接口）
func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if c.client == nil {
		return nil, fmt.Errorf("feast client closed")
	}
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("entity rows are required")
	}

	project := req.Project
	if project == "" {
		project = c.Project
	}
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	entityRows := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entityRow := make(feastsdk.Row)
		for k, v := range row {
			switch val := v.(type) {
			case string:
				entityRow[k] = feastsdk.StrVal(val)
			case int:
				entityRow[k] = feastsdk.Int64Val(int64(val))
			case int64:
				entityRow[k] = feastsdk.Int64Val(val)
			case float64:
				entityRow[k] = feastsdk.DoubleVal(val)
			case bool:
				entityRow[k] = feastsdk.BoolVal(val)
			default:
				entityRow[k] = feastsdk.StrVal(fmt.Sprintf("%v", val))
			}
		}
		entityRows[i] = entityRow
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	sdkResp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entityRows,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := sdkResp.Rows()
	if len(rows) != len(req.EntityRows) {
		return nil, fmt.Errorf("response row count mismatch: expected %d, got %d", len(req.EntityRows), len(rows))
	}

	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]interface{}, len(req.Features))
		for _, name := range req.Features {
			if val, ok := row[name]; ok && val != nil {
				values[name] = convertFromSDKValue(val)
			}
		}
		vectors[i] = FeatureVector{Values: values, EntityRow: req.EntityRows[i]}
	}
	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

// Close 关闭客户端（SDK 连接由 gRPC 管理）
func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

// SDK 的 *types.Value 是 protobuf oneof，只有一个 getter 返回非零值。
type (
	doubleGetter interface{ GetDoubleVal() float64 }
	floatGetter  interface{ GetFloatVal() float32 }
	int64Getter  interface{ GetInt64Val() int64 }
	int32Getter  interface{ GetInt32Val() int32 }
)

// convertFromSDKValue 将 SDK 值转换为 float64，无法识别的值按 0 处理。
func convertFromSDKValue(val interface{}) float64 {
	switch v := val.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	if g, ok := val.(doubleGetter); ok {
		if f := g.GetDoubleVal(); f != 0 {
			return f
		}
	}
	if g, ok := val.(floatGetter); ok {
		if f := g.GetFloatVal(); f != 0 {
			return float64(f)
		}
	}
	if g, ok := val.(int64Getter); ok {
		if n := g.GetInt64Val(); n != 0 {
			return float64(n)
		}
	}
	if g, ok := val.(int32Getter); ok {
		if n := g.GetInt32Val(); n != 0 {
			return float64(n)
		}
	}
	return 0
}

var _ Client = (*GrpcClient)(nil)
