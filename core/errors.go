package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）、消息（Message）与模块（Module）
//   - Cause 保留上游原始错误，可通过 errors.Is / errors.As 穿透
//
// 使用场景：
//   - 权重表错误：MISSING_WEIGHT, INVALID_INPUT（启动时即失败）
//   - Predictor 错误：UPSTREAM（整批失败，不做降级）
//   - 输入错误：INVALID_INPUT（例如衰减因子越界、重复的 Post ID）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "MISSING_WEIGHT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "weights", "predictor", "rerank"）
	Cause   error  // 上游错误（可选）
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// IsDomainError 检查错误链中是否有 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中第一个 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// WrapDomainError 创建携带上游错误的领域错误
func WrapDomainError(module, code, message string, cause error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
	ErrorCodeMissingWeight = "MISSING_WEIGHT" // 权重表缺项（配置错误）
	ErrorCodeUpstream      = "UPSTREAM"       // 上游协作方失败
)

// 模块名称常量
const (
	ModuleStore     = "store"
	ModuleWeights   = "weights"
	ModulePredictor = "predictor"
	ModuleRank      = "rank"
	ModuleRerank    = "rerank"
	ModuleConfig    = "config"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsMissingWeight 检查错误是否为权重表缺项
func IsMissingWeight(err error) bool { return hasCode(err, ErrorCodeMissingWeight) }

// IsUpstream 检查错误是否为上游失败
func IsUpstream(err error) bool { return hasCode(err, ErrorCodeUpstream) }

// IsConfigError 检查错误是否属于配置类错误（权重表或配置模块的校验失败）。
func IsConfigError(err error) bool {
	domainErr := GetDomainError(err)
	if domainErr == nil {
		return false
	}
	if domainErr.Code == ErrorCodeMissingWeight {
		return true
	}
	return (domainErr.Module == ModuleWeights || domainErr.Module == ModuleConfig) &&
		domainErr.Code == ErrorCodeInvalidInput
}
