package translator

import (
	"context"
	"fmt"
	"time"
)

// ServiceConfig carries the per-deployment credentials a service needs.
type ServiceConfig struct {
	APIKey    string `mapstructure:"api_key" json:"-"`
	APIRegion string `mapstructure:"api_region" json:"api_region"`
}

type TranslateRequest struct {
	Text string `json:"text"`
}

type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Found          bool              `json:"found"`
	StatusCode     int               `json:"status_code"`
	Metadata       map[string]string `json:"metadata"`
	Latency        time.Duration     `json:"latency"`
	Error          string            `json:"error,omitempty"`
}

type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
	SupportedLanguages(ctx context.Context) ([]string, error)
}

// ErrorKind classifies why a provider call failed.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindStatus
	KindDecode
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ProviderError is returned by Translate for every failed provider call.
// Body holds a truncated copy of the provider response for diagnostics only.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("translation API error: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("translation API %s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("translation API %s error", e.Kind)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
