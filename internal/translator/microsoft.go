package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// DefaultEndpoint is the global Microsoft Translator host.
	DefaultEndpoint = "https://api.cognitive.microsofttranslator.com"

	// DefaultRegion is used when no region is configured.
	DefaultRegion = "uksouth"

	// NotFoundText replaces a translation missing from an otherwise valid response.
	NotFoundText = "Translation not found"

	apiVersion   = "3.0"
	maxErrorBody = 512
)

var (
	SourceLang = language.Urdu
	TargetLang = language.English
)

// MicrosoftService calls the Translator v3.0 REST API for the fixed
// Urdu to English pair.
type MicrosoftService struct {
	endpoint string
	client   *http.Client
}

func NewMicrosoftService(timeout time.Duration) *MicrosoftService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MicrosoftService{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// SetEndpoint points the service at another Translator host, such as a
// regional endpoint or a local stand-in.
func (s *MicrosoftService) SetEndpoint(endpoint string) {
	if endpoint != "" {
		s.endpoint = strings.TrimRight(endpoint, "/")
	}
}

func (s *MicrosoftService) Name() string {
	return "microsoft"
}

// TranslateURL returns the full request URL, query included.
func (s *MicrosoftService) TranslateURL() string {
	return fmt.Sprintf("%s/translate?api-version=%s&from=%s&to=%s",
		s.endpoint, apiVersion, SourceLang, TargetLang)
}

func (s *MicrosoftService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if cfg.APIKey == "" {
		result.Error = "API key not configured"
		return result, &ProviderError{Kind: KindConfig, Err: errors.New("API key not configured")}
	}

	region := cfg.APIRegion
	if region == "" {
		region = DefaultRegion
	}

	jsonData, err := json.Marshal([]TranslateRequest{{Text: req.Text}})
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, &ProviderError{Kind: KindTransport, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TranslateURL(), bytes.NewReader(jsonData))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, &ProviderError{Kind: KindTransport, Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", cfg.APIKey)
	httpReq.Header.Set("Ocp-Apim-Subscription-Region", region)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, &ProviderError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result, &ProviderError{Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Error = fmt.Sprintf("API returned status %d", resp.StatusCode)
		return result, &ProviderError{Kind: KindStatus, StatusCode: resp.StatusCode, Body: truncate(body, maxErrorBody)}
	}

	if !json.Valid(body) {
		result.Error = "failed to decode response: invalid JSON"
		return result, &ProviderError{
			Kind:       KindDecode,
			StatusCode: resp.StatusCode,
			Body:       truncate(body, maxErrorBody),
			Err:        errors.New("invalid JSON in response body"),
		}
	}

	text, ok := extractTranslation(body)
	result.TranslatedText = text
	result.Found = ok
	if !ok {
		result.TranslatedText = NotFoundText
	}

	return result, nil
}

// IsAvailable reports whether the service can be called at all. Credentials
// are supplied per call, so there is nothing to check up front.
func (s *MicrosoftService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *MicrosoftService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return []string{SourceLang.String(), TargetLang.String()}, nil
}

type translationItem struct {
	Translations []struct {
		Text *string `json:"text"`
	} `json:"translations"`
}

// extractTranslation returns response[0].translations[0].text. Any shape
// mismatch (wrong types, empty arrays, null or empty text) yields false.
// body must already be valid JSON.
func extractTranslation(body []byte) (string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return "", false
	}

	var first translationItem
	if err := json.Unmarshal(items[0], &first); err != nil {
		return "", false
	}
	if len(first.Translations) == 0 {
		return "", false
	}

	text := first.Translations[0].Text
	if text == nil || *text == "" {
		return "", false
	}
	return *text, true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
