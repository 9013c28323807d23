package internal

import "time"

// TranslationRecord is one handled request that reached the provider.
type TranslationRecord struct {
	ID             string        `json:"id"`
	SourceText     string        `json:"source_text"`
	SourceLang     string        `json:"source_lang"`
	TargetLang     string        `json:"target_lang"`
	ServiceName    string        `json:"service_name"`
	TranslatedText string        `json:"translated_text"`
	Found          bool          `json:"found"`
	StatusCode     int           `json:"status_code"`
	ErrorKind      string        `json:"error_kind,omitempty"`
	Latency        time.Duration `json:"latency"`
	Timestamp      time.Time     `json:"timestamp"`
}
