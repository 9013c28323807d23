package serverless

import "encoding/json"

// WarmupSource identifies scheduled keep-warm events.
const WarmupSource = "warmup"

type WarmupEvent struct {
	Source string `json:"source"`
}

type WarmupResponse struct {
	Status string `json:"status"`
}

// IsWarmupEvent reports whether event is a keep-warm ping rather than an
// API Gateway request.
func IsWarmupEvent(event json.RawMessage) bool {
	var eventMap map[string]interface{}
	if err := json.Unmarshal(event, &eventMap); err != nil {
		return false
	}

	source, ok := eventMap["source"].(string)
	return ok && source == WarmupSource
}
