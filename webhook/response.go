package webhook

import (
	"encoding/json"
	"time"
)

/* Response is the normalized record of one invocation
 * Uses value semantics: entries are never mutated once recorded
 */
type Response struct {
	ID            string         `json:"id"`
	Target        string         `json:"target"`
	StatusCode    int            `json:"statusCode"`
	StatusMessage string         `json:"statusMessage"`
	Data          map[string]any `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	Duration      time.Duration  `json:"-"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Failed reports whether the invocation ended without a usable HTTP response
func (r Response) Failed() bool {
	return r.StatusMessage == StatusError
}

// Clone returns a copy of r whose Data shares nothing with the receiver
func (r Response) Clone() Response {
	if r.Data != nil {
		r.Data = cloneValue(r.Data).(map[string]any)
	}
	return r
}

// cloneValue deep-copies the maps and slices produced by JSON decoding
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = cloneValue(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, value := range v {
			out[i] = cloneValue(value)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON exposes Duration in milliseconds
func (r Response) MarshalJSON() ([]byte, error) {
	type Alias Response
	return json.Marshal(&struct {
		DurationMS int64 `json:"durationMs"`
		Alias
	}{
		DurationMS: r.Duration.Milliseconds(),
		Alias:      Alias(r),
	})
}

// UnmarshalJSON parses the JSON produced by MarshalJSON
func (r *Response) UnmarshalJSON(data []byte) error {
	type Alias Response
	aux := &struct {
		DurationMS int64 `json:"durationMs"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	r.Duration = time.Duration(aux.DurationMS) * time.Millisecond
	return nil
}
