package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the response wrapper every Streamlet endpoint returns:
//
//	{"statusCode": 200, "data": {...}, "message": "ok", "success": true}
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// Decode unmarshals the envelope's data payload into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("response envelope has no data")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// parseEnvelope attempts to read an Envelope from a response body.
// Endpoints that return bare JSON (no wrapper) are normalized into an
// envelope with the whole body as data.
func parseEnvelope(body []byte, statusCode int) *Envelope {
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && (env.StatusCode != 0 || env.Message != "" || len(env.Data) > 0) {
		if env.StatusCode == 0 {
			env.StatusCode = statusCode
		}
		return &env
	}

	return &Envelope{
		StatusCode: statusCode,
		Data:       json.RawMessage(body),
		Success:    statusCode >= 200 && statusCode < 300,
	}
}
