// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// SequenceRoundTripper returns canned responses in order, then errors.
type SequenceRoundTripper struct {
	responses []*http.Response
	index     int
}

func NewSequenceRoundTripper(responses ...*http.Response) *SequenceRoundTripper {
	return &SequenceRoundTripper{responses: responses}
}

func (s *SequenceRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	if s.index >= len(s.responses) {
		return nil, errors.New("no more responses")
	}
	resp := s.responses[s.index]
	s.index++
	return resp, nil
}

// JSONResponse builds an *http.Response with a JSON body for round trippers.
func JSONResponse(status int, body any) *http.Response {
	data, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(data)),
	}
}

// Enveloped wraps data in the platform's response envelope shape.
func Enveloped(status int, data any, message string) map[string]any {
	return map[string]any{
		"statusCode": status,
		"data":       data,
		"message":    message,
		"success":    status >= 200 && status < 300,
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
