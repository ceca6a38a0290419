package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request describes one API call. It is a value: the gateway never mutates a
// Request it was given, it derives the replay from a copy.
type Request struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header

	retried bool
}

// NewRequest builds a request with a raw body.
func NewRequest(method, path string, body []byte) Request {
	return Request{Method: method, Path: path, Body: body, Header: http.Header{}}
}

// NewJSONRequest builds a request with v encoded as the JSON body.
func NewJSONRequest(method, path string, v any) (Request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("encode request body: %w", err)
	}
	r := NewRequest(method, path, b)
	r.Header.Set("Content-Type", "application/json")
	return r, nil
}

// Retried reports whether this request is already a replay.
func (r Request) Retried() bool { return r.retried }

// retry returns the replay of r: same method, path, body and headers, marked
// as retried.
func (r Request) retry() Request {
	out := r
	out.Header = r.Header.Clone()
	out.Body = bytes.Clone(r.Body)
	out.retried = true
	return out
}

func (r Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}
