// Package webtest routes outbound HTTP requests to in-process handlers so
// code that calls real hosts can be tested offline.
package webtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Transport is an http.RoundTripper that dispatches by request host.
// Requests for unknown hosts fail like an unreachable network.
type Transport struct {
	mu    sync.Mutex
	hosts map[string]http.Handler
	calls []string
}

// NewTransport creates an empty Transport.
func NewTransport() *Transport {
	return &Transport{hosts: make(map[string]http.Handler)}
}

// Handle routes requests for host to h.
func (t *Transport) Handle(host string, h http.Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hosts[host] = h
}

// HandleFunc routes requests for host to f.
func (t *Transport) HandleFunc(host string, f func(http.ResponseWriter, *http.Request)) {
	t.Handle(host, http.HandlerFunc(f))
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.calls = append(t.calls, req.Method+" "+req.URL.Host+req.URL.Path)
	h, ok := t.hosts[req.URL.Host]
	t.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("webtest: no route to host %q", req.URL.Host)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// Calls returns every request seen, as "METHOD host/path".
func (t *Transport) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

// Count returns how many calls start with prefix.
func (t *Transport) Count(prefix string) int {
	n := 0
	for _, c := range t.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
