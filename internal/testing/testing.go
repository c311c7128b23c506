// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
)

// FakeHelper is a test double for the sign/encrypt/decrypt helper.
//
// Sign returns Signature, Encrypt prefixes the payload with "enc:" and Decrypt returns
// Response when set, otherwise the body with the "enc:" prefix removed.
type FakeHelper struct {
	Signature string
	Response  string
	SignErr   error
	CryptErr  error

	mu       sync.Mutex
	payloads []string
	bodies   [][]byte
}

func (f *FakeHelper) Sign(_ context.Context, payload string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	if f.SignErr != nil {
		return "", f.SignErr
	}
	if f.Signature == "" {
		return "zzbfake", nil
	}
	return f.Signature, nil
}

func (f *FakeHelper) Encrypt(_ context.Context, payload string) ([]byte, error) {
	if f.CryptErr != nil {
		return nil, f.CryptErr
	}
	return []byte("enc:" + payload), nil
}

func (f *FakeHelper) Decrypt(_ context.Context, body []byte) (string, error) {
	f.mu.Lock()
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	if f.CryptErr != nil {
		return "", f.CryptErr
	}
	if f.Response != "" {
		return f.Response, nil
	}
	return strings.TrimPrefix(string(body), "enc:"), nil
}

// Payloads returns every payload passed to Sign.
func (f *FakeHelper) Payloads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.payloads...)
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

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing and counts every request it sees
type MockRoundTripper struct {
	response *http.Response
	err      error

	mu       sync.Mutex
	requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.response, m.err
}

// Calls reports how many requests reached the transport
func (m *MockRoundTripper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Client returns an *http.Client that uses m as its transport
func (m *MockRoundTripper) Client() *http.Client {
	return &http.Client{Transport: m}
}

// NewResponse builds a minimal response with the given status and body
func NewResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
