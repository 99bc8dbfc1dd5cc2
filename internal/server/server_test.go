package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/qrterm/qrterm/pkg/cache"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	ts := httptest.NewServer(New(logger, c, time.Hour).Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}

func TestPNGEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/qr.png?data=hello")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(body, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("body should be PNG bytes")
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestTextEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/qr.txt?data=hello")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if bytes.ContainsRune(body, 0x1b) {
		t.Error("text responses must not contain ANSI escapes")
	}

	// Deterministic across requests
	_, second := get(t, ts.URL+"/qr.txt?data=hello")
	if !bytes.Equal(body, second) {
		t.Error("identical requests should produce identical bodies")
	}

	// Inverse produces a different rendering
	_, inverse := get(t, ts.URL+"/qr.txt?data=hello&inverse=1")
	if bytes.Equal(body, inverse) {
		t.Error("inverse rendering should differ")
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing data", "/qr.png"},
		{"oversized data", "/qr.png?data=" + strings.Repeat("a", 9000)},
		{"over qr capacity", "/qr.txt?data=" + strings.Repeat("a", 8000)},
		{"bad level", "/qr.png?data=hi&level=X"},
		{"bad size", "/qr.png?data=hi&size=banana"},
		{"size out of range", "/qr.png?data=hi&size=9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := get(t, ts.URL+tt.path)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestArtifactCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	ts := newTestServer(t, c)

	_, first := get(t, ts.URL+"/qr.png?data=cached")

	// Second request must be served from cache with identical bytes
	_, second := get(t, ts.URL+"/qr.png?data=cached")
	if !bytes.Equal(first, second) {
		t.Error("cached response should match the original")
	}

	// The artifact landed in the cache under its render key
	key := cache.RenderKey("cached", "M", 256, "png")
	data, hit, err := c.Get(t.Context(), key)
	if err != nil || !hit {
		t.Fatalf("artifact should be cached (hit=%v err=%v)", hit, err)
	}
	if !bytes.Equal(data, first) {
		t.Error("cached artifact should match the response body")
	}
}
