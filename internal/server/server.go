// Package server exposes QR rendering over HTTP.
//
// Two artifact endpoints are served: /qr.png for PNG images and /qr.txt for
// UTF-8 half-block text. Rendered artifacts are cached keyed by their input
// parameters, so repeated requests for the same code are served from cache.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qrterm/qrterm/pkg/cache"
	"github.com/qrterm/qrterm/pkg/qr"
	"github.com/qrterm/qrterm/pkg/render/term"
)

const (
	// maxDataLen caps request payloads well above QR capacity so encoder
	// errors stay the authoritative limit while garbage requests are
	// rejected cheaply.
	maxDataLen = 8192

	defaultPNGSize = 256
	minPNGSize     = 64
	maxPNGSize     = 1024

	shutdownTimeout = 5 * time.Second
)

// requestIDHeader carries the per-request ID assigned by the middleware.
const requestIDHeader = "X-Request-Id"

// Server handles QR rendering requests.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	ttl    time.Duration
}

// New creates a Server. A nil cache disables artifact caching.
func New(logger *log.Logger, c cache.Cache, ttl time.Duration) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{logger: logger, cache: c, ttl: ttl}
}

// Router builds the HTTP routes with request-ID and logging middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Get("/qr.png", s.handlePNG)
	r.Get("/qr.txt", s.handleText)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// handlePNG serves GET /qr.png?data=...&size=...&level=...
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	data, level, ok := s.dataAndLevel(w, r)
	if !ok {
		return
	}

	size := defaultPNGSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minPNGSize || parsed > maxPNGSize {
			httpError(w, http.StatusBadRequest, "size must be an integer between %d and %d", minPNGSize, maxPNGSize)
			return
		}
		size = parsed
	}

	key := cache.RenderKey(data, level.String(), size, "png")
	s.serveArtifact(w, r, key, "image/png", func() ([]byte, error) {
		return qr.EncodePNG(data, level, size)
	})
}

// handleText serves GET /qr.txt?data=...&level=...&inverse=1
//
// Responses use the plain glyph set; ANSI coloring depends on process-level
// terminal detection and has no place in an HTTP body.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	data, level, ok := s.dataAndLevel(w, r)
	if !ok {
		return
	}

	inverse := r.URL.Query().Get("inverse") == "1"
	format := "txt"
	if inverse {
		format = "txt-inverse"
	}

	key := cache.RenderKey(data, level.String(), qr.DefaultQuietZone, format)
	s.serveArtifact(w, r, key, "text/plain; charset=utf-8", func() ([]byte, error) {
		m, err := qr.Encode(data, level)
		if err != nil {
			return nil, err
		}

		opts := []term.Option{term.WithPlain()}
		if inverse {
			opts = append(opts, term.WithInverse())
		}

		var buf bytes.Buffer
		if err := term.New(opts...).Render(&buf, m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// dataAndLevel extracts and validates the shared query parameters.
func (s *Server) dataAndLevel(w http.ResponseWriter, r *http.Request) (string, qr.RecoveryLevel, bool) {
	data := r.URL.Query().Get("data")
	if data == "" {
		httpError(w, http.StatusBadRequest, "data parameter required")
		return "", 0, false
	}
	if len(data) > maxDataLen {
		httpError(w, http.StatusBadRequest, "data exceeds %d bytes", maxDataLen)
		return "", 0, false
	}

	level := qr.LevelMedium
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := qr.ParseLevel(raw)
		if err != nil {
			httpError(w, http.StatusBadRequest, "%v", err)
			return "", 0, false
		}
		level = parsed
	}
	return data, level, true
}

// serveArtifact writes the cached artifact for key, rendering and caching it
// on a miss. Encoding failures map to 400: the input, not the server, is at
// fault (too long for any QR version).
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, key, contentType string, render func() ([]byte, error)) {
	ctx := r.Context()

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		s.logger.Debugf("Cache hit for %s", key)
		writeArtifact(w, contentType, data)
		return
	} else if err != nil {
		s.logger.Warnf("Cache read failed: %v", err)
	}

	data, err := render()
	if err != nil {
		if errors.Is(err, qr.ErrEmptyInput) {
			httpError(w, http.StatusBadRequest, "%v", err)
			return
		}
		httpError(w, http.StatusBadRequest, "cannot encode data: %v", err)
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warnf("Cache write failed: %v", err)
	}
	writeArtifact(w, contentType, data)
}

// requestID assigns each request a UUID, exposed in the response headers and
// request context for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// logRequests logs method, path, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s) id=%s", r.Method, r.URL.Path,
			time.Since(start).Round(time.Microsecond), requestIDFromContext(r.Context()))
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeArtifact(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func httpError(w http.ResponseWriter, status int, format string, args ...any) {
	http.Error(w, fmt.Sprintf(format, args...), status)
}
