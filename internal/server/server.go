// Package server publishes the latest almanac over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/metrics"
)

// cacheItem stores one rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

func newCacheItem(data []byte, modified time.Time) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: modified.UTC().Format(http.TimeFormat),
	}
}

// AlmanacServer serves the JSON document, the iCalendar feed and metrics.
type AlmanacServer struct {
	// Documents are read on every request and replaced once per generation.
	doc atomic.Pointer[cacheItem]
	cal atomic.Pointer[cacheItem]

	Port    string
	Metrics *metrics.Registry
}

// NewAlmanacServer creates a new instance of the server. reg may be nil.
func NewAlmanacServer(port string, reg *metrics.Registry) *AlmanacServer {
	return &AlmanacServer{
		Port:    port,
		Metrics: reg,
	}
}

// Handler returns the routing table.
func (s *AlmanacServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteAlmanacJSON, s.serve(&s.doc, config.MimeJSON))
	mux.HandleFunc(config.RouteAlmanacICS, s.serve(&s.cal, config.MimeTextCalendar))
	mux.Handle(config.RouteMetrics, s.Metrics.Handler())
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *AlmanacServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served documents. A nil feed withdraws the
// previous one and the iCalendar route answers 503.
func (s *AlmanacServer) Update(doc, cal []byte) {
	now := time.Now()

	item := newCacheItem(doc, now)
	s.doc.Store(item)
	if cal == nil {
		s.cal.Store(nil)
	} else {
		s.cal.Store(newCacheItem(cal, now))
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(doc),
		config.LogKeyETag, item.etag,
	)
}

// serve returns a handler for one cached document with HTTP caching support.
func (s *AlmanacServer) serve(cache *atomic.Pointer[cacheItem], mime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		item := cache.Load()
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set(config.HeaderContentType, mime)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)

		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyRoute, r.URL.Path,
					config.LogKeyError, err,
				)
			}
		}
	}
}
