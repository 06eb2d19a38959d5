// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/log"
	"github.com/vechain/stakevault/metrics"
)

var logger = log.WithContext("pkg", "httpserver")

const (
	maxBodySize     = 200 * 1024
	shutdownTimeout = 5 * time.Second
)

// Server is a listening HTTP server.
type Server struct {
	srv      *http.Server
	listener net.Listener
	url      string
}

// New listens on addr and prepares to serve handler. Request bodies are
// limited in size.
func New(addr string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen addr [%v]", addr)
	}
	return &Server{
		srv: &http.Server{
			Handler:           requestBodyLimit(handler),
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
		listener: listener,
		url:      "http://" + listener.Addr().String(),
	}, nil
}

// NewMetrics listens on addr and serves the collected metrics under /metrics.
func NewMetrics(addr string) (*Server, error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return New(addr, handlers.CompressHandler(router))
}

// URL returns the base url of the server.
func (s *Server) URL() string {
	return s.url
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "serve [%v]", s.url)
	case <-ctx.Done():
	}

	logger.Info("stopping server...", "url", s.url)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.srv.Close()
		return errors.Wrapf(err, "shutdown [%v]", s.url)
	}
	return nil
}

// Close stops a server which never ran.
func (s *Server) Close() error {
	return s.listener.Close()
}

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		h.ServeHTTP(w, r)
	})
}
