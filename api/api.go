// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakevault/api/doc"
	"github.com/vechain/stakevault/api/middleware"
	"github.com/vechain/stakevault/api/positions"
	"github.com/vechain/stakevault/api/rewards"
	"github.com/vechain/stakevault/api/status"
	"github.com/vechain/stakevault/api/tiers"
	"github.com/vechain/stakevault/log"
	"github.com/vechain/stakevault/staker"
)

var logger = log.WithContext("pkg", "api")

const defaultHistoryLimit = 1000

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	HistoryLimit         uint64
}

// New return api router
func New(s *staker.Staker, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	historyLimit := opts.HistoryLimit
	if historyLimit == 0 {
		historyLimit = defaultHistoryLimit
	}

	router := mux.NewRouter()

	router.Path("/doc/stakevault.yaml").
		Methods(http.MethodGet).
		Name("doc_get_spec").
		HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(doc.Yaml)
		})

	tiers.New(s.Model()).
		Mount(router, "/tiers")
	rewards.New(s.Model()).
		Mount(router, "/estimate")
	status.New(s).
		Mount(router, "/status")
	positions.New(s, historyLimit).
		Mount(router, "/positions")

	if opts.EnableMetrics {
		router.Use(middleware.Metrics)
	}
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-stakevault-ver", doc.Version())
			next.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.ExposedHeaders([]string{"x-stakevault-ver"}),
	)(handler)

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	handler = middleware.RequestLogger(logger, enabled, opts.SlowQueriesThreshold)(handler)

	return handler.ServeHTTP
}
