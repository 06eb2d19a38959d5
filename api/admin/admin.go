// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves the operator endpoints which tune a running node.
package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/api/utils"
	"github.com/vechain/stakevault/log"
)

var logger = log.WithContext("pkg", "admin")

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

// LogLevel is the body and response of the loglevel endpoint.
type LogLevel struct {
	Level string `json:"level"`
}

// LogStatus is the body and response of the apilogs endpoint.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// New returns the admin handler mounted under /admin.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	sub.Path("/loglevel").
		Methods(http.MethodGet).
		Name("admin_get_log_level").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
			return utils.WriteJSON(w, LogLevel{Level: levelName(logLevel.Level())})
		}))
	sub.Path("/loglevel").
		Methods(http.MethodPost).
		Name("admin_post_log_level").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			var req LogLevel
			if err := utils.ParseJSON(r.Body, &req); err != nil {
				return utils.BadRequest(errors.WithMessage(err, "body"))
			}
			lvl, ok := levels[req.Level]
			if !ok {
				return utils.BadRequest(errors.Errorf("level: invalid value %q", req.Level))
			}
			logLevel.Set(lvl)
			logger.Info("log level updated", "level", req.Level)
			return utils.WriteJSON(w, LogLevel{Level: req.Level})
		}))

	sub.Path("/apilogs").
		Methods(http.MethodGet).
		Name("admin_get_api_logs").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
			return utils.WriteJSON(w, LogStatus{Enabled: apiLogs.Load()})
		}))
	sub.Path("/apilogs").
		Methods(http.MethodPost).
		Name("admin_post_api_logs").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			var req LogStatus
			if err := utils.ParseJSON(r.Body, &req); err != nil {
				return utils.BadRequest(errors.WithMessage(err, "body"))
			}
			apiLogs.Store(req.Enabled)
			logger.Info("api logs updated", "enabled", req.Enabled)
			return utils.WriteJSON(w, LogStatus{Enabled: apiLogs.Load()})
		}))

	return handlers.CompressHandler(router).ServeHTTP
}

func levelName(lvl slog.Level) string {
	for name, l := range levels {
		if l == lvl {
			return name
		}
	}
	return lvl.String()
}
