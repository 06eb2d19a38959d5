// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakevault/log"
)

func serve(t *testing.T, h http.Handler, method, path, body string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec.Code, rec.Body.String()
}

func TestLogLevel(t *testing.T) {
	var level slog.LevelVar
	level.Set(log.LevelInfo)
	h := New(&level, &atomic.Bool{})

	code, body := serve(t, h, http.MethodGet, "/admin/loglevel", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"level":"info"}`, body)

	tests := []struct {
		body string
		code int
		want slog.Level
	}{
		{`{"level":"debug"}`, http.StatusOK, log.LevelDebug},
		{`{"level":"trace"}`, http.StatusOK, log.LevelTrace},
		{`{"level":"crit"}`, http.StatusOK, log.LevelCrit},
		{`{"level":"loud"}`, http.StatusBadRequest, log.LevelCrit},
		{`{"verbosity":"info"}`, http.StatusBadRequest, log.LevelCrit},
	}
	for _, tt := range tests {
		code, _ := serve(t, h, http.MethodPost, "/admin/loglevel", tt.body)
		assert.Equal(t, tt.code, code, tt.body)
		assert.Equal(t, tt.want, level.Level(), tt.body)
	}

	code, body = serve(t, h, http.MethodGet, "/admin/loglevel", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"level":"crit"}`, body)
}

func TestAPILogs(t *testing.T) {
	var enabled atomic.Bool
	h := New(new(slog.LevelVar), &enabled)

	code, body := serve(t, h, http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, enabled.Load())

	var status LogStatus
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.True(t, status.Enabled)

	code, body = serve(t, h, http.MethodGet, "/admin/apilogs", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"enabled":true}`, body)

	code, _ = serve(t, h, http.MethodPost, "/admin/apilogs", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, enabled.Load())
}
