// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakevault/vault/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		resp   ErrorResponse
	}{
		{"bad request", BadRequest(errors.New("amount: empty")), http.StatusBadRequest, ErrorResponse{Error: "amount: empty"}},
		{"not found", NotFound(errors.New("history is not enabled")), http.StatusNotFound, ErrorResponse{Error: "history is not enabled"}},
		{"wrapped status", errors.WithMessage(BadRequest(errors.New("x")), "body"), http.StatusBadRequest, ErrorResponse{Error: "body: x"}},
		{"revert", errors.Wrap(reverts.ErrCooldownNotElapsed, "complete"), http.StatusBadRequest, ErrorResponse{
			Error: "complete: " + reverts.ErrCooldownNotElapsed.Error(),
			Code:  "CooldownNotElapsed",
		}},
		{"internal", errors.New("disk failure"), http.StatusInternalServerError, ErrorResponse{Error: "disk failure"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.resp, resp)
		})
	}
}

func TestWrapHandlerFuncOK(t *testing.T) {
	h := WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return WriteJSON(w, map[string]string{"tier": "Gold"})
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tier":"Gold"}`, rec.Body.String())
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Amount uint64 `json:"amount,string"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":"15"}`), &v))
	assert.Equal(t, uint64(15), v.Amount)

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":"15","extra":1}`), &v))
}

func TestQueryUint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?block=120&bad=x", nil)

	v, err := QueryUint(req, "block", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(120), v)

	v, err = QueryUint(req, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	_, err = QueryUint(req, "bad", 0)
	var se *statusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.status)
}
