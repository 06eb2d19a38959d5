// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/vechain/stakevault/vault/reverts"
)

const JSONContentType = "application/json; charset=utf-8"

// statusError carries the status code to respond with.
type statusError struct {
	error
	status int
}

func (e *statusError) Unwrap() error { return e.error }

func BadRequest(cause error) error {
	return &statusError{cause, http.StatusBadRequest}
}

func NotFound(cause error) error {
	return &statusError{cause, http.StatusNotFound}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // revert code of a rejected intent
}

// HandlerFunc is an http.HandlerFunc which may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc responds errors returned by f as ErrorResponse.
// Reverted intents give 400 with their code, errors made by BadRequest or
// NotFound give their status, anything else gives 500.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		status, resp := http.StatusInternalServerError, ErrorResponse{Error: err.Error()}

		var se *statusError
		if errors.As(err, &se) {
			status = se.status
		}
		if rev := reverts.AsRevert(err); rev != nil {
			status, resp.Code = http.StatusBadRequest, rev.Code()
		}
		_ = writeJSON(w, status, resp)
	}
}

// ParseJSON decodes one JSON object from r, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, obj any) error {
	return writeJSON(w, http.StatusOK, obj)
}

func writeJSON(w http.ResponseWriter, status int, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(obj)
}
