// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// levelHandler gates an inner handler by a level which can change at runtime.
type levelHandler struct {
	level *slog.LevelVar
	inner slog.Handler
}

// NewTerminalHandlerWithLevel returns a terminal handler writing to wr which
// only outputs records at or above the current value of level.
func NewTerminalHandlerWithLevel(wr io.Writer, level *slog.LevelVar, useColor bool) slog.Handler {
	return &levelHandler{
		level: level,
		inner: ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor),
	}
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.level, h.inner.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.level, h.inner.WithGroup(name)}
}
