// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the structured leveled logger used across the module.
// It is a thin layer over the go-ethereum slog based logger.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes leveled key/value records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// ctxLogger resolves the root handler on every record, so package level
// loggers created before Init still follow the configured output.
type ctxLogger struct {
	ctx []any
}

func (l *ctxLogger) target() ethlog.Logger {
	return ethlog.Root().With(l.ctx...)
}

func (l *ctxLogger) Trace(msg string, ctx ...any) { l.target().Trace(msg, ctx...) }
func (l *ctxLogger) Debug(msg string, ctx ...any) { l.target().Debug(msg, ctx...) }
func (l *ctxLogger) Info(msg string, ctx ...any)  { l.target().Info(msg, ctx...) }
func (l *ctxLogger) Warn(msg string, ctx ...any)  { l.target().Warn(msg, ctx...) }
func (l *ctxLogger) Error(msg string, ctx ...any) { l.target().Error(msg, ctx...) }
func (l *ctxLogger) Crit(msg string, ctx ...any)  { l.target().Crit(msg, ctx...) }

func (l *ctxLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &ctxLogger{ctx: append(merged, ctx...)}
}

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Root returns the root logger.
func Root() Logger {
	return &ctxLogger{}
}

// WithContext returns a child of the root logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx: ctx}
}

// FromLegacyLevel converts a 0-5 verbosity into a slog level.
// Values above 5 are treated as trace.
func FromLegacyLevel(lvl int) slog.Level {
	if lvl > LegacyLevelTrace {
		lvl = LegacyLevelTrace
	}
	if lvl < LegacyLevelCrit {
		lvl = LegacyLevelCrit
	}
	return ethlog.FromLegacyLevel(lvl)
}

// Init installs a terminal handler writing to w as the root logger.
// The returned level can be changed at runtime.
func Init(w io.Writer, verbosity int, useColor bool) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(FromLegacyLevel(verbosity))
	ethlog.SetDefault(ethlog.NewLogger(NewTerminalHandlerWithLevel(w, level, useColor)))
	return level
}

func Trace(msg string, ctx ...any) { ethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { ethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { ethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { ethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { ethlog.Root().Error(msg, ctx...) }
