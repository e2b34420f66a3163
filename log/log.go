// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides the structured logger used across this core: a thin
// wrapper over log/slog with per-subsystem child loggers (evm, core, trie,
// ...) and a terminal-aware handler that colorizes level tags when stderr
// is a real TTY and falls back to plain JSON otherwise (e.g. when piped to
// a file or collected by a log shipper).
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger wraps slog.Logger with per-module child-logger conveniences.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger writing to stderr at the given level. Output is a
// colorized "level msg key=value ..." line when stderr is attached to a
// terminal, and JSON otherwise.
func New(level slog.Level) *Logger {
	w := os.Stderr
	if isatty.IsTerminal(w.Fd()) {
		return NewWithHandler(newTermHandler(colorable.NewColorable(w), level))
	}
	return NewWithHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewWithHandler creates a Logger backed by an arbitrary slog.Handler, for
// tests or custom sinks.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the process-wide logger package-level functions delegate to.
func Default() *Logger { return defaultLogger }

// Module returns a child logger tagged with the given subsystem name (evm,
// core, trie, cmd/evm, ...).
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger carrying additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// termHandler is a slog.Handler rendering a short colorized line per record,
// the interactive-terminal counterpart to the JSON handler used elsewhere.
type termHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

func newTermHandler(w io.Writer, level slog.Level) *termHandler {
	return &termHandler{w: w, level: level}
}

func (h *termHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *termHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor := colorForLevel(r.Level)
	line := levelColor.Sprintf("%-5s", r.Level.String()) + " " + r.Message
	for _, a := range h.attrs {
		line += " " + a.Key + "=" + a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		line += " " + a.Key + "=" + a.Value.String()
		return true
	})
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *termHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &termHandler{w: h.w, level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *termHandler) WithGroup(_ string) slog.Handler {
	return h // grouping is not modeled; flat key=value pairs are enough here
}

func colorForLevel(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}
