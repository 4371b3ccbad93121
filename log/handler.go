// Copyright 2026 The clvm-go Authors
// This file is part of clvm-go.
//
// clvm-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// clvm-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with clvm-go. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const termTimeFormat = "01-02|15:04:05.000"

var levelNames = map[slog.Level]string{
	LevelTrace: "TRAC",
	LevelDebug: "DEBG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERRO",
	LevelCrit:  "CRIT",
}

func levelName(l slog.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return l.String()
}

// terminalHandler formats records as "LEVEL [mm-dd|hh:mm:ss.000]
// message key=val ...", one line per record, color omitted (no ANSI
// dependency wired for this port).
type terminalHandler struct {
	mu    sync.Mutex
	wr    io.Writer
	level slog.Level
	attrs []slog.Attr
}

// NewTerminalHandler returns a handler at the default Info level.
func NewTerminalHandler(wr io.Writer, useColor bool) slog.Handler {
	return NewTerminalHandlerWithLevel(wr, LevelInfo, useColor)
}

// NewTerminalHandlerWithLevel returns a handler that drops records
// below lvl. useColor is accepted for call-site parity with a
// color-capable terminal handler but unused (no ANSI escape wiring in
// this port).
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) slog.Handler {
	return &terminalHandler{wr: wr, level: lvl}
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.wr, "%s [%s] %s", levelName(r.Level), r.Time.Format(termTimeFormat), r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(h.wr, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.wr, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.wr)
	return nil
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &terminalHandler{wr: h.wr, level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler { return h }

// GlogHandler adds a single global verbosity gate in front of an inner
// handler. It does not implement per-file --vmodule regex matching (no
// multi-binary deployment in this port to route per-package verbosity
// for).
type GlogHandler struct {
	inner     slog.Handler
	verbosity slog.Level
}

// NewGlogHandler wraps inner with a mutable verbosity gate, defaulting
// to Info.
func NewGlogHandler(inner slog.Handler) *GlogHandler {
	return &GlogHandler{inner: inner, verbosity: LevelInfo}
}

// Verbosity sets the minimum level that passes through to inner.
func (g *GlogHandler) Verbosity(lvl slog.Level) { g.verbosity = lvl }

func (g *GlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= g.verbosity && g.inner.Enabled(ctx, level)
}

func (g *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	return g.inner.Handle(ctx, r)
}

func (g *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &GlogHandler{inner: g.inner.WithAttrs(attrs), verbosity: g.verbosity}
}

func (g *GlogHandler) WithGroup(name string) slog.Handler {
	return &GlogHandler{inner: g.inner.WithGroup(name), verbosity: g.verbosity}
}

// JSONHandler wraps slog's built-in JSON handler at Debug level.
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, LevelDebug)
}

// JSONHandlerWithLevel wraps slog's JSON handler at an explicit level.
func JSONHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{Level: level})
}

// LogfmtHandler wraps slog's built-in text (logfmt-style) handler.
func LogfmtHandler(wr io.Writer) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{Level: LevelDebug})
}

// writeTimeTermFormat is split out so it can be exercised directly by
// tests without going through a full Handle call.
func writeTimeTermFormat(wr io.Writer, t time.Time) {
	fmt.Fprint(wr, t.Format(termTimeFormat))
}
