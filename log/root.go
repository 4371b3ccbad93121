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
	"os"
	"sync"
)

var (
	rootMu  sync.RWMutex
	rootLog Logger = NewLogger(NewTerminalHandler(os.Stderr, false))
)

// Root returns the current default Logger.
func Root() Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return rootLog
}

// SetDefault replaces the default Logger used by the package-level
// Trace/Debug/Info/Warn/Error/Crit functions. Callers may supply any
// Logger implementation, not just one built by NewLogger.
func SetDefault(l Logger) {
	rootMu.Lock()
	defer rootMu.Unlock()
	rootLog = l
}

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { Root().Crit(msg, ctx...) }
