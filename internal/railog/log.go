// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

// Package railog is the node's structured-logging facade: every component
// gets a named, leveled sub-logger over a single shared zap core, the same
// shape as the teacher's log/v3 wrapper around zap.
package railog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	root   *zap.Logger
	inited bool
)

// Init installs the process-wide zap core. Called once from cmd/rainode;
// tests that never call it get a zap development logger (writing to
// stderr) lazily.
func Init(level zapcore.Level, devMode bool) error {
	mu.Lock()
	defer mu.Unlock()
	cfg := zap.NewProductionConfig()
	if devMode {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	root = l
	inited = true
	return nil
}

func rootLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !inited {
		root, _ = zap.NewDevelopment()
		inited = true
	}
	return root
}

// Logger is a named component logger, e.g. railog.New("ledger").
type Logger struct {
	z *zap.Logger
}

func New(component string) *Logger {
	return &Logger{z: rootLogger().Named(component)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// Sync flushes buffered log entries; call from shutdown paths.
func Sync() error {
	mu.Lock()
	l := root
	mu.Unlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}
