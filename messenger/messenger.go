/*
 * messenger.go, part of godissolve.
 *
 * Copyright 2026 The godissolve Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package messenger reports progress, warnings and errors. It is backed by zap, and
// library packages that need to report anything take a *Messenger instead of
// logging on their own.
package messenger

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level ("debug", "info", "warn" or "error") and the
// format ("console" or "json") of a Messenger.
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Messenger prints messages for the user. Only the master rank prints below
// the warning level.
type Messenger struct {
	z    *zap.Logger
	s    *zap.SugaredLogger
	rank int
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("messenger: unknown level %q", s)
}

// New builds a Messenger writing to stderr.
func New(cfg Config) (*Messenger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	switch cfg.Format {
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	case "json":
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("messenger: unknown format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.DisableCaller = true
	z, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("messenger: %w", err)
	}
	return NewFromZap(z), nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(z *zap.Logger) *Messenger {
	return &Messenger{z: z, s: z.Sugar()}
}

// NewNop returns a Messenger that prints nothing.
func NewNop() *Messenger {
	return NewFromZap(zap.NewNop())
}

// SetRank sets the process rank of the messenger. Ranks other than 0 only print
// warnings and errors.
func (M *Messenger) SetRank(rank int) {
	M.rank = rank
	M.z = M.z.With(zap.Int("rank", rank))
	M.s = M.z.Sugar()
}

// With returns a child messenger which adds the key-value pair to every message.
func (M *Messenger) With(key string, value any) *Messenger {
	z := M.z.With(zap.Any(key, value))
	return &Messenger{z: z, s: z.Sugar(), rank: M.rank}
}

// Debug prints a debugging message.
func (M *Messenger) Debug(format string, args ...any) {
	if M.rank != 0 {
		return
	}
	M.s.Debugf(format, args...)
}

// Print prints an informative message.
func (M *Messenger) Print(format string, args ...any) {
	if M.rank != 0 {
		return
	}
	M.s.Infof(format, args...)
}

// Warn prints a warning.
func (M *Messenger) Warn(format string, args ...any) {
	M.s.Warnf(format, args...)
}

// Error prints an error message and returns it as an error, so it can be used as
// return M.Error(...)
func (M *Messenger) Error(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	M.z.Error(msg)
	return errors.New(msg)
}

// Logger returns the underlying zap logger.
func (M *Messenger) Logger() *zap.Logger {
	return M.z
}

// Sync flushes buffered messages.
func (M *Messenger) Sync() error {
	return M.z.Sync()
}
