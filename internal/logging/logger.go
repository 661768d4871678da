// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// SecurityLogger writes audit events on a dedicated "security" named logger
// so they can be filtered out of the regular application stream.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) LoginSuccess(userID, email string) {
	s.l.Info("login success",
		zap.String("event", "authn.login.success"),
		zap.String("user_id", userID),
		zap.String("email", email),
	)
}

func (s *SecurityLogger) LoginFailure(email, reason string) {
	s.l.Warn("login failure",
		zap.String("event", "authn.login.failure"),
		zap.String("email", email),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AccessDenied(userID, resource, reason string) {
	s.l.Warn("access denied",
		zap.String("event", "authz.denied"),
		zap.String("user_id", userID),
		zap.String("resource", resource),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) CSRFRejected(userID, path string) {
	s.l.Warn("csrf token rejected",
		zap.String("event", "authz.csrf.rejected"),
		zap.String("user_id", userID),
		zap.String("path", path),
	)
}

func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: l.Sugar(),
		security:      &SecurityLogger{l: l.Named("security")},
	}
}
