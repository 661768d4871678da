// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	Security() SecurityLoggerInterface
	Sync() error
}

// SecurityLoggerInterface emits structured audit events for
// authentication and authorization decisions.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	LoginSuccess(userID, email string)
	LoginFailure(email, reason string)
	AccessDenied(userID, resource, reason string)
	CSRFRejected(userID, path string)
}
