package sentry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/logger"
	"github.com/getsentry/sentry-go"
)

// ignoredErrors contains error messages that should be logged but not sent to Sentry.
// These are ordinary failure modes of a client on a flaky network or an
// expired session; reporting them would only create noise.
var ignoredErrors = []string{
	"connection refused",               // Backend down or wrong server address
	"connection reset by peer",         // Network dropped mid-request
	"no such host",                     // DNS failure, typically offline
	"network is unreachable",           // Offline
	"EOF",                              // Server closed the connection abruptly
	"context deadline exceeded",        // Request timed out
	"use of closed network connection", // Operation on already closed connection
}

// shouldIgnore checks if an error should be filtered out from Sentry.
func shouldIgnore(err error) bool {
	if err == nil {
		return true
	}

	// Expected outcomes of normal operation, not defects.
	if errors.Is(err, api.ErrSessionExpired) || errors.Is(err, api.ErrForbidden) ||
		errors.Is(err, api.ErrNotFound) || errors.Is(err, context.Canceled) {
		return true
	}

	type timeoutError interface{ Timeout() bool }
	var te timeoutError
	if errors.As(err, &te) && te.Timeout() {
		return true
	}

	errStr := err.Error()
	for _, ignored := range ignoredErrors {
		if strings.Contains(errStr, ignored) {
			return true
		}
	}
	return false
}

// Init configures Sentry from SENTRY_DSN. With no DSN set, every
// capture becomes a no-op and the client works fully offline.
func Init(version string) error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: "spctl@" + version,
	})
}

// Flush drains buffered events before process exit.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError logs an error locally and reports it to Sentry.
func CaptureError(err error, message string) {
	logger.Error("%s: %v", message, err)
	if shouldIgnore(err) {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("message", message)
		sentry.CaptureException(err)
	})
}

// CaptureErrorf logs and reports an error with a formatted message.
func CaptureErrorf(err error, format string, args ...interface{}) {
	CaptureError(err, fmt.Sprintf(format, args...))
}
