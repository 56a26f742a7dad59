// Package recovery provides panic recovery around backend driver calls.
// Both storage drivers cross a cgo boundary; a panic there must surface as
// an error on the query, not crash the caller.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// RecoverToValue wraps a function that returns a value and error.
// If the function panics, the panic is logged with its stack trace and
// returned as an error alongside the zero value.
//
// Example:
//
//	rows, err := recovery.RecoverToValue(logger, "Execute", func() ([]Row, error) {
//	    return runQuery(ctx, query, args)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)

			var zero T
			result = zero
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
