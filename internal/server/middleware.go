package server

import (
	stderrors "errors"
	"net/http"
	"time"

	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/utils"
)

// statusOf maps an error to the HTTP status reported for it
func statusOf(err error) int {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch genieerrors.CodeOf(err) {
	case genieerrors.UsageErrorCode:
		return http.StatusBadRequest
	case genieerrors.FileSystemErrorCode:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMiddleware turns handler errors into {"error": ...} responses
func ErrorMiddleware() MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			err := next(c)
			if err == nil {
				return nil
			}
			message := err.Error()
			var httpErr *HTTPError
			if stderrors.As(err, &httpErr) {
				message = httpErr.Message
			}
			return c.JSON(statusOf(err), map[string]string{"error": message})
		}
	}
}

// LoggingMiddleware logs each request at verbose level
func LoggingMiddleware(diagnostics *utils.DiagnosticSystem) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				diagnostics.Verbose("%s %s failed after %s: %v", c.Method(), c.Path(), time.Since(start), err)
			} else {
				diagnostics.Verbose("%s %s (%s)", c.Method(), c.Path(), time.Since(start))
			}
			return err
		}
	}
}

// chain applies middlewares so the first one listed runs outermost
func chain(handler HandlerFunc, middlewares ...MiddlewareFunc) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
