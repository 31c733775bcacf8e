// Package server exposes the resolvers as a small JSON API mounted on a
// pluggable web framework.
package server

import (
	"context"
	"net/http"

	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/utils"
)

// RequestContext is the framework-agnostic view of a request
type RequestContext interface {
	Method() string
	Path() string
	QueryParam(key string) string
	Bind(i interface{}) error
	JSON(code int, i interface{}) error
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Engine is a web framework the API can be served by
type Engine interface {
	RegisterRoute(method, path string, handler HandlerFunc)
	Start(addr string) error
	Stop(ctx context.Context) error
	Name() string
}

// HTTPError represents an HTTP error with status code and message
type HTTPError struct {
	Code     int    `json:"code"`
	Message  string `json:"error"`
	Internal error  `json:"-"`
}

// Error makes HTTPError implement the error interface
func (he *HTTPError) Error() string {
	if he.Internal != nil {
		return he.Internal.Error()
	}
	return he.Message
}

// Unwrap returns the internal error
func (he *HTTPError) Unwrap() error {
	return he.Internal
}

// NewHTTPError creates an HTTPError; message defaults to the status text
func NewHTTPError(code int, message string, internal error) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message, Internal: internal}
}

const (
	// DefaultEngine is used when no engine is named
	DefaultEngine = "echo"
	// DefaultAddr is the default listen address
	DefaultAddr = ":8080"
)

var engines = utils.NewRegistry[func() Engine]("engine")

func init() {
	engines.MustRegister("echo", func() Engine { return NewEchoAdapter() })
	engines.MustRegister("gin", func() Engine { return NewGinAdapter() })
	engines.MustRegister("fiber", func() Engine { return NewFiberAdapter() })
}

// Engines lists the available engine names
func Engines() []string {
	return engines.List()
}

// NewEngine creates the engine registered under name
func NewEngine(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	factory, err := engines.GetOrError(name)
	if err != nil {
		return nil, genieerrors.NewUsageError("%v", err)
	}
	return factory(), nil
}
