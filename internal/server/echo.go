package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// EchoAdapter implements Engine for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates an Echo engine with panic recovery
func NewEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return &EchoAdapter{engine: e}
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method, path string, handler HandlerFunc) {
	ea.engine.Add(method, path, func(c echo.Context) error {
		return handler(&echoRequestContext{context: c})
	})
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

type echoRequestContext struct {
	context echo.Context
}

func (c *echoRequestContext) Method() string {
	return c.context.Request().Method
}

func (c *echoRequestContext) Path() string {
	return c.context.Request().URL.Path
}

func (c *echoRequestContext) QueryParam(key string) string {
	return c.context.QueryParam(key)
}

func (c *echoRequestContext) Bind(i interface{}) error {
	return c.context.Bind(i)
}

func (c *echoRequestContext) JSON(code int, i interface{}) error {
	return c.context.JSON(code, i)
}
