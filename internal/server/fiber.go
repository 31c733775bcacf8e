package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// FiberAdapter implements Engine for Fiber v2
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a Fiber app with panic recovery
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	return &FiberAdapter{app: app}
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method, path string, handler HandlerFunc) {
	fa.app.Add(method, path, func(c *fiber.Ctx) error {
		return handler(&fiberRequestContext{ctx: c})
	})
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

type fiberRequestContext struct {
	ctx *fiber.Ctx
}

func (c *fiberRequestContext) Method() string {
	return c.ctx.Method()
}

func (c *fiberRequestContext) Path() string {
	return c.ctx.Path()
}

func (c *fiberRequestContext) QueryParam(key string) string {
	return c.ctx.Query(key)
}

func (c *fiberRequestContext) Bind(i interface{}) error {
	return c.ctx.BodyParser(i)
}

func (c *fiberRequestContext) JSON(code int, i interface{}) error {
	return c.ctx.Status(code).JSON(i)
}
