package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAdapter implements Engine for Gin
type GinAdapter struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinAdapter creates a Gin engine with panic recovery
func NewGinAdapter() *GinAdapter {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return &GinAdapter{engine: engine, server: &http.Server{Handler: engine}}
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method, path string, handler HandlerFunc) {
	ga.engine.Handle(method, path, func(c *gin.Context) {
		if err := handler(&ginRequestContext{ctx: c}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	})
}

// Start serves the engine through an http.Server so Stop can shut it down gracefully
func (ga *GinAdapter) Start(addr string) error {
	ga.server.Addr = addr
	return ga.server.ListenAndServe()
}

// Stop stops the server
func (ga *GinAdapter) Stop(ctx context.Context) error {
	return ga.server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

type ginRequestContext struct {
	ctx *gin.Context
}

func (c *ginRequestContext) Method() string {
	return c.ctx.Request.Method
}

func (c *ginRequestContext) Path() string {
	return c.ctx.Request.URL.Path
}

func (c *ginRequestContext) QueryParam(key string) string {
	return c.ctx.Query(key)
}

func (c *ginRequestContext) Bind(i interface{}) error {
	return c.ctx.ShouldBindJSON(i)
}

func (c *ginRequestContext) JSON(code int, i interface{}) error {
	c.ctx.JSON(code, i)
	return nil
}
