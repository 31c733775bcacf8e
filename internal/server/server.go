package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gogenie/annotate/internal/analysis"
	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/utils"
)

// ShutdownTimeout bounds graceful shutdown once the run context ends
const ShutdownTimeout = 5 * time.Second

// Server serves the API of one analyzer on an engine
type Server struct {
	engine      Engine
	analyzer    *analysis.Analyzer
	diagnostics *utils.DiagnosticSystem
}

// New creates a server on the named engine with every API route registered
func New(engineName string, analyzer *analysis.Analyzer, diagnostics *utils.DiagnosticSystem) (*Server, error) {
	engine, err := NewEngine(engineName)
	if err != nil {
		return nil, err
	}
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}

	s := &Server{engine: engine, analyzer: analyzer, diagnostics: diagnostics}
	s.registerRoutes()
	return s, nil
}

// Engine returns the engine the server runs on
func (s *Server) Engine() Engine {
	return s.engine
}

func (s *Server) handle(method, path string, handler HandlerFunc) {
	s.engine.RegisterRoute(method, path, chain(handler, LoggingMiddleware(s.diagnostics), ErrorMiddleware()))
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.engine.Start(addr)
	}()
	s.diagnostics.Info("serving %s API on %s", s.engine.Name(), addr)

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return genieerrors.Wrap(genieerrors.ServerErrorCode, "server stopped", err).
				WithContext("engine", s.engine.Name()).
				WithContext("addr", addr)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.diagnostics.Verbose("shutting down %s server", s.engine.Name())
	if err := s.engine.Stop(shutdownCtx); err != nil {
		return genieerrors.Wrap(genieerrors.ServerErrorCode, "shutdown failed", err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return genieerrors.Wrap(genieerrors.ServerErrorCode, "server stopped", err)
	}
	return nil
}
