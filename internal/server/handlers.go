package server

import (
	"net/http"

	"github.com/gogenie/annotate/internal/analysis"
	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/enum"
	"github.com/gogenie/annotate/internal/index"
)

// DocumentRequest names a file and optionally carries its unsaved text
type DocumentRequest struct {
	Path   string  `json:"path" form:"path"`
	Text   *string `json:"text,omitempty" form:"text"`
	Offset int     `json:"offset" form:"offset"`
	Deep   bool    `json:"deep" form:"deep"`
}

func (s *Server) registerRoutes() {
	s.handle(http.MethodGet, "/api/health", s.health)
	s.handle(http.MethodPost, "/api/annotations", s.annotations)
	s.handle(http.MethodPost, "/api/completion", s.completion)
	s.handle(http.MethodPost, "/api/enum/ranges", s.enumRanges)
	s.handle(http.MethodPost, "/api/enum/resolve", s.enumResolve)
	s.handle(http.MethodPost, "/api/routes", s.routes)
	s.handle(http.MethodGet, "/api/mount/aliases", s.mountAliases)
	s.handle(http.MethodPost, "/api/mount/values", s.mountValues)
	s.handle(http.MethodPost, "/api/lint", s.lint)
}

// document binds the request body and loads the document it names
func (s *Server) document(c RequestContext) (analysis.Document, DocumentRequest, error) {
	var req DocumentRequest
	if err := c.Bind(&req); err != nil {
		return analysis.Document{}, req, NewHTTPError(http.StatusBadRequest, "invalid request body", err)
	}
	if req.Text != nil {
		return analysis.Document{Path: s.analyzer.Path(req.Path), Text: *req.Text}, req, nil
	}
	doc, err := s.analyzer.Load(req.Path)
	return doc, req, err
}

func (s *Server) health(c RequestContext) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"engine": s.engine.Name(),
		"root":   s.analyzer.Project().Root(),
	})
}

func (s *Server) annotations(c RequestContext) error {
	doc, _, err := s.document(c)
	if err != nil {
		return err
	}
	result, err := s.analyzer.Annotations(doc)
	if err != nil {
		return err
	}
	if result == nil {
		result = []analysis.CommentAnnotations{}
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) completion(c RequestContext) error {
	doc, req, err := s.document(c)
	if err != nil {
		return err
	}
	if req.Offset < 0 || req.Offset > len(doc.Text) {
		return NewHTTPError(http.StatusBadRequest, "offset out of range", nil)
	}
	result, err := s.analyzer.Complete(doc, req.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) enumRanges(c RequestContext) error {
	doc, _, err := s.document(c)
	if err != nil {
		return err
	}
	ranges, err := s.analyzer.EnumRanges(doc)
	if err != nil {
		return err
	}
	if ranges == nil {
		ranges = []enum.SemanticRange{}
	}
	return c.JSON(http.StatusOK, ranges)
}

type enumResolveResponse struct {
	Found      bool                     `json:"found"`
	Resolution *analysis.EnumResolution `json:"resolution,omitempty"`
}

func (s *Server) enumResolve(c RequestContext) error {
	doc, req, err := s.document(c)
	if err != nil {
		return err
	}
	resolution, ok, err := s.analyzer.ResolveEnum(doc, req.Offset)
	if err != nil {
		return err
	}
	response := enumResolveResponse{Found: ok}
	if ok {
		response.Resolution = &resolution
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) routes(c RequestContext) error {
	doc, req, err := s.document(c)
	if err != nil {
		return err
	}
	routes, err := s.analyzer.Routes(doc, req.Deep)
	if err != nil {
		return err
	}
	if routes == nil {
		routes = []analysis.RouteResolution{}
	}
	return c.JSON(http.StatusOK, routes)
}

type aliasesResponse struct {
	Aliases    []string         `json:"aliases"`
	Generation index.Generation `json:"generation"`
}

func (s *Server) mountAliases(c RequestContext) error {
	aliases, generation, err := s.analyzer.Aliases()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, aliasesResponse{Aliases: aliases, Generation: generation})
}

func (s *Server) mountValues(c RequestContext) error {
	doc, _, err := s.document(c)
	if err != nil {
		return err
	}
	values, err := s.analyzer.MountValues(doc)
	if err != nil {
		return err
	}
	if values == nil {
		values = []analysis.MountResolution{}
	}
	return c.JSON(http.StatusOK, values)
}

type lintResponse struct {
	Diagnostics []analysis.LintDiagnostic `json:"diagnostics"`
	Errors      int                       `json:"errors"`
}

func (s *Server) lint(c RequestContext) error {
	doc, _, err := s.document(c)
	if err != nil {
		return err
	}
	diagnostics, err := s.analyzer.Lint(doc)
	if err != nil {
		return err
	}
	response := lintResponse{Diagnostics: diagnostics}
	if response.Diagnostics == nil {
		response.Diagnostics = []analysis.LintDiagnostic{}
	}
	for _, d := range diagnostics {
		if d.Severity == annotations.SeverityError {
			response.Errors++
		}
	}
	return c.JSON(http.StatusOK, response)
}
