// Package httproute resolves the route declared by an http annotation on a service
// interface method to the full route registered by the generated router.
package httproute

import (
	"regexp"
	"strings"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/lexical"
)

var (
	interfacePattern = regexp.MustCompile(`(?m)^[ \t]*type\s+([A-Za-z_][A-Za-z0-9_]*)\s+interface\s*\{`)
	methodPattern    = regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

// Anchor is the route argument of one http annotation
type Anchor struct {
	AnnotationName string       `json:"annotationName"`
	Method         string       `json:"method,omitempty"`
	RouteValue     string       `json:"routeValue"`
	Span           lexical.Span `json:"span"`
}

// Context is an anchor resolved against its enclosing service interface
type Context struct {
	AnnotationName string `json:"annotationName"`
	Method         string `json:"method,omitempty"`
	RouteValue     string `json:"routeValue"`
	FullRoute      string `json:"fullRoute"`
	Group          string `json:"group"`
	Filename       string `json:"filename"`
	Handler        string `json:"handler"`
}

// Route is an anchor found in a file together with its resolved context
type Route struct {
	Anchor  Anchor  `json:"anchor"`
	Context Context `json:"context"`
}

type interfaceBlock struct {
	name  string
	start int // start of the line declaring the type
	open  int // offset of '{'
	close int // offset of the matching '}'
}

type service struct {
	group      string
	groupRoute string
	filename   string
}

// CollectCommentRouteAnchors returns the route arguments of every http-family annotation
// in comment. Spans are relative to comment.
func CollectCommentRouteAnchors(comment string, profile *annotations.Profile) []Anchor {
	var anchors []Anchor
	for _, occ := range lexical.ScanAnnotations(comment) {
		if !occ.HasArgs {
			continue
		}
		spec, ok := profile.FindSpec(occ.Name)
		if !ok || !spec.InFamily(annotations.FamilyHTTP) {
			continue
		}

		args := occ.Arguments()
		route, ok := routeArgument(args)
		if !ok {
			continue
		}
		value := lexical.TrimQuotes(route.Value)
		if value == "" {
			continue
		}
		anchors = append(anchors, Anchor{
			AnnotationName: occ.Name,
			Method:         httpMethod(occ.Name, args),
			RouteValue:     value,
			Span:           route.Span,
		})
	}
	return anchors
}

// ResolveRouteContext resolves anchor, taken from the comment at
// fileText[commentStart:commentEnd], against the service interface enclosing it.
func ResolveRouteContext(fileText string, commentStart, commentEnd int, anchor Anchor, profile *annotations.Profile) (Context, bool) {
	if commentStart < 0 || commentEnd < commentStart || commentEnd > len(fileText) {
		return Context{}, false
	}

	block, ok := interfaceAt(fileText, commentStart)
	if !ok {
		return Context{}, false
	}
	svc, ok := serviceBefore(fileText, block, profile)
	if !ok {
		return Context{}, false
	}
	handler, ok := followingHandler(fileText, commentEnd, block.close)
	if !ok {
		return Context{}, false
	}

	fullRoute := JoinRoute(svc.groupRoute, anchor.RouteValue)
	if fullRoute == "" {
		return Context{}, false
	}

	return Context{
		AnnotationName: anchor.AnnotationName,
		Method:         anchor.Method,
		RouteValue:     anchor.RouteValue,
		FullRoute:      fullRoute,
		Group:          svc.group,
		Filename:       svc.filename,
		Handler:        handler,
	}, true
}

// CollectFileRoutes resolves every http annotation written in a "//" comment line of
// fileText. Anchor spans are in file coordinates; unresolvable anchors are skipped.
func CollectFileRoutes(fileText string, profile *annotations.Profile) []Route {
	var routes []Route
	for _, line := range lexical.Lines(fileText) {
		idx := strings.Index(line.Text, "//")
		if idx < 0 || strings.TrimSpace(line.Text[:idx]) != "" {
			continue
		}
		commentStart := line.Start + idx
		commentEnd := line.End()
		for _, anchor := range CollectCommentRouteAnchors(fileText[commentStart:commentEnd], profile) {
			ctx, ok := ResolveRouteContext(fileText, commentStart, commentEnd, anchor, profile)
			if !ok {
				continue
			}
			anchor.Span = anchor.Span.Shift(commentStart)
			routes = append(routes, Route{Anchor: anchor, Context: ctx})
		}
	}
	return routes
}

// JoinRoute joins a service route prefix and a method route with a single '/'.
// A trailing '/' on route is preserved; a blank route yields "".
func JoinRoute(groupRoute, route string) string {
	base := lexical.TrimQuotes(route)
	if base == "" {
		return ""
	}
	group := strings.Trim(lexical.TrimQuotes(groupRoute), "/")

	var parts []string
	for _, part := range []string{group, strings.Trim(base, "/")} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	joined := strings.Trim(strings.Join(parts, "/"), "/")
	if joined == "" {
		return ""
	}
	if strings.HasSuffix(base, "/") {
		joined += "/"
	}
	return joined
}

func routeArgument(args lexical.Arguments) (lexical.Argument, bool) {
	if arg, ok := args.ByKey("route"); ok {
		return arg, true
	}
	return args.FirstPositional()
}

func httpMethod(name string, args lexical.Arguments) string {
	if arg, ok := args.ByKey("method"); ok && strings.TrimSpace(arg.Value) != "" {
		return strings.ToLower(arg.Value)
	}
	lower := strings.ToLower(name)
	if verb, ok := strings.CutPrefix(lower, "http."); ok {
		return verb
	}
	return ""
}

// interfaceAt returns the innermost interface whose body contains offset
func interfaceAt(fileText string, offset int) (interfaceBlock, bool) {
	var (
		found interfaceBlock
		ok    bool
	)
	for _, m := range interfacePattern.FindAllStringSubmatchIndex(fileText, -1) {
		open := m[1] - 1
		closeBrace, matched := lexical.FindMatchingClose(fileText, open, '{', '}')
		if !matched || offset <= open || offset >= closeBrace {
			continue
		}
		if ok && closeBrace-open >= found.close-found.open {
			continue
		}
		found = interfaceBlock{name: fileText[m[2]:m[3]], start: m[0], open: open, close: closeBrace}
		ok = true
	}
	return found, ok
}

// serviceBefore reads the impl annotation decorating block. Only the nearest one is
// considered, and only comments or blank lines may separate it from the interface.
func serviceBefore(fileText string, block interfaceBlock, profile *annotations.Profile) (service, bool) {
	prefix := fileText[:block.start]
	occurrences := lexical.ScanAnnotations(prefix)
	for i := len(occurrences) - 1; i >= 0; i-- {
		occ := occurrences[i]
		spec, ok := profile.FindSpec(occ.Name)
		if !ok || !spec.InFamily(annotations.FamilyImplHTTP) {
			continue
		}
		if !lexical.IsTriviaOnly(prefix[lexical.LineEnd(prefix, occ.End):]) {
			return service{}, false
		}

		args := occ.Arguments()
		name := block.name
		if arg, ok := args.FirstPositional(); ok {
			if v := lexical.TrimQuotes(arg.Value); v != "" {
				name = v
			}
		}
		options := args.Options()
		return service{
			group:      strings.Trim(optionOr(options, "group", name), "/"),
			groupRoute: optionOr(options, "route", name),
			filename:   optionOr(options, "filename", name),
		}, true
	}
	return service{}, false
}

func optionOr(options map[string]string, key, fallback string) string {
	if v := options[key]; strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// followingHandler returns the first method declared after commentEnd and before limit
func followingHandler(fileText string, commentEnd, limit int) (string, bool) {
	if limit < commentEnd {
		return "", false
	}
	m := methodPattern.FindStringSubmatch(fileText[commentEnd:limit])
	if m == nil {
		return "", false
	}
	return m[1], true
}
