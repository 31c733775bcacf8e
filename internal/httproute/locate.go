package httproute

import (
	"regexp"
	"strings"

	"github.com/gogenie/annotate/internal/lexical"
)

// RouteLiteral is the quoted route as it appears in the generated router
func RouteLiteral(ctx Context) string {
	return `"` + ctx.FullRoute + `"`
}

// FindRouteInText locates the registration of ctx in a generated router or api file.
// It prefers router.<Verb>("<route>", svcH(svc.<Handler>)) and falls back to the first
// occurrence of the route literal. The returned span covers the route without quotes.
func FindRouteInText(text string, ctx Context) (lexical.Span, bool) {
	if ctx.FullRoute == "" {
		return lexical.Span{}, false
	}
	literal := RouteLiteral(ctx)

	if ctx.Handler != "" {
		exact := regexp.MustCompile(`(?s)router\.\w+\(\s*(` + regexp.QuoteMeta(literal) +
			`)\s*,\s*svcH\(svc\.` + regexp.QuoteMeta(ctx.Handler) + `\)\s*\)`)
		if m := exact.FindStringSubmatchIndex(text); m != nil {
			return lexical.Span{Start: m[2] + 1, End: m[3] - 1}, true
		}
	}

	idx := strings.Index(text, literal)
	if idx < 0 {
		return lexical.Span{}, false
	}
	return lexical.Span{Start: idx + 1, End: idx + len(literal) - 1}, true
}

// ContainsRoute is the cheap pre-check used before FindRouteInText when scanning many files
func ContainsRoute(text string, ctx Context) bool {
	return ctx.FullRoute != "" && strings.Contains(text, RouteLiteral(ctx))
}
