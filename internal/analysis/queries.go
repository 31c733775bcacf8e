package analysis

import (
	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/enum"
	"github.com/gogenie/annotate/internal/httproute"
	"github.com/gogenie/annotate/internal/index"
	"github.com/gogenie/annotate/internal/lexical"
	"github.com/gogenie/annotate/internal/mount"
)

// CommentAnnotations lists what one comment declares. Spans are file offsets.
type CommentAnnotations struct {
	Comment    lexical.Span               `json:"comment"`
	Line       int                        `json:"line"`
	Matches    []annotations.Match        `json:"matches"`
	Highlights []annotations.Highlight    `json:"highlights,omitempty"`
	Impl       *annotations.ImplTarget    `json:"impl,omitempty"`
	Commands   []annotations.QuickCommand `json:"commands,omitempty"`
}

// Annotations reports the annotations of every comment in doc that has any
func (a *Analyzer) Annotations(doc Document) ([]CommentAnnotations, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return nil, err
	}

	var result []CommentAnnotations
	for _, comment := range Comments(doc.Text) {
		matches := annotations.ExtractAnnotations(comment.Text, profile)
		if len(matches) == 0 {
			continue
		}
		delta := comment.Span.Start

		entry := CommentAnnotations{
			Comment: comment.Span,
			Line:    index.LineOf(doc.Text, delta),
		}
		for _, m := range matches {
			m.NameSpan = m.NameSpan.Shift(delta)
			options := make([]annotations.OptionMatch, len(m.Options))
			for i, option := range m.Options {
				option.Span = option.Span.Shift(delta)
				options[i] = option
			}
			m.Options = options
			entry.Matches = append(entry.Matches, m)

			if m.Recognized {
				entry.Commands = append(entry.Commands, annotations.ResolveQuickCommands(m.Name, profile)...)
			}
		}
		for _, h := range annotations.Highlights(comment.Text, profile) {
			h.Start += delta
			h.End += delta
			entry.Highlights = append(entry.Highlights, h)
		}
		if target, ok := annotations.ResolveImplTarget(doc.Text, comment.Span.Start, comment.Span.End, profile); ok {
			entry.Impl = &target
		}
		result = append(result, entry)
	}
	return result, nil
}

// Completion is what can be typed at an offset
type Completion struct {
	Context annotations.CompletionContext `json:"context"`
	Items   []annotations.CompletionItem  `json:"items"`
}

// Complete inspects offset in doc. Outside of comments the context kind is none.
func (a *Analyzer) Complete(doc Document, offset int) (Completion, error) {
	comment, ok := CommentAt(doc.Text, offset)
	if !ok {
		return Completion{Items: []annotations.CompletionItem{}}, nil
	}
	profile, err := a.Profile(doc)
	if err != nil {
		return Completion{}, err
	}

	ctx := annotations.ResolveCompletionContext(comment.Text, offset-comment.Span.Start)
	items := annotations.CompletionItems(ctx, profile)
	if items == nil {
		items = []annotations.CompletionItem{}
	}
	return Completion{Context: ctx, Items: items}, nil
}

// EnumRanges returns the enum semantic ranges of doc
func (a *Analyzer) EnumRanges(doc Document) ([]enum.SemanticRange, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return nil, err
	}
	return enum.CollectSemanticRanges(doc.Text, profile), nil
}

// EnumResolution is an enum reference followed into generated code
type EnumResolution struct {
	Target   enum.Target     `json:"target"`
	Location *index.Location `json:"location,omitempty"` // nil when the generated file has no match
}

// ResolveEnum resolves the enum reference at offset
func (a *Analyzer) ResolveEnum(doc Document, offset int) (EnumResolution, bool, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return EnumResolution{}, false, err
	}
	target, ok := enum.ResolveAtOffset(doc.Text, offset, profile)
	if !ok {
		return EnumResolution{}, false, nil
	}

	resolution := EnumResolution{Target: target}
	if loc, ok := a.project.Enums.Find(profile, target); ok {
		resolution.Location = &loc
	}
	return resolution, true, nil
}

// RouteResolution is a route annotation followed into the generated router
type RouteResolution struct {
	httproute.Route
	Location *index.Location `json:"location,omitempty"`
}

// Routes resolves every http route annotation of doc. With deep set, routes whose
// expected router file lacks them are searched across the output roots.
func (a *Analyzer) Routes(doc Document, deep bool) ([]RouteResolution, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return nil, err
	}

	var result []RouteResolution
	for _, route := range httproute.CollectFileRoutes(doc.Text, profile) {
		resolution := RouteResolution{Route: route}
		if loc, ok := a.project.Routes.Find(profile, route.Context, deep); ok {
			resolution.Location = &loc
		}
		result = append(result, resolution)
	}
	return result, nil
}

// MountResolution is a mount alias value followed to its declaration
type MountResolution struct {
	Anchor mount.ValueAnchor `json:"anchor"`
	Target *mount.Target     `json:"target,omitempty"`
}

// MountValues resolves the values written in mount alias annotations of doc
func (a *Analyzer) MountValues(doc Document) ([]MountResolution, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return nil, err
	}

	var result []MountResolution
	for _, comment := range Comments(doc.Text) {
		for _, anchor := range mount.CollectCommentValueAnchors(comment.Text, profile) {
			anchor.Span = anchor.Span.Shift(comment.Span.Start)
			resolution := MountResolution{Anchor: anchor}

			target, ok, err := a.project.Bindings.Resolve(profile, anchor.Alias, anchor.ValueName, doc.Path)
			if err != nil {
				return nil, err
			}
			if ok {
				resolution.Target = &target
			}
			result = append(result, resolution)
		}
	}
	return result, nil
}

// Aliases lists the mount aliases declared across the project
func (a *Analyzer) Aliases() ([]string, index.Generation, error) {
	aliases, err := a.project.Aliases.Aliases(a.project.Profiles.Profile())
	if err != nil {
		return nil, index.Generation{}, err
	}
	if aliases == nil {
		aliases = []string{}
	}
	return aliases, a.project.Aliases.Generation(), nil
}

// Bindings lists the mount bindings declared across the project, by alias
func (a *Analyzer) Bindings() (map[string][]mount.LocatedBinding, error) {
	return a.project.Bindings.Bindings(a.project.Profiles.Profile())
}

// LintDiagnostic is a lint finding positioned in a file
type LintDiagnostic struct {
	annotations.Diagnostic
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Lint checks the annotation arguments of every comment in doc
func (a *Analyzer) Lint(doc Document) ([]LintDiagnostic, error) {
	profile, err := a.Profile(doc)
	if err != nil {
		return nil, err
	}

	var result []LintDiagnostic
	for _, comment := range Comments(doc.Text) {
		for _, d := range annotations.Lint(comment.Text, profile) {
			d.Span = d.Span.Shift(comment.Span.Start)
			loc := index.LocationOf(doc.Path, doc.Text, d.Span.Start)
			result = append(result, LintDiagnostic{Diagnostic: d, Path: doc.Path, Line: loc.Line, Column: loc.Column})
		}
	}
	return result, nil
}
