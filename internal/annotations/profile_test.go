package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogenie/annotate/internal/config"
)

func TestBuildDefaultProfile(t *testing.T) {
	profile := Default()

	tests := []struct {
		name   string
		family string
	}{
		{name: "autowire", family: FamilyAutowire},
		{name: "AUTOWIRE.init", family: FamilyAutowire},
		{name: "http", family: FamilyHTTP},
		{name: "http.get", family: FamilyHTTP},
		{name: "enum", family: FamilyEnum},
		{name: "mount", family: FamilyMount},
		{name: "service", family: FamilyImplHTTP},
		{name: "dao", family: FamilyImplHTTP},
		{name: "grpc", family: FamilyImplHTTP},
		{name: "grpc_server", family: FamilyGRPC},
		{name: "rule-hash", family: FamilyRule},
		{name: "Summary", family: FamilySwagger},
		{name: "basepath", family: FamilySwagger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := profile.FindSpec(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.family, spec.CommandFamily)
		})
	}

	_, ok := profile.FindSpec("unknown")
	assert.False(t, ok)

	assert.True(t, profile.IsImplAnnotation("Service"))
	assert.False(t, profile.IsImplAnnotation("http"))
	assert.Equal(t, config.DefaultEnumOutputPath, profile.EnumOutputPath)
}

func TestBuildFirstRegistrationWins(t *testing.T) {
	cfg := config.Defaults("")
	// "description" and "Description" collide, as does an enum indent named like a default
	cfg.EnumIndent = "http"
	profile := Build(cfg)

	spec, ok := profile.FindSpec("http")
	require.True(t, ok)
	assert.Equal(t, FamilyHTTP, spec.CommandFamily)

	spec, ok = profile.FindSpec("Description")
	require.True(t, ok)
	assert.Equal(t, "description", spec.Name)

	count := 0
	for _, s := range profile.Specs() {
		if s.Name == "Description" {
			count++
		}
	}
	assert.Zero(t, count)
}

func TestBuildDynamicNames(t *testing.T) {
	cfg := config.Defaults("cfg.yaml")
	cfg.HTTPIndent = "api"
	cfg.EnumIndent = "state"
	cfg.MountName = "wiring"
	cfg.ImplServiceNames = []string{"svc", "repo"}
	cfg.ParseError = "boom"
	profile := Build(cfg)

	for _, name := range []string{"api", "svc", "repo"} {
		spec, ok := profile.FindSpec(name)
		require.True(t, ok, name)
		assert.Equal(t, FamilyImplHTTP, spec.CommandFamily)
	}
	spec, ok := profile.FindSpec("state")
	require.True(t, ok)
	assert.Equal(t, FamilyEnum, spec.CommandFamily)

	spec, ok = profile.FindSpec("wiring")
	require.True(t, ok)
	assert.True(t, spec.AllowAnyOption)

	_, ok = profile.FindSpec("service")
	assert.False(t, ok)
	assert.True(t, profile.IsImplAnnotation("repo"))
	assert.False(t, profile.IsImplAnnotation("api"))
	assert.Equal(t, "cfg.yaml", profile.ConfigPath)
	assert.Equal(t, "boom", profile.ParseError)
}

func TestSortedNames(t *testing.T) {
	profile := NewProfile([]Spec{{Name: "b"}, {Name: "a"}, {Name: "B2"}}, nil)
	var names []string
	for _, spec := range profile.SortedNames() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"B2", "a", "b"}, names)
}

func TestOptionSpecsFor(t *testing.T) {
	profile := Default()
	options := profile.OptionSpecsFor("HTTP")
	require.Len(t, options, 3)
	assert.Equal(t, "method", options[0].Key)
	assert.Nil(t, profile.OptionSpecsFor("nope"))
}

func TestWithAugmentedAliases(t *testing.T) {
	base := Default()

	same := base.WithAugmentedAliases(nil)
	assert.Same(t, base, same)

	same = base.WithAugmentedAliases([]string{"HTTP", "mount"})
	assert.Same(t, base, same, "aliases already present are a no-op")

	augmented := base.WithAugmentedAliases([]string{"cache", "config", "Cache"})
	require.NotSame(t, base, augmented)
	assert.Equal(t, base.Len()+2, augmented.Len())

	spec, ok := augmented.FindSpec("CACHE")
	require.True(t, ok)
	assert.Equal(t, "cache", spec.Name)
	assert.Equal(t, "mount/cache", spec.CommandFamily)
	assert.True(t, spec.AllowAnyOption)
	assert.Equal(t, "@cache(...)", spec.Snippet)

	alias, ok := spec.MountAlias()
	require.True(t, ok)
	assert.Equal(t, "cache", alias)

	_, ok = base.FindSpec("cache")
	assert.False(t, ok, "base profile is never mutated")
	assert.Equal(t, base.EnumOutputPath, augmented.EnumOutputPath)
	assert.True(t, augmented.IsImplAnnotation("service"))
}

func TestSignature(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Signature(), b.Signature())

	augmented := a.WithAugmentedAliases([]string{"cache"})
	assert.NotEqual(t, a.Signature(), augmented.Signature())

	cfg := config.Defaults("")
	cfg.ImplServiceNames = []string{"grpc", "dao", "service"}
	assert.Equal(t, a.Signature(), Build(cfg).Signature(), "impl order does not matter")
}

func TestNilProfile(t *testing.T) {
	var profile *Profile
	_, ok := profile.FindSpec("http")
	assert.False(t, ok)
	assert.False(t, profile.IsImplAnnotation("service"))
	assert.Empty(t, profile.Specs())

	augmented := profile.WithAugmentedAliases([]string{"cache"})
	_, ok = augmented.FindSpec("cache")
	assert.True(t, ok)
}

func TestSpecAcceptsOption(t *testing.T) {
	assert.True(t, Spec{}.AcceptsOption("anything"))
	assert.True(t, Spec{Options: mountOptions, AllowAnyOption: true}.AcceptsOption("cache"))

	http := Spec{Options: httpOptions}
	assert.True(t, http.AcceptsOption("route"))
	assert.False(t, http.AcceptsOption("Route"), "declared keys compare case-sensitively")
	assert.False(t, http.AcceptsOption("group"))
}
