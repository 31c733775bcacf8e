package annotations

import (
	"fmt"

	"github.com/gogenie/annotate/internal/config"
)

var (
	autowireOptions = []OptionSpec{
		{Key: "set", Description: "injection group"},
		{Key: "new", Description: "constructor function"},
		{Key: "skip", Description: "skip field"},
		{Key: "init", Description: "initialization marker"},
		{Key: "config", Description: "configuration marker"},
	}

	httpOptions = []OptionSpec{
		{Key: "method", Description: "HTTP method"},
		{Key: "route", Description: "route path"},
		{Key: "ns", Description: "namespace filter"},
	}

	serviceLikeOptions = []OptionSpec{
		{Key: "route", Description: "route prefix"},
		{Key: "group", Description: "route group"},
		{Key: "filename", Description: "generated file name"},
		{Key: "proto", Description: "related proto service name"},
	}

	mountOptions = []OptionSpec{
		{Key: "field", Description: "mounted parameter name, e.g. field=Type"},
	}

	// SwaggerTags are the doc annotations understood by the swagger generator
	SwaggerTags = []string{
		"title", "version", "description", "BasePath",
		"Summary", "Description", "Tags", "Accept", "Produce",
		"Param", "Success", "Failure", "Router",
	}
)

// Build assembles the profile for a configuration snapshot: the built-in
// annotations first, then the configured enum, mount and service-like names.
func Build(cfg config.Dynamic) *Profile {
	specs := []Spec{
		{Name: "autowire", CommandFamily: FamilyAutowire, Options: autowireOptions, Snippet: "@autowire(set=...,new=...,skip=...)"},
		{Name: "autowire.init", CommandFamily: FamilyAutowire, Snippet: "@autowire.init(set=...)"},
		{Name: "autowire.config", CommandFamily: FamilyAutowire, Snippet: "@autowire.config(set=...)"},
		{Name: "http", CommandFamily: FamilyHTTP, Options: httpOptions, Snippet: `@http(method=get,route="/list")`},
		{Name: "http.get", CommandFamily: FamilyHTTP, Snippet: `@http.get("/list")`},
		{Name: "http.post", CommandFamily: FamilyHTTP, Snippet: `@http.post("/create")`},
		{Name: "http.delete", CommandFamily: FamilyHTTP, Snippet: `@http.delete("/delete")`},
		{Name: cfg.EnumIndent, CommandFamily: FamilyEnum, Snippet: fmt.Sprintf("@%s(TypeName)", cfg.EnumIndent)},
		{
			Name:           cfg.MountName,
			CommandFamily:  FamilyMount,
			Options:        mountOptions,
			AllowAnyOption: true,
			Snippet:        fmt.Sprintf("@%s(field=Type)", cfg.MountName),
		},
	}

	for _, name := range cfg.ServiceLikeNames() {
		specs = append(specs, Spec{
			Name:          name,
			CommandFamily: FamilyImplHTTP,
			Options:       serviceLikeOptions,
			Snippet:       fmt.Sprintf(`@%s(name,route="/...",group="...")`, name),
		})
	}

	specs = append(specs,
		Spec{Name: "grpc_server", CommandFamily: FamilyGRPC, Snippet: "@grpc_server()"},
		Spec{Name: "rule", CommandFamily: FamilyRule, Snippet: "@rule(description)"},
		Spec{Name: "rule-hash", CommandFamily: FamilyRule, Snippet: "@rule-hash: abcdef1234567890"},
	)
	for _, tag := range SwaggerTags {
		specs = append(specs, Spec{Name: tag, CommandFamily: FamilySwagger, Snippet: fmt.Sprintf("@%s ...", tag)})
	}

	profile := NewProfile(specs, cfg.ImplServiceNames)
	profile.EnumOutputPath = cfg.EnumOutputPath
	profile.HTTPAPIOutputPath = cfg.HTTPAPIOutputPath
	profile.HTTPRouterOutputPath = cfg.HTTPRouterOutputPath
	profile.HTTPClientOutputPath = cfg.HTTPClientOutputPath
	profile.ConfigPath = cfg.ConfigPath
	profile.ParseError = cfg.ParseError
	return profile
}

// Default is the profile of a project without a config file
func Default() *Profile {
	return Build(config.Defaults(""))
}
