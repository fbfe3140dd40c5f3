package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/mariner/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Register adds all routes from the given groups to the mux. When spec is
// non-nil, each route carrying OpenAPI metadata is also added to the spec
// under basePath.
func Register(mux *http.ServeMux, spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, spec, basePath, "", nil, group)
	}
}

func registerGroup(
	mux *http.ServeMux,
	spec *openapi.Spec,
	basePath, parentPrefix string,
	parentTags []string,
	group Group,
) {
	fullPrefix := parentPrefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if spec != nil && group.Schemas != nil {
		spec.Components.AddSchemas(group.Schemas)
	}

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)

		if spec != nil && route.OpenAPI != nil {
			op := *route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}
			spec.AddOperation(
				route.Method,
				OpenAPIPath(basePath+fullPrefix+route.Pattern),
				&op,
			)
		}
	}
	for _, child := range group.Children {
		registerGroup(mux, spec, basePath, fullPrefix, tags, child)
	}
}

// OpenAPIPath converts a ServeMux pattern into an OpenAPI path template.
// Wildcard segments such as {key...} become {key}; a trailing {$} is dropped.
func OpenAPIPath(pattern string) string {
	pattern = strings.TrimSuffix(pattern, "{$}")
	pattern = strings.ReplaceAll(pattern, "...}", "}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
