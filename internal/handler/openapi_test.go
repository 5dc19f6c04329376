package handler_test

import (
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tripplanner/backend/internal/handler"
	"github.com/tripplanner/backend/spec"
)

type openAPIDoc struct {
	OpenAPI string                          `yaml:"openapi"`
	Paths   map[string]map[string]yaml.Node `yaml:"paths"`
}

// documentedOperations returns "METHOD /path" for every operation in the
// embedded OpenAPI document.
func documentedOperations(t *testing.T) []string {
	t.Helper()
	var doc openAPIDoc
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	require.True(t, strings.HasPrefix(doc.OpenAPI, "3.0"))

	var ops []string
	for path, item := range doc.Paths {
		for method := range item {
			if method == "parameters" {
				continue
			}
			ops = append(ops, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(ops)
	return ops
}

// routedOperations returns "METHOD /path" for every route the router serves.
func routedOperations(t *testing.T) []string {
	t.Helper()
	routes, ok := handler.NewServer(handler.Services{}, nil).Routes().(chi.Routes)
	require.True(t, ok, "Routes must return a chi router")

	seen := map[string]bool{}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		route = strings.TrimSuffix(route, "/*")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		if method == "*" || strings.Contains(route, "*") {
			return nil
		}
		seen[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	ops := make([]string, 0, len(seen))
	for op := range seen {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// TestOpenAPI_MatchesRouter keeps the served document and the router in step:
// every documented operation is routed and every route is documented.
func TestOpenAPI_MatchesRouter(t *testing.T) {
	documented := documentedOperations(t)
	routed := routedOperations(t)

	// /openapi.yaml serves the document itself and is not described by it.
	routed = without(routed, "GET /openapi.yaml")

	assert.Equal(t, documented, routed)
}

func without(ops []string, drop string) []string {
	out := ops[:0]
	for _, op := range ops {
		if op != drop {
			out = append(out, op)
		}
	}
	return out
}
