package oasgen

import (
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stoewer/go-strcase"
)

// pathParam is one {name} token of a canonical path. The constraint stripped
// from the template survives as a fallback type hint.
type pathParam struct {
	name       string
	constraint string
}

// routeInfo is the normalized view of one route template.
type routeInfo struct {
	// path is the canonical template with constraints stripped: every
	// {name:constraint(args)} token reduced to {name}.
	path string
	// bare is the path minus route-prefix and version segments, without a
	// leading slash. Tag derivation and cross-endpoint dedup key off it.
	bare string
	// params lists the path tokens in template order.
	params []pathParam
}

var versionSegment = regexp.MustCompile(`^[0-9]+$`)

// normalizeRoute canonicalizes a route template and computes the bare route.
func normalizeRoute(opts DocumentOptions, route string) routeInfo {
	segments := strings.Split(strings.Trim(route, "/"), "/")

	var ri routeInfo
	canonical := make([]string, 0, len(segments))
	bare := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			inner := seg[1 : len(seg)-1]
			name, constraint := inner, ""
			if idx := strings.Index(inner, ":"); idx >= 0 {
				name = inner[:idx]
				constraint = inner[idx+1:]
				// Keep only the first constraint token; arguments and
				// chained constraints carry no type information.
				if j := strings.IndexAny(constraint, ":("); j >= 0 {
					constraint = constraint[:j]
				}
			}
			ri.params = append(ri.params, pathParam{name: name, constraint: constraint})
			seg = "{" + name + "}"
			canonical = append(canonical, seg)
			bare = append(bare, seg)
			continue
		}
		canonical = append(canonical, seg)
		if opts.RoutePrefix != "" && strings.EqualFold(seg, opts.RoutePrefix) {
			continue
		}
		if isVersionSegment(opts, seg) {
			continue
		}
		bare = append(bare, seg)
	}

	ri.path = "/" + strings.Join(canonical, "/")
	ri.bare = strings.Join(bare, "/")
	return ri
}

func isVersionSegment(opts DocumentOptions, seg string) bool {
	prefix := opts.VersionPrefix
	if prefix == "" {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(seg), strings.ToLower(prefix)) {
		return false
	}
	rest := seg[len(prefix):]
	return rest != "" && versionSegment.MatchString(rest)
}

// deriveTags computes the operation's tags. An explicit override wins; else
// the configured segment of the bare route is taken, case-transformed, and
// optionally stripped of symbols. Missing inputs degrade to no tags.
func deriveTags(opts DocumentOptions, ep *Endpoint, ri routeInfo) []string {
	if !opts.AutoTags || ep.NoAutoTag {
		return nil
	}
	tag := ep.TagOverride
	if tag == "" {
		segments := strings.Split(ri.bare, "/")
		if opts.TagSegmentIndex >= len(segments) {
			return nil
		}
		tag = segments[opts.TagSegmentIndex]
		if tag == "" || strings.HasPrefix(tag, "{") {
			return nil
		}
	}
	tag = tagCase(opts.TagCase, tag)
	if opts.StripTagSymbols {
		tag = stripSymbols(tag)
	}
	if tag == "" {
		return nil
	}
	return []string{tag}
}

// operationID derives a stable id from the verb and bare route, e.g.
// POST orders/{id} -> postOrdersById.
func operationID(method string, ri routeInfo) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(ri.bare, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") {
			parts = append(parts, "By"+strcase.UpperCamelCase(strings.Trim(seg, "{}")))
			continue
		}
		parts = append(parts, strcase.UpperCamelCase(stripSymbols(seg)))
	}
	return strings.Join(parts, "")
}

// constraintSchema maps a routing-constraint token to a parameter schema.
// Unknown constraints fall back to string.
func constraintSchema(constraint string) *openapi3.Schema {
	switch strings.ToLower(constraint) {
	case "int":
		return openapi3.NewInt32Schema()
	case "long":
		return openapi3.NewInt64Schema()
	case "decimal", "double", "float":
		return openapi3.NewFloat64Schema()
	case "bool":
		return openapi3.NewBoolSchema()
	case "guid":
		return openapi3.NewUUIDSchema()
	case "datetime":
		return openapi3.NewDateTimeSchema()
	default:
		return openapi3.NewStringSchema()
	}
}
