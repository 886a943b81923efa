package bridge

import (
	"strings"

	"github.com/mfelden/lambdabridge/event"
)

// basePath resolves the prefix the invocation source mounted the application
// under. Resolution never fails: when the event does not carry enough to
// decide, the base path is empty and the raw path passes through whole.
func (b *Bridge) basePath(e *event.Event) string {
	if !b.detectBasePath {
		return ""
	}

	switch e.Kind {
	case event.RestProxy:
		return restBasePath(e)
	case event.HTTPAPI:
		return stageBasePath(e.RawPath(), e.Stage())
	}
	return ""
}

// restBasePath derives the REST proxy base path by populating the resource
// template with the bound path parameters and matching it against the tail
// of the raw path; whatever precedes it is the base path. That covers both
// the deployment stage on the default execute-api domain and a path mapping
// on a custom domain. When the template cannot decide, requests on the
// default domain fall back to the stage name.
func restBasePath(e *event.Event) string {
	raw := e.RawPath()

	populated := populateResourcePath(e.ResourcePath(), e.PathParameters())
	if populated != "" && populated != "/" && strings.HasSuffix(raw, populated) {
		return strings.TrimSuffix(raw, populated)
	}

	if isDefaultGatewayHost(e.Host()) {
		return stageBasePath(raw, e.Stage())
	}
	return ""
}

// stageBasePath returns "/stage" when the stage names a real deployment and
// the raw path actually starts with that segment. HTTP APIs served on the
// default stage report it as "$default", which adds no prefix.
func stageBasePath(rawPath, stage string) string {
	if stage == "" || stage == "$default" {
		return ""
	}
	prefix := "/" + stage
	if rawPath == prefix || strings.HasPrefix(rawPath, prefix+"/") {
		return prefix
	}
	return ""
}

func isDefaultGatewayHost(host string) bool {
	return strings.HasSuffix(host, ".amazonaws.com")
}

// populateResourcePath substitutes the bound path parameters into the
// resource template, segment by segment: "{id}" takes the value bound to
// "id", the greedy "{proxy+}" takes the (possibly multi-segment) value bound
// to "proxy". A segment with no bound value stays as written, which makes
// the template unusable for suffix matching, so resolution falls back to the
// stage rule.
func populateResourcePath(resource string, params map[string]string) string {
	if !strings.Contains(resource, "{") {
		return resource
	}

	segments := strings.Split(resource, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
		name = strings.TrimSuffix(name, "+")
		if value, ok := params[name]; ok {
			segments[i] = value
		}
	}
	return strings.Join(segments, "/")
}
