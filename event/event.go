package event

import (
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// Event is a tagged variant over the three supported payload schemas. Exactly
// one of Rest, HTTP and ALB is non-nil, matching Kind. Fields a schema does
// not carry are reported as empty by the accessors, never synthesized.
type Event struct {
	Kind Kind

	Rest *events.APIGatewayProxyRequest
	HTTP *events.APIGatewayV2HTTPRequest
	ALB  *events.ALBTargetGroupRequest
}

// Method returns the HTTP method string exactly as the source sent it.
func (e *Event) Method() string {
	switch e.Kind {
	case RestProxy:
		return e.Rest.HTTPMethod
	case HTTPAPI:
		return e.HTTP.RequestContext.HTTP.Method
	case ALBTarget:
		return e.ALB.HTTPMethod
	}
	return ""
}

// RawPath returns the request path as seen by the invocation source,
// including any stage or base-path prefix the gateway imposes.
//
// The REST proxy schema carries two path fields: the top-level one excludes
// the stage prefix while the request-context one includes it. The latter is
// authoritative here so that base-path resolution sees the full path.
func (e *Event) RawPath() string {
	switch e.Kind {
	case RestProxy:
		if p := e.Rest.RequestContext.Path; p != "" {
			return p
		}
		return e.Rest.Path
	case HTTPAPI:
		if p := e.HTTP.RawPath; p != "" {
			return p
		}
		return e.HTTP.RequestContext.HTTP.Path
	case ALBTarget:
		return e.ALB.Path
	}
	return ""
}

// Stage returns the deployment stage name, or "" for sources without stages.
func (e *Event) Stage() string {
	switch e.Kind {
	case RestProxy:
		return e.Rest.RequestContext.Stage
	case HTTPAPI:
		return e.HTTP.RequestContext.Stage
	}
	return ""
}

// ResourcePath returns the templated resource path ("/users/{id}") for REST
// proxy events, or "" for the other schemas.
func (e *Event) ResourcePath() string {
	if e.Kind == RestProxy {
		return e.Rest.Resource
	}
	return ""
}

// PathParameters returns the values bound to resource path template
// parameters, or nil when the schema has none.
func (e *Event) PathParameters() map[string]string {
	switch e.Kind {
	case RestProxy:
		return e.Rest.PathParameters
	case HTTPAPI:
		return e.HTTP.PathParameters
	}
	return nil
}

// SourceIP returns the client address reported by the source context. The
// ALB schema does not report one.
func (e *Event) SourceIP() string {
	switch e.Kind {
	case RestProxy:
		return e.Rest.RequestContext.Identity.SourceIP
	case HTTPAPI:
		return e.HTTP.RequestContext.HTTP.SourceIP
	}
	return ""
}

// Host returns the host the request was addressed to, from the Host header
// when present, falling back to the HTTP API domain name.
func (e *Event) Host() string {
	h, _ := e.HTTPHeaders()
	if host := h.Get("Host"); host != "" {
		return host
	}
	if e.Kind == HTTPAPI {
		return e.HTTP.RequestContext.DomainName
	}
	return ""
}

// HTTPHeaders returns the request headers merged across the schema's
// single-value and multi-value forms. The multi-value form is authoritative
// when present; single-value entries fill in only the names it lacks. The
// second return value lists header names whose single value conflicted with
// the multi-value form; callers decide whether to log them, the values are
// never reconciled.
//
// HTTP API events carry headers single-valued with cookies split out; the
// cookies are re-joined into one Cookie header here.
func (e *Event) HTTPHeaders() (http.Header, []string) {
	switch e.Kind {
	case RestProxy:
		return mergeHeaders(e.Rest.Headers, e.Rest.MultiValueHeaders)
	case HTTPAPI:
		h, _ := mergeHeaders(e.HTTP.Headers, nil)
		if len(e.HTTP.Cookies) > 0 {
			h.Set("Cookie", joinCookies(e.HTTP.Cookies))
		}
		return h, nil
	case ALBTarget:
		return mergeHeaders(e.ALB.Headers, e.ALB.MultiValueHeaders)
	}
	return http.Header{}, nil
}

// QueryValues returns the query parameters merged across the schema's
// single-value and multi-value forms, preserving repeated keys and their
// per-key value order. The second return value lists keys whose single value
// conflicted with the multi-value form, as for HTTPHeaders.
//
// HTTP API events get their multiplicity from the raw query string; the
// single-value map is the fallback when it is empty. A raw query string that
// cannot be parsed fails with ErrMalformed.
func (e *Event) QueryValues() (url.Values, []string, error) {
	switch e.Kind {
	case RestProxy:
		q, conflicts := mergeQuery(e.Rest.QueryStringParameters, e.Rest.MultiValueQueryStringParameters)
		return q, conflicts, nil
	case HTTPAPI:
		if raw := e.HTTP.RawQueryString; raw != "" {
			q, err := url.ParseQuery(raw)
			if err != nil {
				return nil, nil, errors.Wrapf(ErrMalformed, "parsing raw query string %q: %v", raw, err)
			}
			return q, nil, nil
		}
		q, conflicts := mergeQuery(e.HTTP.QueryStringParameters, nil)
		return q, conflicts, nil
	case ALBTarget:
		q, conflicts := mergeQuery(e.ALB.QueryStringParameters, e.ALB.MultiValueQueryStringParameters)
		return q, conflicts, nil
	}
	return url.Values{}, nil, nil
}

// BodyBytes returns the request body as raw bytes, decoding it from base64
// when the event flags it as binary. A body flagged binary that does not
// decode fails with ErrMalformed.
func (e *Event) BodyBytes() ([]byte, error) {
	body, isBase64 := e.rawBody()
	if body == "" {
		return nil, nil
	}
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "decoding base64 body: %v", err)
		}
		return b, nil
	}
	return []byte(body), nil
}

func (e *Event) rawBody() (string, bool) {
	switch e.Kind {
	case RestProxy:
		return e.Rest.Body, e.Rest.IsBase64Encoded
	case HTTPAPI:
		return e.HTTP.Body, e.HTTP.IsBase64Encoded
	case ALBTarget:
		return e.ALB.Body, e.ALB.IsBase64Encoded
	}
	return "", false
}
