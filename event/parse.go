package event

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ErrMalformed reports a payload that matches no known schema or is missing
// a field the matched schema requires. Test with errors.Is.
var ErrMalformed = errors.New("malformed invocation event")

// probe reads just the fields that discriminate between the schemas.
type probe struct {
	Version        string `json:"version"`
	RouteKey       string `json:"routeKey"`
	RawPath        string `json:"rawPath"`
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		ELB json.RawMessage `json:"elb"`
	} `json:"requestContext"`
}

// Parse detects which payload schema the raw JSON matches and unmarshals it
// into an Event. The field sets are checked in order of specificity: an elb
// request context marks an ALB target event, version "2.0" (or any non-empty
// version alongside rawPath or routeKey) marks an HTTP API event, a
// top-level httpMethod marks a REST proxy event. Anything else, and any
// payload whose fields are mistyped or missing the HTTP method, fails with
// ErrMalformed.
//
// An HTTP API dispatching with payload format version 1.0 sends the REST
// proxy shape with "version":"1.0"; those parse as RestProxy.
func Parse(payload []byte) (*Event, error) {
	var p probe
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "decoding payload: %v", err)
	}

	var e *Event
	switch {
	case len(p.RequestContext.ELB) > 0 && string(p.RequestContext.ELB) != "null":
		req := new(events.ALBTargetGroupRequest)
		if err := json.Unmarshal(payload, req); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "decoding alb-target event: %v", err)
		}
		e = &Event{Kind: ALBTarget, ALB: req}

	case p.Version == "2.0" || (p.Version != "" && (p.RawPath != "" || p.RouteKey != "")):
		req := new(events.APIGatewayV2HTTPRequest)
		if err := json.Unmarshal(payload, req); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "decoding http-api event: %v", err)
		}
		e = &Event{Kind: HTTPAPI, HTTP: req}

	case p.HTTPMethod != "":
		req := new(events.APIGatewayProxyRequest)
		if err := json.Unmarshal(payload, req); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "decoding rest-proxy event: %v", err)
		}
		e = &Event{Kind: RestProxy, Rest: req}

	default:
		return nil, errors.Wrap(ErrMalformed, "payload matches no known event schema")
	}

	if e.Method() == "" {
		return nil, errors.Wrapf(ErrMalformed, "%s event has no http method", e.Kind)
	}

	return e, nil
}
