package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mfelden/lambdabridge/event"
)

// spyHandler records the invocation it receives and replies with canned
// values.
type spyHandler struct {
	called bool
	ctx    context.Context
	req    *Request

	resp *Response
	err  error
}

func (s *spyHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	s.called = true
	s.ctx = ctx
	s.req = req
	return s.resp, s.err
}

func newBridge(t *testing.T, handler Handler, options ...Option) *Bridge {
	t.Helper()

	b, err := New(handler, options...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func marshalPayload(t *testing.T, v interface{}) []byte {
	t.Helper()

	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

// helloRestRequest is a GET /hello on the Prod stage of a default
// execute-api domain, in the REST proxy shape.
func helloRestRequest() events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		Resource:   "/hello",
		Path:       "/hello",
		HTTPMethod: "GET",
		Headers: map[string]string{
			"Accept": "text/plain",
			"Host":   "abcdef1234.execute-api.eu-west-1.amazonaws.com",
		},
		MultiValueHeaders: map[string][]string{
			"Accept": {"text/plain"},
			"Host":   {"abcdef1234.execute-api.eu-west-1.amazonaws.com"},
		},
	}
	req.RequestContext.Stage = "Prod"
	req.RequestContext.Path = "/Prod/hello"
	req.RequestContext.Identity.SourceIP = "10.0.0.1"
	return req
}

// helloHTTPRequest is the same request in the HTTP API shape, on a named
// stage.
func helloHTTPRequest() events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{
		Version:        "2.0",
		RouteKey:       "GET /hello",
		RawPath:        "/prod/hello",
		RawQueryString: "q=one&q=two",
		Headers: map[string]string{
			"accept": "text/plain",
			"host":   "abcdef1234.execute-api.eu-west-1.amazonaws.com",
		},
	}
	req.RequestContext.Stage = "prod"
	req.RequestContext.DomainName = "abcdef1234.execute-api.eu-west-1.amazonaws.com"
	req.RequestContext.HTTP.Method = "GET"
	req.RequestContext.HTTP.Path = "/prod/hello"
	req.RequestContext.HTTP.SourceIP = "10.0.0.1"
	return req
}

// helloALBRequest is the same request in the ALB target group shape with
// multi-value mode enabled.
func helloALBRequest() events.ALBTargetGroupRequest {
	req := events.ALBTargetGroupRequest{
		HTTPMethod: "GET",
		Path:       "/hello",
		MultiValueHeaders: map[string][]string{
			"accept": {"text/plain"},
			"host":   {"lb.example.com"},
			"x-tag":  {"a", "b"},
		},
	}
	req.RequestContext.ELB.TargetGroupArn = "arn:aws:elasticloadbalancing:eu-west-1:123456789012:targetgroup/hello/6d0ecf831eec9f09"
	return req
}

func restEventOf(req events.APIGatewayProxyRequest) *event.Event {
	return &event.Event{Kind: event.RestProxy, Rest: &req}
}

func httpEventOf(req events.APIGatewayV2HTTPRequest) *event.Event {
	return &event.Event{Kind: event.HTTPAPI, HTTP: &req}
}

func albEventOf(req events.ALBTargetGroupRequest) *event.Event {
	return &event.Event{Kind: event.ALBTarget, ALB: &req}
}

func textResponse(status int, body string) *Response {
	resp := &Response{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
	resp.Header.Set("Content-Type", "text/plain")
	return resp
}

func decodeRestResponse(t *testing.T, payload []byte) events.APIGatewayProxyResponse {
	t.Helper()

	var resp events.APIGatewayProxyResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeHTTPResponse(t *testing.T, payload []byte) events.APIGatewayV2HTTPResponse {
	t.Helper()

	var resp events.APIGatewayV2HTTPResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeALBResponse(t *testing.T, payload []byte) events.ALBTargetGroupResponse {
	t.Helper()

	var resp events.ALBTargetGroupResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}
