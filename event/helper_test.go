package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return content
}

func parseFixture(t *testing.T, name string) *Event {
	t.Helper()

	e, err := Parse(readFixture(t, name))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func restEvent(req events.APIGatewayProxyRequest) *Event {
	return &Event{Kind: RestProxy, Rest: &req}
}

func httpEvent(req events.APIGatewayV2HTTPRequest) *Event {
	return &Event{Kind: HTTPAPI, HTTP: &req}
}

func albEvent(req events.ALBTargetGroupRequest) *Event {
	return &Event{Kind: ALBTarget, ALB: &req}
}
