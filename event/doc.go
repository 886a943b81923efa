// Package event models the invocation payloads a Lambda function receives
// when it is fronted by an HTTP-speaking source: the API Gateway REST proxy
// (payload format 1.0), the API Gateway HTTP API (payload format 2.0) and the
// ALB target group integration. It detects which of the three schemas a raw
// payload matches, parses it into a tagged Event and exposes uniform accessors
// over the fields the schemas spell differently (raw path, stage, headers and
// query parameters with their multiplicity, base64-flagged bodies).
//
// Parsing is side-effect free and validates the fields every schema requires;
// payloads that match no schema or are missing required fields fail with
// ErrMalformed.
package event
