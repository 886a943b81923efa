package bridge

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/mfelden/lambdabridge/event"
)

// ErrInvalidResponse reports an application response the source's payload
// shape cannot carry, such as a status code outside 100-599 or a body forced
// to text that is not valid UTF-8. Test with errors.Is.
var ErrInvalidResponse = errors.New("invalid application response")

// ResponseType forces how a response body travels in the encoded payload,
// overriding the automatic text/binary decision for a content type.
type ResponseType int

const (
	// Text emits the body as a literal UTF-8 string.
	Text ResponseType = iota
	// Binary emits the body base64-encoded with the binary flag set.
	Binary
)

// Response is the canonical application response the bridge encodes back
// into the invocation source's payload shape.
type Response struct {
	// StatusCode is the HTTP status code, in 100-599.
	StatusCode int

	// Header holds the response headers. Repeated names are preserved where
	// the target shape supports them and collapse last-write-wins where it
	// does not.
	Header http.Header

	// Body is the raw response body. Whether it travels as literal text or
	// base64 is decided from the content type and the bytes alone.
	Body []byte
}

// encodeResponse converts the canonical response into the JSON payload shape
// matching the event kind the invocation arrived as.
func (b *Bridge) encodeResponse(resp *Response, kind event.Kind) ([]byte, error) {
	if resp == nil {
		return nil, errors.Wrap(ErrInvalidResponse, "application returned no response")
	}
	if resp.StatusCode < 100 || resp.StatusCode > 599 {
		return nil, errors.Wrapf(ErrInvalidResponse, "status code %d out of range", resp.StatusCode)
	}

	body, isBase64, err := b.encodeBody(resp)
	if err != nil {
		return nil, err
	}

	switch kind {
	case event.RestProxy:
		out := events.APIGatewayProxyResponse{
			StatusCode:      resp.StatusCode,
			Body:            body,
			IsBase64Encoded: isBase64,
		}
		out.Headers, out.MultiValueHeaders = splitHeader(resp.Header)
		return json.Marshal(out)

	case event.HTTPAPI:
		out := events.APIGatewayV2HTTPResponse{
			StatusCode:      resp.StatusCode,
			Body:            body,
			IsBase64Encoded: isBase64,
		}
		out.Headers, out.Cookies = collapseHeader(resp.Header)
		return json.Marshal(out)

	case event.ALBTarget:
		out := events.ALBTargetGroupResponse{
			StatusCode:        resp.StatusCode,
			StatusDescription: statusDescription(resp.StatusCode),
			Body:              body,
			IsBase64Encoded:   isBase64,
		}
		out.Headers, out.MultiValueHeaders = duplicateHeader(resp.Header)
		return json.Marshal(out)
	}

	return nil, errors.Errorf("cannot encode a response for event kind %q", kind)
}

// encodeBody decides whether the body travels as a literal string or as
// base64. An override registered for the body's content type wins; otherwise
// a content type not recognized as text, or bytes that are not valid UTF-8,
// force base64. The decision depends only on the content type, the bytes and
// the setup-time overrides.
func (b *Bridge) encodeBody(resp *Response) (string, bool, error) {
	if len(resp.Body) == 0 {
		return "", false, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if forced, ok := b.respTypes[mediaType(contentType)]; ok {
		if forced == Binary {
			return base64.StdEncoding.EncodeToString(resp.Body), true, nil
		}
		if !utf8.Valid(resp.Body) {
			return "", false, errors.Wrapf(ErrInvalidResponse, "%s body forced to text is not valid utf-8", contentType)
		}
		return string(resp.Body), false, nil
	}

	if contentType != "" && !isTextContentType(contentType) {
		return base64.StdEncoding.EncodeToString(resp.Body), true, nil
	}
	if !utf8.Valid(resp.Body) {
		return base64.StdEncoding.EncodeToString(resp.Body), true, nil
	}
	return string(resp.Body), false, nil
}

// isTextContentType reports whether the content type names a textual media
// type that is safe to emit as a literal string.
func isTextContentType(contentType string) bool {
	mt := mediaType(contentType)
	if strings.HasPrefix(mt, "text/") {
		return true
	}
	switch mt {
	case "application/json",
		"application/xml",
		"application/javascript",
		"application/x-www-form-urlencoded",
		"image/svg+xml":
		return true
	}
	return strings.HasSuffix(mt, "+json") || strings.HasSuffix(mt, "+xml")
}

// mediaType reduces a Content-Type value to its bare lower-case media type,
// dropping any parameters such as charset.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// splitHeader partitions headers between the REST proxy's single-value and
// multi-value maps. The gateway merges both maps into one header list, so
// each name goes into exactly one of them to keep values from doubling.
func splitHeader(h http.Header) (map[string]string, map[string][]string) {
	var single map[string]string
	var multi map[string][]string

	for name, values := range h {
		switch {
		case len(values) == 0:
		case len(values) == 1:
			if single == nil {
				single = make(map[string]string)
			}
			single[name] = values[0]
		default:
			if multi == nil {
				multi = make(map[string][]string)
			}
			multi[name] = values
		}
	}
	return single, multi
}

// duplicateHeader fills both ALB header maps with the full header set. A
// target group reads exactly one of the two maps depending on its
// multi-value-headers attribute, which the function cannot see, so both must
// be complete. The single-value map keeps the last value per name.
func duplicateHeader(h http.Header) (map[string]string, map[string][]string) {
	if len(h) == 0 {
		return nil, nil
	}

	single := make(map[string]string, len(h))
	multi := make(map[string][]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		single[name] = values[len(values)-1]
		multi[name] = values
	}
	return single, multi
}

// collapseHeader flattens headers into the HTTP API's single-value map.
// Set-Cookie values travel in the dedicated cookies list; any other repeated
// name collapses last-write-wins, the documented loss for this shape.
func collapseHeader(h http.Header) (map[string]string, []string) {
	var single map[string]string
	var cookies []string

	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		if http.CanonicalHeaderKey(name) == "Set-Cookie" {
			cookies = append(cookies, values...)
			continue
		}
		if single == nil {
			single = make(map[string]string)
		}
		single[name] = values[len(values)-1]
	}
	return single, cookies
}

// statusDescription renders the ALB status description, "200 OK" style.
func statusDescription(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}
