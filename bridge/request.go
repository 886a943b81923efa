package bridge

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mfelden/lambdabridge/event"
)

// Request is the canonical form of an invocation event. One shape reaches
// the application no matter which source produced the event.
type Request struct {
	// Method is the request method, normalized to its upper-case spelling.
	Method Method

	// Path is the application-relative request path. It always starts with
	// "/" and never contains the BasePath prefix.
	Path string

	// BasePath is the prefix the invocation source mounted the application
	// under (a deployment stage or a custom-domain path mapping), or "" when
	// there is none. Applications that generate absolute URLs prepend it.
	BasePath string

	// Query holds the query parameters with repeated keys and their per-key
	// value order preserved. Values are carried as the source delivered
	// them, without re-encoding.
	Query url.Values

	// Header holds the request headers with repeated names preserved, names
	// in canonical MIME form.
	Header http.Header

	// Body is the raw request body, base64-decoded when the source flagged
	// it as binary. Nil when the event carried no body.
	Body []byte

	// RemoteAddr is the client address reported by the source, or "" when
	// the source reports none. It is never synthesized from headers.
	RemoteAddr string
}

// buildRequest assembles the canonical request from a parsed event. Keys
// whose single-value form disagrees with the multi-value form are logged and
// left as the multi-value form reported them.
func (b *Bridge) buildRequest(e *event.Event, basePath string, log zerolog.Logger) (*Request, error) {
	method, err := ParseMethod(e.Method())
	if err != nil {
		return nil, err
	}

	header, headerConflicts := e.HTTPHeaders()
	if len(headerConflicts) > 0 {
		log.Warn().Strs("names", headerConflicts).Msg("single-value headers disagree with multi-value form")
	}

	query, queryConflicts, err := e.QueryValues()
	if err != nil {
		return nil, err
	}
	if len(queryConflicts) > 0 {
		log.Warn().Strs("keys", queryConflicts).Msg("single-value query parameters disagree with multi-value form")
	}

	body, err := e.BodyBytes()
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:     method,
		Path:       relativePath(e.RawPath(), basePath),
		BasePath:   basePath,
		Query:      query,
		Header:     header,
		Body:       body,
		RemoteAddr: e.SourceIP(),
	}, nil
}

// relativePath strips the base path off the raw event path. The prefix is
// removed only when it is present and ends on a segment boundary; a raw path
// that does not carry it passes through unchanged. The result always starts
// with "/".
func relativePath(rawPath, basePath string) string {
	p := rawPath
	if basePath != "" && strings.HasPrefix(p, basePath) {
		rest := p[len(basePath):]
		if rest == "" || strings.HasPrefix(rest, "/") {
			p = rest
		}
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
