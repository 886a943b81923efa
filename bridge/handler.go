package bridge

import (
	"bytes"
	"context"
	"net/http"
)

// Handler is the application capability the bridge drives: one canonical
// request in, one canonical response out. The bridge never retries a call
// and returns handler errors to the runtime untouched. Implementations must
// tolerate concurrent calls when the runtime dispatches invocations
// concurrently.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handle calls f(ctx, req).
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// WrapHTTP adapts a net/http handler, such as a gorilla/mux router, to the
// bridge's Handler interface. Each canonical request is materialized into an
// *http.Request and served against an in-memory response recorder; no
// listener or socket is involved.
func WrapHTTP(h http.Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		httpReq, err := newHTTPRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		rec := newRecorder()
		h.ServeHTTP(rec, httpReq)
		return rec.response(), nil
	})
}

// newHTTPRequest materializes the canonical request as a server-side
// *http.Request the way a net/http server would have populated it.
func newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	target := req.Path
	if encoded := req.Query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), target, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}

	if header := req.Header.Clone(); header != nil {
		httpReq.Header = header
	}
	httpReq.Host = httpReq.Header.Get("Host")
	httpReq.Header.Del("Host")
	httpReq.RemoteAddr = req.RemoteAddr
	httpReq.RequestURI = target
	httpReq.ContentLength = int64(len(req.Body))
	return httpReq, nil
}

// recorder captures what the wrapped handler writes. Unlike
// httptest.ResponseRecorder it keeps only what the canonical response needs.
type recorder struct {
	code int
	head http.Header
	body bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{head: http.Header{}}
}

func (r *recorder) Header() http.Header {
	return r.head
}

// Write latches the implicit 200 before the first byte, as net/http does.
func (r *recorder) Write(p []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.body.Write(p)
}

// WriteHeader keeps the first status written, as net/http does.
func (r *recorder) WriteHeader(statusCode int) {
	if r.code == 0 {
		r.code = statusCode
	}
}

// response snapshots the recorded state. A handler that never called
// WriteHeader gets the implicit 200 net/http would have sent.
func (r *recorder) response() *Response {
	code := r.code
	if code == 0 {
		code = http.StatusOK
	}
	return &Response{
		StatusCode: code,
		Header:     r.head,
		Body:       r.body.Bytes(),
	}
}
