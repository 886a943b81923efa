package bridge

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedMethod reports an event whose method is outside the standard
// HTTP method set. Test with errors.Is.
var ErrUnsupportedMethod = errors.New("unsupported http method")

// Method is an enum of the standard HTTP methods.
type Method int

const (
	GET Method = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var methodNames = [...]string{
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

var methodValues = map[string]Method{
	"GET":     GET,
	"HEAD":    HEAD,
	"POST":    POST,
	"PUT":     PUT,
	"DELETE":  DELETE,
	"CONNECT": CONNECT,
	"OPTIONS": OPTIONS,
	"TRACE":   TRACE,
	"PATCH":   PATCH,
}

// String returns the method in its upper-case wire spelling.
func (m Method) String() string {
	if m < GET || m > PATCH {
		return "INVALID"
	}
	return methodNames[m]
}

// ParseMethod maps a method string onto the Method enum. The string is
// upper-cased first, since method fields arrive in whatever casing the client
// sent. Anything outside the nine standard methods fails with
// ErrUnsupportedMethod.
func ParseMethod(s string) (Method, error) {
	m, ok := methodValues[strings.ToUpper(s)]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedMethod, "method %q", s)
	}
	return m, nil
}
