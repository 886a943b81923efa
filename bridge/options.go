package bridge

import "github.com/rs/zerolog"

// Option configures a Bridge at setup time.
type Option func(*Bridge)

// WithBasePathDetection toggles base-path resolution, which is enabled by
// default. Disabled, every canonical path is the raw event path and
// Request.BasePath is always empty.
func WithBasePathDetection(enabled bool) Option {
	return func(b *Bridge) {
		b.detectBasePath = enabled
	}
}

// WithResponseType forces text or binary encoding for response bodies with
// the given content type, overriding the automatic decision. Matching is
// case-insensitive and ignores parameters, so an override registered for
// "application/msgpack" also covers "application/msgpack; v=5".
func WithResponseType(contentType string, t ResponseType) Option {
	return func(b *Bridge) {
		b.respTypes[mediaType(contentType)] = t
	}
}

// WithLogger sets the logger the bridge writes invocation diagnostics to.
// The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bridge) {
		b.log = log
	}
}
