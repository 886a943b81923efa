package bridge

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mfelden/lambdabridge/event"
)

// Bridge drives an application Handler from Lambda invocation events: it
// parses each event, builds the canonical request, calls the handler and
// encodes the response into the shape the event's source expects. A Bridge
// is immutable after New and safe for concurrent invocations; nothing is
// carried over between them.
//
// Example:
//
//	func main() {
//		router := mux.NewRouter()
//		router.HandleFunc("/hello", hello).Methods(http.MethodGet)
//
//		b, err := bridge.New(bridge.WrapHTTP(router))
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		b.Start()
//	}
type Bridge struct {
	handler        Handler
	detectBasePath bool
	respTypes      map[string]ResponseType
	log            zerolog.Logger
}

var _ lambda.Handler = (*Bridge)(nil)

// New builds a Bridge around the application handler. The handler must not
// be nil.
func New(handler Handler, options ...Option) (*Bridge, error) {
	if handler == nil {
		return nil, errors.New("cannot bridge a nil handler")
	}

	b := &Bridge{
		handler:        handler,
		detectBasePath: true,
		respTypes:      map[string]ResponseType{},
		log:            zerolog.Nop(),
	}
	for _, option := range options {
		option(b)
	}
	return b, nil
}

// Invoke implements lambda.Handler. Payloads that fail to parse and events
// the canonical request cannot represent are rejected without calling the
// application; errors from the application itself pass through untouched,
// so the runtime and the caller's errors.Is checks see the original values.
func (b *Bridge) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	log := b.invocationLogger(ctx)

	e, err := event.Parse(payload)
	if err != nil {
		log.Debug().Err(err).Msg("rejecting payload")
		return nil, err
	}

	basePath := b.basePath(e)
	req, err := b.buildRequest(e, basePath, log)
	if err != nil {
		log.Debug().Err(err).Str("kind", e.Kind.String()).Msg("rejecting event")
		return nil, err
	}

	log.Debug().
		Str("kind", e.Kind.String()).
		Str("method", req.Method.String()).
		Str("path", req.Path).
		Str("base_path", req.BasePath).
		Msg("dispatching request")

	resp, err := b.handler.Handle(event.NewContext(ctx, e), req)
	if err != nil {
		return nil, err
	}

	out, err := b.encodeResponse(resp, e.Kind)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("status", resp.StatusCode).Msg("request complete")
	return out, nil
}

// Start hands the bridge to the Lambda runtime and blocks serving
// invocations.
func (b *Bridge) Start() {
	b.log.Info().
		Str("function", lambdacontext.FunctionName).
		Str("version", lambdacontext.FunctionVersion).
		Int("memory_mb", lambdacontext.MemoryLimitInMB).
		Msg("bridge serving invocations")

	lambda.Start(b)
}

// invocationLogger returns the configured logger enriched with the AWS
// request id when the runtime put one on the context.
func (b *Bridge) invocationLogger(ctx context.Context) zerolog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return b.log.With().Str("aws_request_id", lc.AwsRequestID).Logger()
	}
	return b.log
}
