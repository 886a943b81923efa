package event

// Kind is an enum of the supported invocation payload schemas.
type Kind int

const (
	// RestProxy is the API Gateway REST API proxy integration, payload
	// format version 1.0.
	RestProxy Kind = iota
	// HTTPAPI is the API Gateway HTTP API integration, payload format
	// version 2.0. Lambda function URLs share this shape.
	HTTPAPI
	// ALBTarget is the Application Load Balancer target group integration.
	ALBTarget
)

// String returns the name used for the kind in logs and error messages.
func (k Kind) String() string {
	switch k {
	case RestProxy:
		return "rest-proxy"
	case HTTPAPI:
		return "http-api"
	case ALBTarget:
		return "alb-target"
	}
	return "unknown"
}
