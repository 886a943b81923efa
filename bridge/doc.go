// Package bridge translates Lambda invocation events that carry HTTP
// semantics into one canonical request shape, hands that request to an
// application handler and encodes the handler's response back into the JSON
// shape the invocation source expects. The API Gateway REST proxy, the API
// Gateway HTTP API and ALB target groups are all served through the same
// Handler interface, so an application written once runs behind any of the
// three.
//
// A Bridge implements lambda.Handler; Start wires it to the Lambda runtime.
// Plain net/http applications are adapted with WrapHTTP.
package bridge
