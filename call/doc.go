// Package call implements the transport-independent uniform call model:
// the request/response pair that application-facing code manipulates while
// connectors translate it to and from the wire.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110
package call
