// Package wire translates between the uniform call model and raw HTTP
// headers. Connectors own the wire calls; the converters here read and
// write them without touching sockets.
package wire
