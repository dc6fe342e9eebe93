package call

import "uniform-http/call/status"

// Response is the uniform model of one call's outcome. Both the converter
// and the dispatch engine mutate it in place during a call.
type Response struct {
	Status status.Status

	Entity *Representation

	Server ServerInfo

	// RedirectRef is set from the Location header; empty means absent.
	RedirectRef string

	// CookieSettings accumulates Set-Cookie demands from the server.
	CookieSettings []CookieSetting

	// Challenge is the authentication demand from a WWW-Authenticate
	// header, if any.
	Challenge *ChallengeRequest

	// AllowedMethods is recomputed from resource capabilities every time
	// method-not-allowed is reported; it is never cached across calls.
	AllowedMethods MethodSet

	Attributes map[string]any
}

// NewResponse returns a response initialized the way a call starts: 200 OK,
// with empty collections ready to be filled.
func NewResponse() *Response {
	return &Response{
		Status:         status.OK,
		AllowedMethods: NewMethodSet(),
		Attributes:     make(map[string]any),
	}
}

// SetAttribute stores an attribute, allocating the bag on first use.
func (r *Response) SetAttribute(key string, value any) {
	if r.Attributes == nil {
		r.Attributes = make(map[string]any)
	}
	r.Attributes[key] = value
}
