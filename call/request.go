package call

// AttributeHeaders is the attribute-bag key under which connectors expose
// raw wire headers (request: caller-supplied extension headers to emit;
// response: the full received header list).
const AttributeHeaders = "uniform.http.headers"

// Request is the uniform model of one call. It is treated as immutable for
// the duration of the call it belongs to.
type Request struct {
	Method Method
	Ref    Reference

	Client     ClientInfo
	Conditions Conditions
	Cookies    []Cookie
	// ReferrerRef is empty when the caller disclosed no referrer.
	ReferrerRef string

	// Challenge carries the credentials offered by the caller, if any.
	Challenge *ChallengeResponse

	Entity *Representation

	// Attributes is the extension bag. Connectors look up
	// [AttributeHeaders] here; everything else passes through untouched.
	Attributes map[string]any
}

// EntityAvailable reports whether the request carries a readable entity.
func (r *Request) EntityAvailable() bool {
	return r.Entity.Available()
}
