package call

// ChallengeScheme is an HTTP authentication scheme token.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-11.1
type ChallengeScheme string

const (
	SchemeBasic  ChallengeScheme = "Basic"
	SchemeDigest ChallengeScheme = "Digest"
)

// ChallengeRequest is an authentication demand sent by a server, typically
// on a 401 response.
type ChallengeRequest struct {
	Scheme ChallengeScheme
	Realm  string

	// Parameters preserves scheme-specific parameters beyond the realm,
	// in wire order.
	Parameters []Parameter
}

// ChallengeResponse carries the credentials a client offers. For the Basic
// scheme, Identifier/Secret are encoded together; other schemes send
// Credentials verbatim.
type ChallengeResponse struct {
	Scheme ChallengeScheme

	Identifier string
	Secret     string

	Credentials string
}

// Parameter is an ordered name/value pair, used where wire order or
// duplicates must survive a round trip.
type Parameter struct {
	Name  string
	Value string
}
