package call

import "strings"

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// MethodOf resolves a wire token to a method. Standard tokens are matched
// without regard to case and normalized; unknown tokens are kept verbatim as
// extension methods.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-16.1
func MethodOf(token string) Method {
	switch m := Method(strings.ToUpper(token)); m {
	case MethodGet, MethodHead, MethodPost, MethodPut,
		MethodDelete, MethodConnect, MethodOptions, MethodTrace:
		return m
	}
	return Method(token)
}

// MethodSet holds allowed methods for a response. Membership only, order is
// not meaningful.
type MethodSet map[Method]struct{}

func NewMethodSet(methods ...Method) MethodSet {
	s := make(MethodSet, len(methods))
	for _, m := range methods {
		s.Add(m)
	}
	return s
}

func (s MethodSet) Add(m Method)      { s[m] = struct{}{} }
func (s MethodSet) Has(m Method) bool { _, ok := s[m]; return ok }

func (s MethodSet) Clear() {
	for m := range s {
		delete(s, m)
	}
}
