package call

import "time"

// Cookie is a name/value pair sent by a client on a request. Attributes
// never travel with it; they belong to [CookieSetting] only.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-5.4
type Cookie struct {
	Name  string
	Value string
}

// CookieSetting is a server's demand that the client store a cookie.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-5.2
type CookieSetting struct {
	Name  string
	Value string

	Version int
	Domain  string
	Path    string

	// MaxAge is in seconds. Zero means unset; negative means "discard now".
	MaxAge int
	// Expires is an absolute alternative to MaxAge; nil means unset.
	Expires *time.Time

	Secure bool
}
