package call

import "io"

// Metadata facets of a representation. Each is a plain token or token pair
// compared case-insensitively on the wire; zero value means "not set".
type (
	MediaType    string
	CharacterSet string
	Encoding     string
	Language     string
)

const MediaTypeAll MediaType = "*/*"

// Main returns the primary type of a media range ("text" for "text/html").
func (m MediaType) Main() string {
	for i := 0; i < len(m); i++ {
		if m[i] == '/' {
			return string(m[:i])
		}
	}
	return string(m)
}

// Sub returns the subtype of a media range ("html" for "text/html").
func (m MediaType) Sub() string {
	for i := 0; i < len(m); i++ {
		if m[i] == '/' {
			return string(m[i+1:])
		}
	}
	return ""
}

// Includes reports whether m, possibly a wildcard range, covers other.
func (m MediaType) Includes(other MediaType) bool {
	if m == MediaTypeAll || m == other {
		return true
	}
	return m.Sub() == "*" && m.Main() == other.Main()
}

// Primary returns the primary tag of a language ("en" for "en-US").
func (l Language) Primary() string {
	for i := 0; i < len(l); i++ {
		if l[i] == '-' {
			return string(l[:i])
		}
	}
	return string(l)
}

// Representation is an entity with its descriptive metadata. Content is a
// one-shot stream owned by the call; Size < 0 means unknown.
type Representation struct {
	MediaType    MediaType
	CharacterSet CharacterSet
	Encoding     Encoding
	Language     Language

	Size    int64
	Content io.ReadCloser
}

// Available reports whether the representation carries a readable entity.
func (r *Representation) Available() bool {
	return r != nil && r.Content != nil
}
