package call

import "time"

// Tag is an opaque entity tag name.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-8.8.3
type Tag string

// Conditions holds the conditional constraints of a request. Nil time
// pointers and empty tag lists mean the condition is absent.
type Conditions struct {
	Match     []Tag
	NoneMatch []Tag

	ModifiedSince   *time.Time
	UnmodifiedSince *time.Time
}

// HasSome reports whether at least one condition is set.
func (c *Conditions) HasSome() bool {
	return len(c.Match) > 0 || len(c.NoneMatch) > 0 ||
		c.ModifiedSince != nil || c.UnmodifiedSince != nil
}
