package call

// Preference pairs a negotiable value with its quality.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-12.4.2
type Preference[T ~string] struct {
	Value T

	// Quality is in [0, 1]. 1 is the implicit default on the wire.
	Quality float64
}

// Prefer builds a preference with the default quality of 1.
func Prefer[T ~string](value T) Preference[T] {
	return Preference[T]{Value: value, Quality: 1}
}

// ClientPreferences carries the content-negotiation preferences of a caller.
// Order is preserved for deterministic serialization; evaluation ignores it.
type ClientPreferences struct {
	MediaTypes    []Preference[MediaType]
	CharacterSets []Preference[CharacterSet]
	Encodings     []Preference[Encoding]
	Languages     []Preference[Language]
}
