package wire

import (
	"strconv"
	"strings"

	"uniform-http/call"

	"github.com/pkg/errors"
)

// FormatPreferences renders a preference list as a comma-separated header
// value. A quality of exactly 1 is the wire default and is omitted.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-12.4.2
func FormatPreferences[T ~string](prefs []call.Preference[T]) (string, error) {
	b := strings.Builder{}

	for i, pref := range prefs {
		value := string(pref.Value)
		if !isValidNegotiable(value) {
			return "", errors.Errorf("malformed preference value: %q", value)
		}
		if pref.Quality < 0 || pref.Quality > 1 {
			return "", errors.Errorf("quality out of range: %v", pref.Quality)
		}

		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(value)

		if pref.Quality != 1 {
			b.WriteString(";q=")
			b.WriteString(strconv.FormatFloat(pref.Quality, 'g', -1, 64))
		}
	}

	return b.String(), nil
}

// ParsePreferences reads a comma-separated preference header value. Unknown
// parameters other than q are dropped; a missing q means quality 1.
func ParsePreferences[T ~string](value string) ([]call.Preference[T], error) {
	prefs := make([]call.Preference[T], 0)

	for _, member := range strings.Split(value, ",") {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}

		parts := strings.Split(member, ";")
		pref := call.Preference[T]{
			Value:   T(strings.TrimSpace(parts[0])),
			Quality: 1,
		}
		if !isValidNegotiable(string(pref.Value)) {
			return nil, errors.Errorf("malformed preference value: %q", parts[0])
		}

		for _, param := range parts[1:] {
			name, raw, found := strings.Cut(param, "=")
			if !found || strings.TrimSpace(name) != "q" {
				continue
			}

			q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing quality %q", raw)
			}
			if q < 0 || q > 1 {
				return nil, errors.Errorf("quality out of range: %v", q)
			}
			pref.Quality = q
		}

		prefs = append(prefs, pref)
	}

	return prefs, nil
}
