package dispatch

import (
	"uniform-http/call"
)

// PreferredRepresentation selects the variant best matching the client's
// accepted media types and languages. The score of a variant is the product
// of its best media-type quality and best language quality; the highest
// positive score wins, first declared wins ties.
//
// When no variant achieves a language match, variants in the fallback
// language (or with no language at all) are reconsidered on media type
// alone. Returns nil when nothing is acceptable.
func PreferredRepresentation(
	accept *call.ClientPreferences,
	variants []*call.Representation,
	fallback call.Language,
) *call.Representation {
	var best *call.Representation
	bestScore := 0.0

	for _, variant := range variants {
		score := mediaTypeQuality(accept.MediaTypes, variant.MediaType) *
			languageQuality(accept.Languages, variant.Language)

		if score > bestScore {
			best, bestScore = variant, score
		}
	}

	if best != nil || fallback == "" {
		return best
	}

	// Language negotiation produced nothing. Fall back.
	for _, variant := range variants {
		if variant.Language != "" && variant.Language.Primary() != fallback.Primary() {
			continue
		}

		score := mediaTypeQuality(accept.MediaTypes, variant.MediaType)
		if score > bestScore {
			best, bestScore = variant, score
		}
	}

	return best
}

// mediaTypeQuality is the best quality among accepted ranges covering the
// variant's media type. An empty preference list accepts anything.
func mediaTypeQuality(prefs []call.Preference[call.MediaType], mt call.MediaType) float64 {
	if len(prefs) == 0 {
		return 1
	}

	best := 0.0
	for _, pref := range prefs {
		if pref.Value.Includes(mt) && pref.Quality > best {
			best = pref.Quality
		}
	}
	return best
}

// languageQuality is the best quality among accepted languages matching the
// variant's language. A variant without a language, or an empty preference
// list, always matches.
func languageQuality(prefs []call.Preference[call.Language], lang call.Language) float64 {
	if lang == "" || len(prefs) == 0 {
		return 1
	}

	best := 0.0
	for _, pref := range prefs {
		if !languageMatches(pref.Value, lang) {
			continue
		}
		if pref.Quality > best {
			best = pref.Quality
		}
	}
	return best
}

// languageMatches follows basic language-range matching: "*" covers all,
// a bare primary tag covers its subtags.
// Reference: https://datatracker.ietf.org/doc/html/rfc4647#section-3.3.1
func languageMatches(accepted, lang call.Language) bool {
	if accepted == "*" || accepted == lang {
		return true
	}
	return string(accepted) == lang.Primary()
}
