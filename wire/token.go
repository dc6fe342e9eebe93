package wire

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func isValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		// ALPHA
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			continue
		}
		// DIGIT
		if '0' <= c && c <= '9' {
			continue
		}

		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+',
			'-', '.', '^', '_', '`', '|', '~':
			continue
		}

		return false
	}

	return true
}

// isValidNegotiable accepts a token, or a token pair joined by a slash as
// in media ranges ("text/html", "*/*"). Language tags pass the plain token
// check since '-' is a tchar.
func isValidNegotiable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			return isValidToken(s[:i]) && isValidToken(s[i+1:])
		}
	}

	return isValidToken(s)
}
