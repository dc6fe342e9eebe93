package wire

import (
	"encoding/base64"
	"strings"

	"uniform-http/call"

	"github.com/pkg/errors"
)

// FormatChallengeResponse renders an Authorization header value from the
// credentials a caller offers. Basic credentials are base64-encoded from the
// identifier/secret pair; other schemes send their credentials verbatim.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-11.6.2
func FormatChallengeResponse(challenge *call.ChallengeResponse) (string, error) {
	if challenge == nil || challenge.Scheme == "" {
		return "", errors.New("challenge response has no scheme")
	}

	if challenge.Scheme == call.SchemeBasic {
		creds := challenge.Identifier + ":" + challenge.Secret
		encoded := base64.StdEncoding.EncodeToString([]byte(creds))
		return string(call.SchemeBasic) + " " + encoded, nil
	}

	if challenge.Credentials == "" {
		return "", errors.Errorf("scheme %q carries no credentials", challenge.Scheme)
	}

	return string(challenge.Scheme) + " " + challenge.Credentials, nil
}

// ParseChallengeResponse reads an Authorization header value. Basic
// credentials are decoded back into the identifier/secret pair.
func ParseChallengeResponse(value string) (*call.ChallengeResponse, error) {
	scheme, creds, found := strings.Cut(value, " ")
	if !found || !isValidToken(scheme) {
		return nil, errors.Errorf("malformed credentials: %q", value)
	}

	challenge := &call.ChallengeResponse{
		Scheme:      call.ChallengeScheme(scheme),
		Credentials: creds,
	}

	if strings.EqualFold(scheme, string(call.SchemeBasic)) {
		challenge.Scheme = call.SchemeBasic

		decoded, err := base64.StdEncoding.DecodeString(creds)
		if err != nil {
			return nil, errors.Wrap(err, "decoding basic credentials")
		}

		id, secret, found := strings.Cut(string(decoded), ":")
		if !found {
			return nil, errors.New("basic credentials have no colon separator")
		}
		challenge.Identifier, challenge.Secret = id, secret
	}

	return challenge, nil
}

// FormatChallengeRequest renders a WWW-Authenticate header value from an
// authentication demand.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-11.6.1
func FormatChallengeRequest(challenge *call.ChallengeRequest) (string, error) {
	if challenge == nil || challenge.Scheme == "" {
		return "", errors.New("challenge request has no scheme")
	}

	b := strings.Builder{}
	b.WriteString(string(challenge.Scheme))

	params := challenge.Parameters
	if challenge.Realm != "" {
		params = append([]call.Parameter{{Name: "realm", Value: challenge.Realm}}, params...)
	}

	for i, param := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(param.Name)
		b.WriteString(`="`)
		b.WriteString(param.Value)
		b.WriteByte('"')
	}

	return b.String(), nil
}

// ParseChallengeRequest reads a WWW-Authenticate header value into a scheme
// plus its parameters. The realm parameter is lifted out; the rest keep
// their wire order.
func ParseChallengeRequest(value string) (*call.ChallengeRequest, error) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(value), " ")
	if !isValidToken(scheme) {
		return nil, errors.Errorf("malformed challenge scheme: %q", value)
	}

	challenge := &call.ChallengeRequest{Scheme: call.ChallengeScheme(scheme)}

	for _, param := range strings.Split(rest, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		name, raw, found := strings.Cut(param, "=")
		if !found {
			return nil, errors.Errorf("malformed challenge parameter: %q", param)
		}

		val := strings.Trim(raw, `"`)
		if strings.EqualFold(name, "realm") {
			challenge.Realm = val
			continue
		}

		challenge.Parameters = append(challenge.Parameters, call.Parameter{
			Name:  name,
			Value: val,
		})
	}

	return challenge, nil
}
