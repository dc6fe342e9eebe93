package call

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reference identifies a call target. It is a trimmed-down URI: enough
// structure for connectors to derive addresses and the Host header, while
// staying opaque to the dispatch layer.
type Reference struct {
	Scheme   string
	HostName string
	// HostPort is nil when the scheme's default port applies.
	HostPort *uint16

	Path     string
	Query    string
	Fragment string
}

// ParseReference parses an absolute or origin-form reference. It performs no
// percent-decoding; components keep their wire form.
func ParseReference(raw string) (Reference, error) {
	var ref Reference

	if raw == "" {
		return Reference{}, errors.New("empty reference")
	}

	rest := raw
	if i := strings.Index(rest, "://"); i >= 0 {
		ref.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+len("://"):]

		authority := rest
		if j := strings.IndexAny(rest, "/?#"); j >= 0 {
			authority = rest[:j]
			rest = rest[j:]
		} else {
			rest = ""
		}

		host, port, err := splitHostPort(authority)
		if err != nil {
			return Reference{}, errors.Wrap(err, "parsing authority")
		}
		ref.HostName = strings.ToLower(host)
		ref.HostPort = port
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		ref.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		ref.Query = rest[i+1:]
		rest = rest[:i]
	}
	ref.Path = rest

	if ref.Scheme == "" && !strings.HasPrefix(ref.Path, "/") {
		return Reference{}, errors.Errorf("relative reference is not a valid target: %q", raw)
	}

	return ref, nil
}

func splitHostPort(authority string) (host string, port *uint16, _ error) {
	if authority == "" {
		return "", nil, errors.New("authority is empty")
	}

	idx := strings.LastIndexByte(authority, ':')
	if idx < 0 || strings.HasSuffix(authority, "]") {
		// No port, or a bracketed IPv6 literal without one.
		return authority, nil, nil
	}

	p64, err := strconv.ParseUint(authority[idx+1:], 10, 16)
	if err != nil {
		return "", nil, errors.Wrapf(err, "invalid port %q", authority[idx+1:])
	}

	p := uint16(p64)
	return authority[:idx], &p, nil
}

func (r Reference) String() string {
	b := strings.Builder{}

	if r.Scheme != "" {
		b.WriteString(r.Scheme)
		b.WriteString("://")
		b.WriteString(r.HostName)
		if r.HostPort != nil {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(*r.HostPort), 10))
		}
	}

	b.WriteString(r.Path)
	if r.Query != "" {
		b.WriteByte('?')
		b.WriteString(r.Query)
	}
	if r.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(r.Fragment)
	}

	return b.String()
}
