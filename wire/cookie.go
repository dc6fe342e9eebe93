package wire

import (
	"strconv"
	"strings"
	"time"

	"uniform-http/call"

	"github.com/pkg/errors"
)

// FormatCookies renders request cookies as a single Cookie header value:
// semicolon-delimited name=value pairs, no attributes.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-5.4
func FormatCookies(cookies []call.Cookie) string {
	b := strings.Builder{}

	for i, cookie := range cookies {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(cookie.Name)
		b.WriteByte('=')
		b.WriteString(cookie.Value)
	}

	return b.String()
}

// ParseCookies reads a request Cookie header value into cookies. Pairs
// without a name are skipped.
func ParseCookies(value string) []call.Cookie {
	cookies := make([]call.Cookie, 0)

	for _, pair := range strings.Split(value, ";") {
		name, val, _ := strings.Cut(strings.TrimSpace(pair), "=")
		if name == "" {
			continue
		}
		cookies = append(cookies, call.Cookie{Name: name, Value: val})
	}

	return cookies
}

// ParseCookieSetting reads one Set-Cookie (or Set-Cookie2) header value.
// Unknown attributes are ignored; a missing name=value pair is an error.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-5.2
func ParseCookieSetting(value string) (call.CookieSetting, error) {
	parts := strings.Split(value, ";")

	name, val, found := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !found || name == "" {
		return call.CookieSetting{}, errors.Errorf("missing cookie name: %q", parts[0])
	}

	setting := call.CookieSetting{Name: name, Value: strings.Trim(val, `"`)}

	for _, attr := range parts[1:] {
		attrName, attrValue, _ := strings.Cut(strings.TrimSpace(attr), "=")

		switch strings.ToLower(attrName) {
		case "domain":
			setting.Domain = strings.ToLower(strings.TrimPrefix(attrValue, "."))
		case "path":
			setting.Path = attrValue
		case "secure":
			setting.Secure = true
		case "version":
			v, err := strconv.Atoi(strings.Trim(attrValue, `"`))
			if err != nil {
				return call.CookieSetting{}, errors.Wrap(err, "parsing cookie version")
			}
			setting.Version = v
		case "max-age":
			age, err := strconv.Atoi(attrValue)
			if err != nil {
				return call.CookieSetting{}, errors.Wrap(err, "parsing cookie max-age")
			}
			if age <= 0 {
				age = -1
			}
			setting.MaxAge = age
		case "expires":
			t, err := ParseDate(attrValue)
			if err != nil {
				return call.CookieSetting{}, errors.Wrap(err, "parsing cookie expiry")
			}
			setting.Expires = &t
		}
	}

	return setting, nil
}

// FormatCookieSetting renders one Set-Cookie header value. When only MaxAge
// is set, Expires is derived from now so version-0 recipients age the cookie
// correctly.
func FormatCookieSetting(setting call.CookieSetting, now time.Time) (string, error) {
	if setting.Name == "" {
		return "", errors.New("cookie setting has no name")
	}

	b := strings.Builder{}
	b.WriteString(setting.Name)
	b.WriteByte('=')
	b.WriteString(setting.Value)

	if setting.Version > 0 {
		b.WriteString("; Version=")
		b.WriteString(strconv.Itoa(setting.Version))
	}
	if setting.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(strings.ToLower(setting.Domain))
	}
	if setting.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(setting.Path)
	}

	expires := setting.Expires
	switch {
	case setting.MaxAge > 0:
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(setting.MaxAge))
		if expires == nil {
			t := now.Add(time.Duration(setting.MaxAge) * time.Second)
			expires = &t
		}
	case setting.MaxAge < 0:
		b.WriteString("; Max-Age=0")
	}

	if expires != nil {
		b.WriteString("; Expires=")
		b.WriteString(FormatDate(*expires))
	}

	if setting.Secure {
		b.WriteString("; Secure")
	}

	return b.String(), nil
}
