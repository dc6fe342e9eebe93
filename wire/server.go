package wire

import (
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"uniform-http/call"
	"uniform-http/call/status"
	iolib "uniform-http/lib/io"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// ServerCall is the transport-facing side of one inbound exchange, the
// mirror of [ClientCall]. The connector parses the request line and streams
// bodies; the converter maps headers both ways.
type ServerCall interface {
	Method() string
	Target() string
	ClientAddress() string

	RequestHeaders() Headers
	// RequestEntity returns the raw request body stream, nil when absent.
	// The converter bounds it by Content-Length when one is declared.
	RequestEntity() io.ReadCloser

	ResponseHeaders() *Headers

	// SendResponse writes the status line, the accumulated response
	// headers and the entity (nil when absent). For HEAD requests the
	// connector must suppress the body while keeping the headers.
	SendResponse(st status.Status, entity *call.Representation) error
}

// ServerConverter translates inbound wire calls into uniform requests and
// uniform responses back onto the wire. Stateless except for its
// collaborators; one instance serves any number of concurrent calls.
type ServerConverter struct {
	logger *slog.Logger
	clock  clock.Clock

	agent string
}

// ServerConverterOptions tunes a [ServerConverter].
type ServerConverterOptions struct {
	// Agent overrides the Server header value. Empty means [LibraryAgent].
	Agent string
}

func NewServerConverter(
	logger *slog.Logger, clock clock.Clock, opts ServerConverterOptions,
) *ServerConverter {
	agent := opts.Agent
	if agent == "" {
		agent = LibraryAgent
	}

	return &ServerConverter{logger: logger, clock: clock, agent: agent}
}

// ToUniform parses an inbound wire call into a uniform request. Only a
// target that cannot be parsed fails the call; any single bad header is
// logged and skipped.
func (c *ServerConverter) ToUniform(sc ServerCall) (*call.Request, error) {
	ref, err := call.ParseReference(sc.Target())
	if err != nil {
		return nil, errors.Wrap(err, "parsing request target")
	}

	headers := sc.RequestHeaders()

	request := &call.Request{
		Method: call.MethodOf(sc.Method()),
		Ref:    ref,
		Client: call.ClientInfo{Address: sc.ClientAddress()},
		// Nothing is lost even when not specially interpreted.
		Attributes: map[string]any{call.AttributeHeaders: headers},
	}

	if request.Ref.HostName == "" {
		if host, ok := headers.Get(HeaderHost); ok {
			name, port, err := splitAuthority(host)
			if err != nil {
				c.logger.Warn("unable to parse the Host header",
					"host", host, "error", err)
			} else {
				request.Ref.HostName = name
				request.Ref.HostPort = port
			}
		}
	}

	if agent, ok := headers.Get(HeaderUserAgent); ok {
		request.Client.Agent = agent
	}
	if referrer, ok := headers.Get(HeaderReferrer); ok {
		request.ReferrerRef = referrer
	}

	c.readConditionHeaders(headers, &request.Conditions)
	c.readPreferenceHeaders(headers, &request.Client.Accept)

	for _, value := range headers.Values(HeaderCookie) {
		request.Cookies = append(request.Cookies, ParseCookies(value)...)
	}

	if value, ok := headers.Get(HeaderAuthorization); ok {
		challenge, err := ParseChallengeResponse(value)
		if err != nil {
			c.logger.Warn("unable to parse the Authorization header", "error", err)
		} else {
			request.Challenge = challenge
		}
	}

	request.Entity = c.readRequestEntity(sc, headers)

	return request, nil
}

func (c *ServerConverter) readConditionHeaders(headers Headers, cond *call.Conditions) {
	if value, ok := headers.Get(HeaderIfMatch); ok {
		cond.Match = splitTags(value)
	}
	if value, ok := headers.Get(HeaderIfNoneMatch); ok {
		cond.NoneMatch = splitTags(value)
	}

	if value, ok := headers.Get(HeaderIfModifiedSince); ok {
		if t, err := ParseDate(value); err != nil {
			c.logger.Warn("unable to parse the If-Modified-Since header",
				"value", value, "error", err)
		} else {
			cond.ModifiedSince = &t
		}
	}
	if value, ok := headers.Get(HeaderIfUnmodifiedSince); ok {
		if t, err := ParseDate(value); err != nil {
			c.logger.Warn("unable to parse the If-Unmodified-Since header",
				"value", value, "error", err)
		} else {
			cond.UnmodifiedSince = &t
		}
	}
}

func (c *ServerConverter) readPreferenceHeaders(headers Headers, accept *call.ClientPreferences) {
	if value, ok := headers.Get(HeaderAccept); ok {
		if prefs, err := ParsePreferences[call.MediaType](value); err != nil {
			c.logger.Warn("unable to parse the Accept header", "error", err)
		} else {
			accept.MediaTypes = prefs
		}
	}

	if value, ok := headers.Get(HeaderAcceptCharset); ok {
		if prefs, err := ParsePreferences[call.CharacterSet](value); err != nil {
			c.logger.Warn("unable to parse the Accept-Charset header", "error", err)
		} else {
			accept.CharacterSets = prefs
		}
	}

	if value, ok := headers.Get(HeaderAcceptEncoding); ok {
		if prefs, err := ParsePreferences[call.Encoding](value); err != nil {
			c.logger.Warn("unable to parse the Accept-Encoding header", "error", err)
		} else {
			accept.Encodings = prefs
		}
	}

	if value, ok := headers.Get(HeaderAcceptLanguage); ok {
		if prefs, err := ParsePreferences[call.Language](value); err != nil {
			c.logger.Warn("unable to parse the Accept-Language header", "error", err)
		} else {
			accept.Languages = prefs
		}
	}
}

func (c *ServerConverter) readRequestEntity(sc ServerCall, headers Headers) *call.Representation {
	body := sc.RequestEntity()
	if body == nil {
		return nil
	}

	entity := &call.Representation{Size: -1, Content: body}

	if value, ok := headers.Get(HeaderContentType); ok {
		mediaType, _, _ := strings.Cut(value, ";")
		entity.MediaType = call.MediaType(strings.TrimSpace(mediaType))
	}
	if value, ok := headers.Get(HeaderContentEncoding); ok {
		entity.Encoding = call.Encoding(value)
	}
	if value, ok := headers.Get(HeaderContentLanguage); ok {
		entity.Language = call.Language(value)
	}

	if value, ok := headers.Get(HeaderContentLength); ok {
		size, err := strconv.ParseUint(value, 10, 63)
		if err != nil {
			c.logger.Warn("unable to parse the Content-Length header",
				"value", value, "error", err)
		} else {
			entity.Size = int64(size)
			entity.Content = iolib.LimitReadCloser(body, uint(size))
		}
	}

	return entity
}

// Commit writes the uniform response onto the wire call. Failures are
// logged, never propagated.
func (c *ServerConverter) Commit(sc ServerCall, response *call.Response) {
	c.addResponseHeaders(sc, response)

	var entity *call.Representation
	if response.Entity.Available() {
		entity = response.Entity
	}

	if err := sc.SendResponse(response.Status, entity); err != nil {
		c.logger.Info("error intercepted while sending response", "error", err)
	}
}

// addResponseHeaders assembles the wire response headers, mirroring the
// request-header assembly on the client side.
func (c *ServerConverter) addResponseHeaders(sc ServerCall, response *call.Response) {
	headers := sc.ResponseHeaders()

	agent := response.Server.Agent
	if agent == "" {
		agent = c.agent
	}
	headers.Add(HeaderServer, agent)

	headers.Add(HeaderDate, FormatDate(c.clock.Now()))

	if response.RedirectRef != "" {
		headers.Add(HeaderLocation, response.RedirectRef)
	}

	for _, setting := range response.CookieSettings {
		value, err := FormatCookieSetting(setting, c.clock.Now())
		if err != nil {
			// One bad cookie never fails the whole response.
			c.logger.Warn("unable to format a cookie setting",
				"cookie", setting.Name, "error", err)
			continue
		}
		headers.Add(HeaderSetCookie, value)
	}

	if response.Challenge != nil {
		if value, err := FormatChallengeRequest(response.Challenge); err != nil {
			c.logger.Warn("unable to format the WWW-Authenticate header", "error", err)
		} else {
			headers.Add(HeaderWWWAuthenticate, value)
		}
	}

	if len(response.AllowedMethods) > 0 {
		headers.Add(HeaderAllow, joinMethods(response.AllowedMethods))
	}

	// Entity length and transfer coding are the transport's concern.
	if response.Entity != nil {
		if response.Entity.MediaType != "" {
			headers.Add(HeaderContentType, string(response.Entity.MediaType))
		}
		if response.Entity.Encoding != "" {
			headers.Add(HeaderContentEncoding, string(response.Entity.Encoding))
		}
		if response.Entity.Language != "" {
			headers.Add(HeaderContentLanguage, string(response.Entity.Language))
		}
	}

	c.addExtensionHeaders(headers, response.Attributes)
}

// addExtensionHeaders applies the same closed-set rejection as the client
// converter: an extension entry never overrides a protocol-managed header.
func (c *ServerConverter) addExtensionHeaders(headers *Headers, attributes map[string]any) {
	extra, ok := attributes[call.AttributeHeaders].(Headers)
	if !ok {
		return
	}

	for _, header := range extra {
		if IsStandardName(header.Name) {
			c.logger.Warn("addition of a standard header is not allowed",
				"header", header.Name)
			continue
		}

		headers.Add(header.Name, header.Value)
	}
}

func splitAuthority(authority string) (host string, port *uint16, _ error) {
	name, raw, found := strings.Cut(authority, ":")
	if !found {
		return authority, nil, nil
	}

	p64, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return "", nil, errors.Wrapf(err, "invalid port %q", raw)
	}

	p := uint16(p64)
	return name, &p, nil
}

func splitTags(value string) []call.Tag {
	tokens := tokenizeList(value)

	tags := make([]call.Tag, 0, len(tokens))
	for _, token := range tokens {
		tags = append(tags, call.Tag(token))
	}
	return tags
}

// joinMethods renders an Allow header value. Methods are sorted so the
// serialization is deterministic.
func joinMethods(methods call.MethodSet) string {
	tokens := make([]string, 0, len(methods))
	for m := range methods {
		tokens = append(tokens, string(m))
	}
	sort.Strings(tokens)

	return strings.Join(tokens, ", ")
}
