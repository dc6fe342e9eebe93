package wire

import (
	"log/slog"
	"strconv"
	"strings"

	"uniform-http/call"
	"uniform-http/call/status"
)

// LibraryAgent identifies this library when the caller supplies no agent
// string of its own.
const LibraryAgent = "uniform-http/0.1"

// ClientCall is the transport-facing side of one outbound exchange. The
// converter appends request headers, triggers the send, and reads response
// headers back; the connector owns the call's lifecycle and must not reuse
// it across exchanges.
//
// Entity metadata on the response side (Content-Type and friends) is the
// connector's job: ResponseEntity returns a representation with its facets
// already filled from the wire.
type ClientCall interface {
	RequestHeaders() *Headers
	ResponseHeaders() Headers

	// SendRequest streams the request entity (nil when absent) and blocks
	// until the response status line is read.
	SendRequest(entity *call.Representation) (status.Status, error)

	ResponseEntity() *call.Representation

	// ServerAddress is the transport-observed peer address.
	ServerAddress() string
}

// ClientCallFactory creates a wire call bound to a request's target.
// Implemented by each client connector.
type ClientCallFactory interface {
	Create(request *call.Request) ClientCall
}

// ClientConverter translates uniform calls into client wire calls and back.
// It is stateless; one instance serves any number of concurrent calls.
type ClientConverter struct {
	logger *slog.Logger
}

func NewClientConverter(logger *slog.Logger) *ClientConverter {
	return &ClientConverter{logger: logger}
}

// ToWire creates the outbound wire call and populates its request headers.
func (c *ClientConverter) ToWire(
	factory ClientCallFactory, request *call.Request, response *call.Response,
) ClientCall {
	hc := factory.Create(request)

	c.addRequestHeaders(hc, request, response)

	return hc
}

// Commit sends the request, captures the server address, reads the response
// headers back into the uniform response and attaches the response entity.
// Failures are logged, never propagated: the response is left however far
// it got, and callers must judge it by its status and entity.
func (c *ClientConverter) Commit(
	hc ClientCall, request *call.Request, response *call.Response,
) {
	var entity *call.Representation
	if request.EntityAvailable() {
		entity = request.Entity
	}

	st, err := hc.SendRequest(entity)
	if err != nil {
		c.logger.Info("error intercepted while sending request", "error", err)
		return
	}
	response.Status = st

	response.Server.Address = hc.ServerAddress()

	c.ReadResponseHeaders(hc, response)

	response.Entity = hc.ResponseEntity()
}

// addRequestHeaders assembles the wire request headers in a fixed order.
func (c *ClientConverter) addRequestHeaders(
	hc ClientCall, request *call.Request, response *call.Response,
) {
	headers := hc.RequestHeaders()

	// The host name and port may differ from the target reference, so they
	// are taken from the server info.
	if response.Server.Name != "" {
		host := response.Server.Name
		if response.Server.Port != nil {
			host += ":" + strconv.FormatUint(uint64(*response.Server.Port), 10)
		}
		headers.Add(HeaderHost, host)
	}

	if request.Client.Agent != "" {
		headers.Add(HeaderUserAgent, request.Client.Agent)
	} else {
		headers.Add(HeaderUserAgent, LibraryAgent)
	}

	c.addConditionHeaders(headers, &request.Conditions)

	if len(request.Cookies) > 0 {
		headers.Add(HeaderCookie, FormatCookies(request.Cookies))
	}

	if request.ReferrerRef != "" {
		headers.Add(HeaderReferrer, request.ReferrerRef)
	}

	c.addPreferenceHeaders(headers, &request.Client.Accept)

	if request.Challenge != nil {
		if value, err := FormatChallengeResponse(request.Challenge); err != nil {
			c.logger.Warn("unable to format the Authorization header", "error", err)
		} else {
			headers.Add(HeaderAuthorization, value)
		}
	}

	// Entity length and transfer coding are the transport's concern.
	if request.Entity != nil {
		if request.Entity.MediaType != "" {
			headers.Add(HeaderContentType, string(request.Entity.MediaType))
		}
		if request.Entity.Encoding != "" {
			headers.Add(HeaderContentEncoding, string(request.Entity.Encoding))
		}
		if request.Entity.Language != "" {
			headers.Add(HeaderContentLanguage, string(request.Entity.Language))
		}
	}

	c.addExtensionHeaders(headers, request.Attributes)
}

func (c *ClientConverter) addConditionHeaders(headers *Headers, cond *call.Conditions) {
	if len(cond.Match) > 0 {
		headers.Add(HeaderIfMatch, joinTags(cond.Match))
	}

	if cond.ModifiedSince != nil {
		headers.Add(HeaderIfModifiedSince, FormatDate(*cond.ModifiedSince))
	}

	if len(cond.NoneMatch) > 0 {
		headers.Add(HeaderIfNoneMatch, joinTags(cond.NoneMatch))
	}

	if cond.UnmodifiedSince != nil {
		headers.Add(HeaderIfUnmodifiedSince, FormatDate(*cond.UnmodifiedSince))
	}
}

func (c *ClientConverter) addPreferenceHeaders(headers *Headers, accept *call.ClientPreferences) {
	if len(accept.MediaTypes) > 0 {
		if value, err := FormatPreferences(accept.MediaTypes); err != nil {
			c.logger.Warn("unable to format the Accept header", "error", err)
		} else {
			headers.Add(HeaderAccept, value)
		}
	} else {
		// No preference means anything goes.
		headers.Add(HeaderAccept, string(call.MediaTypeAll))
	}

	if len(accept.CharacterSets) > 0 {
		if value, err := FormatPreferences(accept.CharacterSets); err != nil {
			c.logger.Warn("unable to format the Accept-Charset header", "error", err)
		} else {
			headers.Add(HeaderAcceptCharset, value)
		}
	}

	if len(accept.Encodings) > 0 {
		if value, err := FormatPreferences(accept.Encodings); err != nil {
			c.logger.Warn("unable to format the Accept-Encoding header", "error", err)
		} else {
			headers.Add(HeaderAcceptEncoding, value)
		}
	}

	if len(accept.Languages) > 0 {
		if value, err := FormatPreferences(accept.Languages); err != nil {
			c.logger.Warn("unable to format the Accept-Language header", "error", err)
		} else {
			headers.Add(HeaderAcceptLanguage, value)
		}
	}
}

// addExtensionHeaders merges the caller-supplied header bag last. Names
// matching the closed standard set are dropped: callers can never override
// a protocol-managed header through the extension path.
func (c *ClientConverter) addExtensionHeaders(headers *Headers, attributes map[string]any) {
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

// ReadResponseHeaders stores the full raw header list into the response's
// attribute bag, then interprets the headers it knows. A failure of the
// whole pass degrades the response to a connector-internal error status;
// it is never silently dropped.
func (c *ClientConverter) ReadResponseHeaders(hc ClientCall, response *call.Response) {
	headers := hc.ResponseHeaders()

	// Nothing is lost even when not specially interpreted.
	response.SetAttribute(call.AttributeHeaders, headers)

	if err := c.interpretResponseHeaders(headers, response); err != nil {
		c.logger.Debug("error while processing the response headers", "error", err)
		response.Status = status.ConnectorErrorInternal.WithReason(
			"unable to process the response: " + err.Error())
	}
}

func (c *ClientConverter) interpretResponseHeaders(headers Headers, response *call.Response) error {
	for _, header := range headers {
		switch {
		case strings.EqualFold(header.Name, HeaderLocation):
			response.RedirectRef = header.Value

		case strings.EqualFold(header.Name, HeaderSetCookie),
			strings.EqualFold(header.Name, HeaderSetCookie2):
			setting, err := ParseCookieSetting(header.Value)
			if err != nil {
				// One bad cookie never fails the whole response.
				c.logger.Warn("error during cookie setting parsing",
					"header", header.Value, "error", err)
				continue
			}
			response.CookieSettings = append(response.CookieSettings, setting)

		case strings.EqualFold(header.Name, HeaderWWWAuthenticate):
			challenge, err := ParseChallengeRequest(header.Value)
			if err != nil {
				return err
			}
			response.Challenge = challenge

		case strings.EqualFold(header.Name, HeaderServer):
			response.Server.Agent = header.Value

		case strings.EqualFold(header.Name, HeaderAllow):
			if response.AllowedMethods == nil {
				response.AllowedMethods = call.NewMethodSet()
			}
			for _, token := range tokenizeList(header.Value) {
				response.AllowedMethods.Add(call.MethodOf(token))
			}
		}
	}

	return nil
}

func joinTags(tags []call.Tag) string {
	b := strings.Builder{}
	for i, tag := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(tag))
	}
	return b.String()
}

// tokenizeList splits a list-valued header on commas and whitespace.
func tokenizeList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ' ', '\t':
			return true
		}
		return false
	})
}
