package wire

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"uniform-http/call"
	"uniform-http/call/status"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type fakeClientCall struct {
	reqHeaders Headers
	resHeaders Headers

	sendStatus status.Status
	sendErr    error
	sentEntity *call.Representation
	sendCalled bool

	resEntity *call.Representation
	addr      string
}

var _ ClientCall = (*fakeClientCall)(nil)

func (f *fakeClientCall) RequestHeaders() *Headers { return &f.reqHeaders }
func (f *fakeClientCall) ResponseHeaders() Headers { return f.resHeaders }

func (f *fakeClientCall) SendRequest(entity *call.Representation) (status.Status, error) {
	f.sendCalled = true
	f.sentEntity = entity
	return f.sendStatus, f.sendErr
}

func (f *fakeClientCall) ResponseEntity() *call.Representation { return f.resEntity }
func (f *fakeClientCall) ServerAddress() string                { return f.addr }

type fakeFactory struct{ call *fakeClientCall }

func (f *fakeFactory) Create(*call.Request) ClientCall { return f.call }

func testLogger() (*slog.Logger, *bytes.Buffer) {
	buf := bytes.NewBuffer(nil)
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})), buf
}

func TestToWireHeaderAssembly(t *testing.T) {
	logger, logged := testLogger()
	converter := NewClientConverter(logger)

	modified := time.Date(1994, 11, 6, 8, 49, 37, 0, time.UTC)
	unmodified := time.Date(1995, 12, 7, 9, 50, 38, 0, time.UTC)

	request := &call.Request{
		Method: call.MethodGet,
		Client: call.ClientInfo{
			Agent: "tester/1.0",
			Accept: call.ClientPreferences{
				MediaTypes: []call.Preference[call.MediaType]{
					call.Prefer[call.MediaType]("text/html"),
					{Value: "*/*", Quality: 0.1},
				},
				CharacterSets: []call.Preference[call.CharacterSet]{
					call.Prefer[call.CharacterSet]("utf-8"),
				},
				Encodings: []call.Preference[call.Encoding]{
					{Value: "gzip", Quality: 0.5},
				},
				Languages: []call.Preference[call.Language]{
					call.Prefer[call.Language]("en"),
				},
			},
		},
		Conditions: call.Conditions{
			Match:           []call.Tag{"t1", "t2"},
			NoneMatch:       []call.Tag{"t3"},
			ModifiedSince:   &modified,
			UnmodifiedSince: &unmodified,
		},
		Cookies: []call.Cookie{
			{Name: "sid", Value: "abc"},
			{Name: "lang", Value: "en"},
		},
		ReferrerRef: "http://ref.example/",
		Challenge: &call.ChallengeResponse{
			Scheme:     call.SchemeBasic,
			Identifier: "aladdin",
			Secret:     "opensesame",
		},
		Entity: &call.Representation{
			MediaType: "text/plain",
			Encoding:  "gzip",
			Language:  "en",
			Content:   io.NopCloser(strings.NewReader("body")),
		},
		Attributes: map[string]any{
			call.AttributeHeaders: Headers{
				{Name: "X-Trace-Id", Value: "ok"},
				{Name: "content-type", Value: "evil/override"},
			},
		},
	}

	port := uint16(8080)
	response := call.NewResponse()
	response.Server.Name = "example.com"
	response.Server.Port = &port

	fake := &fakeClientCall{}
	hc := converter.ToWire(&fakeFactory{call: fake}, request, response)
	require.Same(t, fake, hc)

	assert.Equal(t, Headers{
		{Name: "Host", Value: "example.com:8080"},
		{Name: "User-Agent", Value: "tester/1.0"},
		{Name: "If-Match", Value: "t1, t2"},
		{Name: "If-Modified-Since", Value: "Sun, 06 Nov 1994 08:49:37 GMT"},
		{Name: "If-None-Match", Value: "t3"},
		{Name: "If-Unmodified-Since", Value: "Thu, 07 Dec 1995 09:50:38 GMT"},
		{Name: "Cookie", Value: "sid=abc; lang=en"},
		{Name: "Referer", Value: "http://ref.example/"},
		{Name: "Accept", Value: "text/html, */*;q=0.1"},
		{Name: "Accept-Charset", Value: "utf-8"},
		{Name: "Accept-Encoding", Value: "gzip;q=0.5"},
		{Name: "Accept-Language", Value: "en"},
		{Name: "Authorization", Value: "Basic YWxhZGRpbjpvcGVuc2VzYW1l"},
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "Content-Encoding", Value: "gzip"},
		{Name: "Content-Language", Value: "en"},
		{Name: "X-Trace-Id", Value: "ok"},
	}, fake.reqHeaders)

	// The rejected standard-name override is observable in the logs.
	assert.Contains(t, logged.String(), "not allowed")
	assert.Contains(t, logged.String(), "content-type")
}

func TestToWireDefaults(t *testing.T) {
	logger, _ := testLogger()
	converter := NewClientConverter(logger)

	fake := &fakeClientCall{}
	converter.ToWire(&fakeFactory{call: fake}, &call.Request{}, call.NewResponse())

	// No server name known: no Host header at all.
	_, ok := fake.reqHeaders.Get(HeaderHost)
	assert.False(t, ok)

	// No caller agent: library identification.
	agent, ok := fake.reqHeaders.Get(HeaderUserAgent)
	assert.True(t, ok)
	assert.Equal(t, LibraryAgent, agent)

	// No media-type preference: wildcard, not omission.
	accept, ok := fake.reqHeaders.Get(HeaderAccept)
	assert.True(t, ok)
	assert.Equal(t, "*/*", accept)

	// Other preference headers are omitted when empty.
	_, ok = fake.reqHeaders.Get(HeaderAcceptCharset)
	assert.False(t, ok)
}

func TestToWireMalformedPreference(t *testing.T) {
	logger, logged := testLogger()
	converter := NewClientConverter(logger)

	request := &call.Request{
		Client: call.ClientInfo{
			Accept: call.ClientPreferences{
				MediaTypes: []call.Preference[call.MediaType]{
					call.Prefer[call.MediaType]("bad media,type"),
				},
				Languages: []call.Preference[call.Language]{
					call.Prefer[call.Language]("en"),
				},
			},
		},
	}

	fake := &fakeClientCall{}
	converter.ToWire(&fakeFactory{call: fake}, request, call.NewResponse())

	// The one broken header is skipped, the rest continue.
	_, ok := fake.reqHeaders.Get(HeaderAccept)
	assert.False(t, ok)

	lang, ok := fake.reqHeaders.Get(HeaderAcceptLanguage)
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	assert.Contains(t, logged.String(), "unable to format the Accept header")
}

func TestReadResponseHeaders(t *testing.T) {
	logger, logged := testLogger()
	converter := NewClientConverter(logger)

	fake := &fakeClientCall{
		resHeaders: Headers{
			{Name: "location", Value: "http://example.com/next"},
			{Name: "Set-Cookie", Value: "sid=abc; Path=/"},
			{Name: "Set-Cookie", Value: "===broken==="},
			{Name: "WWW-Authenticate", Value: `Basic realm="WallyWorld"`},
			{Name: "server", Value: "origin/2.0"},
			{Name: "Allow", Value: "GET, POST"},
			{Name: "X-Extra", Value: "kept"},
		},
	}

	response := call.NewResponse()
	converter.ReadResponseHeaders(fake, response)

	assert.Equal(t, "http://example.com/next", response.RedirectRef)
	assert.Equal(t, "origin/2.0", response.Server.Agent)

	// Exactly one cookie parsed, the malformed one only warned about.
	require.Len(t, response.CookieSettings, 1)
	assert.Equal(t, "sid", response.CookieSettings[0].Name)
	assert.Equal(t, "/", response.CookieSettings[0].Path)
	assert.Contains(t, logged.String(), "cookie setting parsing")

	require.NotNil(t, response.Challenge)
	assert.Equal(t, call.SchemeBasic, response.Challenge.Scheme)
	assert.Equal(t, "WallyWorld", response.Challenge.Realm)

	assert.Equal(t, call.NewMethodSet(call.MethodGet, call.MethodPost), response.AllowedMethods)

	// The full raw header list survives in the attribute bag.
	raw, ok := response.Attributes[call.AttributeHeaders].(Headers)
	require.True(t, ok)
	assert.Equal(t, fake.resHeaders, raw)

	// The whole pass succeeded.
	assert.Equal(t, status.OK, response.Status)
}

func TestReadResponseHeadersProcessingFailure(t *testing.T) {
	logger, _ := testLogger()
	converter := NewClientConverter(logger)

	fake := &fakeClientCall{
		resHeaders: Headers{
			{Name: "WWW-Authenticate", Value: ""},
		},
	}

	response := call.NewResponse()
	converter.ReadResponseHeaders(fake, response)

	assert.True(t, response.Status.IsConnectorError())
	assert.Equal(t, status.ConnectorErrorInternal.Code, response.Status.Code)
	assert.Contains(t, response.Status.ReasonPhrase, "unable to process the response")

	// The raw headers were stored before interpretation failed.
	_, ok := response.Attributes[call.AttributeHeaders]
	assert.True(t, ok)
}

type ClientConverterCommitSuite struct {
	suite.Suite

	converter *ClientConverter
	logged    *bytes.Buffer
}

func TestClientConverterCommitSuite(t *testing.T) {
	suite.Run(t, new(ClientConverterCommitSuite))
}

func (s *ClientConverterCommitSuite) SetupTest() {
	logger, logged := testLogger()
	s.converter = NewClientConverter(logger)
	s.logged = logged
}

func (s *ClientConverterCommitSuite) TestCommit() {
	defer goleak.VerifyNone(s.T())

	// The response entity arrives through a pipe fed by the "transport".
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("hello"))
		_ = pw.Close()
	}()

	fake := &fakeClientCall{
		sendStatus: status.OK,
		addr:       "192.0.2.10:80",
		resHeaders: Headers{{Name: "Server", Value: "origin/2.0"}},
		resEntity:  &call.Representation{MediaType: "text/plain", Size: 5, Content: pr},
	}

	request := &call.Request{
		Method: call.MethodPut,
		Entity: &call.Representation{Content: io.NopCloser(strings.NewReader("payload"))},
	}
	response := call.NewResponse()

	s.converter.Commit(fake, request, response)

	s.True(fake.sendCalled)
	s.Same(request.Entity, fake.sentEntity)

	s.Equal(status.OK, response.Status)
	s.Equal("192.0.2.10:80", response.Server.Address)
	s.Equal("origin/2.0", response.Server.Agent)

	s.Require().NotNil(response.Entity)
	body, err := io.ReadAll(response.Entity.Content)
	s.NoError(err)
	s.Equal("hello", string(body))
	s.NoError(response.Entity.Content.Close())
}

func (s *ClientConverterCommitSuite) TestCommitWithoutEntity() {
	fake := &fakeClientCall{sendStatus: status.NoContent}

	s.converter.Commit(fake, &call.Request{Method: call.MethodGet}, call.NewResponse())

	s.True(fake.sendCalled)
	s.Nil(fake.sentEntity)
}

func (s *ClientConverterCommitSuite) TestCommitSendFailure() {
	fake := &fakeClientCall{
		sendErr:    errors.New("connection refused"),
		resHeaders: Headers{{Name: "Server", Value: "never-read"}},
	}

	response := call.NewResponse()
	s.converter.Commit(fake, &call.Request{Method: call.MethodGet}, response)

	// The failure never propagates; the response is left however far it
	// got, which here is untouched.
	s.Equal(status.OK, response.Status)
	s.Empty(response.Server.Agent)
	s.Nil(response.Entity)

	s.Contains(s.logged.String(), "error intercepted while sending request")
}
