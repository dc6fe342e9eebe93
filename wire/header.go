package wire

import "strings"

// Standard header names managed by the converters.
const (
	HeaderAccept             = "Accept"
	HeaderAcceptCharset      = "Accept-Charset"
	HeaderAcceptEncoding     = "Accept-Encoding"
	HeaderAcceptLanguage     = "Accept-Language"
	HeaderAcceptRanges       = "Accept-Ranges"
	HeaderAge                = "Age"
	HeaderAllow              = "Allow"
	HeaderAuthorization      = "Authorization"
	HeaderCacheControl       = "Cache-Control"
	HeaderConnection         = "Connection"
	HeaderContentEncoding    = "Content-Encoding"
	HeaderContentLanguage    = "Content-Language"
	HeaderContentLength      = "Content-Length"
	HeaderContentLocation    = "Content-Location"
	HeaderContentMD5         = "Content-MD5"
	HeaderContentRange       = "Content-Range"
	HeaderContentType        = "Content-Type"
	HeaderCookie             = "Cookie"
	HeaderDate               = "Date"
	HeaderETag               = "ETag"
	HeaderExpect             = "Expect"
	HeaderExpires            = "Expires"
	HeaderFrom               = "From"
	HeaderHost               = "Host"
	HeaderIfMatch            = "If-Match"
	HeaderIfModifiedSince    = "If-Modified-Since"
	HeaderIfNoneMatch        = "If-None-Match"
	HeaderIfRange            = "If-Range"
	HeaderIfUnmodifiedSince  = "If-Unmodified-Since"
	HeaderLastModified       = "Last-Modified"
	HeaderLocation           = "Location"
	HeaderMaxForwards        = "Max-Forwards"
	HeaderPragma             = "Pragma"
	HeaderProxyAuthenticate  = "Proxy-Authenticate"
	HeaderProxyAuthorization = "Proxy-Authorization"
	HeaderRange              = "Range"
	HeaderReferrer           = "Referer"
	HeaderRetryAfter         = "Retry-After"
	HeaderServer             = "Server"
	HeaderSetCookie          = "Set-Cookie"
	HeaderSetCookie2         = "Set-Cookie2"
	HeaderTrailer            = "Trailer"
	HeaderTransferEncoding   = "Transfer-Encoding"
	HeaderTransferExtension  = "TE"
	HeaderUpgrade            = "Upgrade"
	HeaderUserAgent          = "User-Agent"
	HeaderVary               = "Vary"
	HeaderVia                = "Via"
	HeaderWarning            = "Warning"
	HeaderWWWAuthenticate    = "WWW-Authenticate"
)

// standardNames is the closed set of protocol-managed header names, keyed by
// lower-case form for the case-insensitive membership check.
var standardNames = func() map[string]struct{} {
	names := []string{
		HeaderAccept, HeaderAcceptCharset, HeaderAcceptEncoding,
		HeaderAcceptLanguage, HeaderAcceptRanges, HeaderAge, HeaderAllow,
		HeaderAuthorization, HeaderCacheControl, HeaderConnection,
		HeaderContentEncoding, HeaderContentLanguage, HeaderContentLength,
		HeaderContentLocation, HeaderContentMD5, HeaderContentRange,
		HeaderContentType, HeaderCookie, HeaderDate, HeaderETag,
		HeaderExpect, HeaderExpires, HeaderFrom, HeaderHost,
		HeaderIfMatch, HeaderIfModifiedSince, HeaderIfNoneMatch,
		HeaderIfRange, HeaderIfUnmodifiedSince, HeaderLastModified,
		HeaderLocation, HeaderMaxForwards, HeaderPragma,
		HeaderProxyAuthenticate, HeaderProxyAuthorization, HeaderRange,
		HeaderReferrer, HeaderRetryAfter, HeaderServer, HeaderSetCookie,
		HeaderSetCookie2, HeaderTrailer, HeaderTransferEncoding,
		HeaderTransferExtension, HeaderUpgrade, HeaderUserAgent,
		HeaderVary, HeaderVia, HeaderWarning, HeaderWWWAuthenticate,
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}()

// IsStandardName reports whether name belongs to the closed set of headers
// the converters manage themselves. The comparison ignores case.
func IsStandardName(name string) bool {
	_, ok := standardNames[strings.ToLower(name)]
	return ok
}

// Header is one raw wire header.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header list, the shape both wire-call contracts
// expose. Lookups ignore name case; order and duplicates are preserved.
type Headers []Header

func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Get returns the first value for name, ignoring case.
func (h Headers) Get(name string) (value string, ok bool) {
	for _, header := range h {
		if strings.EqualFold(header.Name, name) {
			return header.Value, true
		}
	}
	return "", false
}

// Values returns every value for name in wire order, ignoring case.
func (h Headers) Values(name string) (values []string) {
	for _, header := range h {
		if strings.EqualFold(header.Name, name) {
			values = append(values, header.Value)
		}
	}
	return values
}
