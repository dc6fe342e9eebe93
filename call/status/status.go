package status

type Status struct {
	Code         uint
	ReasonPhrase string
}

// Successful 2XX
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.3
var (
	OK        = add(Status{200, "OK"})
	Created   = add(Status{201, "Created"})
	Accepted  = add(Status{202, "Accepted"})
	NoContent = add(Status{204, "No Content"})
)

// Redirection 3xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.4
var (
	MovedPermanently  = add(Status{301, "Moved Permanently"})
	Found             = add(Status{302, "Found"})
	SeeOther          = add(Status{303, "See Other"})
	NotModified       = add(Status{304, "Not Modified"})
	TemporaryRedirect = add(Status{307, "Temporary Redirect"})
)

// Client Error 4xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.5
var (
	BadRequest           = add(Status{400, "Bad Request"})
	Unauthorized         = add(Status{401, "Unauthorized"})
	Forbidden            = add(Status{403, "Forbidden"})
	NotFound             = add(Status{404, "Not Found"})
	MethodNotAllowed     = add(Status{405, "Method Not Allowed"})
	NotAcceptable        = add(Status{406, "Not Acceptable"})
	RequestTimeout       = add(Status{408, "Request Timeout"})
	Conflict             = add(Status{409, "Conflict"})
	Gone                 = add(Status{410, "Gone"})
	LengthRequired       = add(Status{411, "Length Required"})
	PreconditionFailed   = add(Status{412, "Precondition Failed"})
	UnsupportedMediaType = add(Status{415, "Unsupported Media Type"})
)

// Server Error 5xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.6
var (
	InternalServerError = add(Status{500, "Internal Server Error"})
	NotImplemented      = add(Status{501, "Not Implemented"})
	BadGateway          = add(Status{502, "Bad Gateway"})
	ServiceUnavailable  = add(Status{503, "Service Unavailable"})
	GatewayTimeout      = add(Status{504, "Gateway Timeout"})
)

// Connector Error 1xxx. These never travel on the wire; they report failures
// inside a connector, distinct from any server-side HTTP error.
var (
	ConnectorErrorConnection    = add(Status{1000, "Connector Connection Error"})
	ConnectorErrorCommunication = add(Status{1001, "Connector Communication Error"})
	ConnectorErrorInternal      = add(Status{1002, "Connector Internal Error"})
)

// WithReason returns a copy of s carrying a more specific reason phrase.
func (s Status) WithReason(reason string) Status {
	s.ReasonPhrase = reason
	return s
}

func (s Status) IsSuccess() bool        { return 200 <= s.Code && s.Code < 300 }
func (s Status) IsClientError() bool    { return 400 <= s.Code && s.Code < 500 }
func (s Status) IsServerError() bool    { return 500 <= s.Code && s.Code < 600 }
func (s Status) IsConnectorError() bool { return 1000 <= s.Code && s.Code < 1100 }

var sm = make(map[uint]*Status)

func add(status Status) Status {
	sm[status.Code] = &status
	return status
}

func FromCode(code uint) (status Status, ok bool) {
	s, ok := sm[code]
	if !ok {
		return Status{Code: code, ReasonPhrase: ""}, false
	}

	return *s, true
}
