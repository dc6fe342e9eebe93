package call

// ClientInfo describes the caller: its agent string and negotiation
// preferences.
type ClientInfo struct {
	Agent   string
	Address string

	Accept ClientPreferences
}

// ServerInfo describes the origin side of an exchange. Name and Port feed
// the Host request header; Address and Agent are filled from the response.
type ServerInfo struct {
	Name string
	// Port is nil when default-port semantics apply at the transport level.
	Port *uint16

	Address string
	Agent   string
}
