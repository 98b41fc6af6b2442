package probe

// The three failure classes of a check invocation. All of them are terminal
// and surface as UNKNOWN; none is ever retried or downgraded to OK.

// ConfigError marks an invalid or unresolvable invocation configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError marks a failed SNMP round trip: session open failure,
// timeout, or a protocol-level error response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport error: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DomainError marks a derivation that is undefined for the values the device
// returned, such as a used-memory percentage with zero total memory.
type DomainError struct {
	Err error
}

func (e *DomainError) Error() string { return "domain error: " + e.Err.Error() }
func (e *DomainError) Unwrap() error { return e.Err }
