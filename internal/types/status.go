package types

// Status is a type for the lifecycle status of an externally managed record.
// The datastore is edited by hand, so only the active sentinel is trusted;
// anything else means the record is out of scope for billing.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// LogLevel controls zap logger verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
