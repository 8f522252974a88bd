package domain

import "errors"

var (
	// ErrUnknownYear is returned when a regime set has no tables for an assessment year
	ErrUnknownYear = errors.New("unknown assessment year")
	// ErrUnknownRegime is returned for regime names other than "old" and "new"
	ErrUnknownRegime = errors.New("unknown regime")
)

// ConfigError describes a malformed regime configuration. Configuration is
// trusted data, so these errors indicate a programming or data-entry mistake.
type ConfigError struct {
	Regime  string
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Regime != "" {
		msg = "regime " + e.Regime + ": " + msg
	}
	return "invalid regime configuration: " + msg
}
