package client

import "fmt"

// ErrorKind distinguishes the failure causes the dashboard and its tests need
// to tell apart.
type ErrorKind string

const (
	// KindNetwork is a transport-level failure: the engine could not be
	// reached at all.
	KindNetwork ErrorKind = "network"
	// KindStatus is a non-success HTTP response from the engine.
	KindStatus ErrorKind = "status"
	// KindDecode covers malformed JSON and payloads that fail structural
	// validation.
	KindDecode ErrorKind = "decode"
)

// EngineError is the typed error returned by EngineClient for any failed run.
type EngineError struct {
	Kind   ErrorKind
	Status int // HTTP status code, set for KindStatus only
	Msg    string
	Err    error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *EngineError) Unwrap() error { return e.Err }
