package extraction

import (
	"errors"
	"fmt"
)

// Failure kinds for a provider call. Only Transient failures are worth
// retrying; the others indicate a configuration, account, or payload
// problem that a retry cannot fix.
type Kind int

const (
	KindAuth Kind = iota + 1
	KindQuota
	KindTransient
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	case KindTransient:
		return "transient"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// Error is a typed provider failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction %s error: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("extraction %s error: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func NewAuthError(msg string) *Error      { return &Error{Kind: KindAuth, Msg: msg} }
func NewQuotaError(msg string) *Error     { return &Error{Kind: KindQuota, Msg: msg} }
func NewMalformedError(msg string) *Error { return &Error{Kind: KindMalformed, Msg: msg} }

func NewTransientError(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Msg: msg, Err: err}
}

// KindOf returns the failure kind of err, or 0 when err is not a provider
// failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return KindOf(err) == KindTransient
}
