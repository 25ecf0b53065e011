package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies engine failures.
type Kind string

const (
	// KindCollectionFailed means a content or media record query failed.
	KindCollectionFailed Kind = "CollectionFailed"
	// KindStorageUnavailable means a storage call failed or timed out.
	KindStorageUnavailable Kind = "StorageUnavailable"
	// KindInvalidRequest means the caller supplied unusable input.
	KindInvalidRequest Kind = "InvalidRequest"
	// KindDerivedAssetGenerationFailed means a poster could not be generated or stored.
	KindDerivedAssetGenerationFailed Kind = "DerivedAssetGenerationFailed"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrCollectionFailed             = &Error{Kind: KindCollectionFailed}
	ErrStorageUnavailable           = &Error{Kind: KindStorageUnavailable}
	ErrInvalidRequest               = &Error{Kind: KindInvalidRequest}
	ErrDerivedAssetGenerationFailed = &Error{Kind: KindDerivedAssetGenerationFailed}
)

// Error is a classified engine error.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Source names what failed: a content kind, a folder, "remove", "media_records".
	Source string
	// Timeout is set when the underlying call hit its deadline.
	Timeout bool
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Source != "" {
		msg += ": " + e.Source
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target with a Source must match it too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Source == "" || t.Source == e.Source
}

// Retryable reports whether repeating the call may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindStorageUnavailable
}

// Message returns the underlying cause without the kind prefix.
func (e *Error) Message() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// CollectionFailed wraps a failed reference or record query.
func CollectionFailed(source string, err error) *Error {
	return &Error{Kind: KindCollectionFailed, Source: source, Timeout: isTimeout(err), Err: err}
}

// StorageUnavailable wraps a failed storage call.
func StorageUnavailable(source string, err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Source: source, Timeout: isTimeout(err), Err: err}
}

// InvalidRequest reports unusable input.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Err: fmt.Errorf(format, args...)}
}

// DerivedAssetGenerationFailed wraps a poster failure.
func DerivedAssetGenerationFailed(source string, err error) *Error {
	return &Error{Kind: KindDerivedAssetGenerationFailed, Source: source, Timeout: isTimeout(err), Err: err}
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// isTimeout matches context deadlines and transport timeouts such as a
// ResponseHeaderTimeout surfaced as a *url.Error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
