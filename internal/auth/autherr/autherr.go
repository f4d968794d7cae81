// Package autherr is the error taxonomy shared by the auth services and the
// HTTP layer. Every failure a caller can observe carries exactly one Kind,
// and the HTTP layer translates kinds to responses in a single switch.
package autherr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers. The zero value is KindInternal.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidRequest
	KindMissingToken
	KindInvalidToken
	KindExpiredToken
	KindUnauthorized
	KindForbidden
	KindUnsupportedProvider
	KindMalformedProfile
	KindProviderFailure
)

// Stable wire codes. Clients switch on these, so never rename one.
const (
	CodeInternal            = "server_error"
	CodeInvalidRequest      = "invalid_request"
	CodeMissingToken        = "missing_token"
	CodeInvalidToken        = "invalid_token"
	CodeExpiredToken        = "expired_token"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeUnsupportedProvider = "unsupported_provider"
	CodeMalformedProfile    = "malformed_profile"
	CodeProviderFailure     = "provider_error"
)

func (k Kind) String() string { return k.Code() }

// Code is the stable machine readable code for k.
func (k Kind) Code() string {
	switch k {
	case KindInvalidRequest:
		return CodeInvalidRequest
	case KindMissingToken:
		return CodeMissingToken
	case KindInvalidToken:
		return CodeInvalidToken
	case KindExpiredToken:
		return CodeExpiredToken
	case KindUnauthorized:
		return CodeUnauthorized
	case KindForbidden:
		return CodeForbidden
	case KindUnsupportedProvider:
		return CodeUnsupportedProvider
	case KindMalformedProfile:
		return CodeMalformedProfile
	case KindProviderFailure:
		return CodeProviderFailure
	default:
		return CodeInternal
	}
}

// Status is the HTTP status the kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindInvalidRequest, KindMissingToken, KindUnsupportedProvider:
		return http.StatusBadRequest
	case KindInvalidToken, KindExpiredToken, KindUnauthorized, KindMalformedProfile:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindProviderFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message is the default client facing message for k.
func (k Kind) Message() string {
	switch k {
	case KindInvalidRequest:
		return "the request is malformed or missing required parameters"
	case KindMissingToken:
		return "no access token was presented"
	case KindInvalidToken:
		return "the token is malformed or its signature is invalid"
	case KindExpiredToken:
		return "the token has expired"
	case KindUnauthorized:
		return "authentication is required"
	case KindForbidden:
		return "you do not have permission to perform this action"
	case KindUnsupportedProvider:
		return "the oauth2 provider is not supported"
	case KindMalformedProfile:
		return "the oauth2 provider returned an incomplete profile"
	case KindProviderFailure:
		return "the oauth2 provider could not be reached"
	default:
		return "internal server error"
	}
}

// Error is a classified failure. Cause is logged but never shown to clients.
type Error struct {
	Kind Kind

	// Op names the operation that failed, e.g. "authenticator.reissue".
	Op string

	// Reason keeps the finer kind when a failure was folded into
	// KindUnauthorized, so logs can still tell expired from forged.
	Reason Kind

	// Detail overrides Kind.Message in responses when set.
	Detail string

	Cause error
}

func (e *Error) Error() string {
	msg := e.Kind.Code()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the cause so storage errors stay inspectable in logs and
// tests.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrUnauthorized)
// works regardless of Op, Detail or Cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Description is the client facing message.
func (e *Error) Description() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Kind == KindUnauthorized && e.Reason != KindInternal && e.Reason != KindUnauthorized {
		return e.Reason.Message()
	}
	return e.Kind.Message()
}

// Sentinels for errors.Is checks.
var (
	ErrInternal            = &Error{Kind: KindInternal}
	ErrInvalidRequest      = &Error{Kind: KindInvalidRequest}
	ErrMissingToken        = &Error{Kind: KindMissingToken}
	ErrInvalidToken        = &Error{Kind: KindInvalidToken}
	ErrExpiredToken        = &Error{Kind: KindExpiredToken}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized}
	ErrForbidden           = &Error{Kind: KindForbidden}
	ErrUnsupportedProvider = &Error{Kind: KindUnsupportedProvider}
	ErrMalformedProfile    = &Error{Kind: KindMalformedProfile}
	ErrProviderFailure     = &Error{Kind: KindProviderFailure}
)

// New builds an *Error of kind k for op.
func New(k Kind, op string, cause error) *Error {
	return &Error{Kind: k, Op: op, Cause: cause}
}

// Newf builds an *Error with a client facing detail message.
func Newf(k Kind, op, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Unauthorized folds err into KindUnauthorized, remembering err's own kind
// as the Reason. The folded kind is dropped from the chain so errors.Is only
// ever sees the unauthorized signal. An err that is already unauthorized is
// returned as is.
func Unauthorized(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindUnauthorized {
			return e
		}
		return &Error{Kind: KindUnauthorized, Op: op, Reason: e.Kind, Cause: e.Cause}
	}
	return &Error{Kind: KindUnauthorized, Op: op, Cause: err}
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ReasonOf returns the folded reason of an unauthorized error, or its kind.
func ReasonOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return KindInternal
	}
	if e.Kind == KindUnauthorized && e.Reason != KindInternal {
		return e.Reason
	}
	return e.Kind
}
