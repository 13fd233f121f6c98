// Package reposerrors defines the error handling used throughout the
// repository: a small Op/Kind/Err value, built with E, in the style of
// upspin.io/errors but stripped of the path/user fields that package
// carries for a multi-tenant filesystem. Nothing in this system names
// a requesting principal (spec: no authentication of requesters), so
// there is no equivalent field here.
package reposerrors

import (
	"bytes"
	"fmt"
	"strings"
)

// Kind classifies an error for callers that must act differently
// depending on its class (the resolver's drop-vs-negative-cache policy).
type Kind uint8

// Kinds of errors, matching the policy table in SPEC_FULL.md §7.
const (
	Other Kind = iota
	Invalid
	IO
	NotExist
	DigestMismatch
	UnknownSuite
	ParseFailure
	SocketError
	ConfigError
	Internal
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case Invalid:
		return "invalid argument"
	case IO:
		return "I/O error"
	case NotExist:
		return "does not exist"
	case DigestMismatch:
		return "digest mismatch"
	case UnknownSuite:
		return "unknown suite"
	case ParseFailure:
		return "parse failure"
	case SocketError:
		return "socket error"
	case ConfigError:
		return "configuration error"
	case Internal:
		return "internal error"
	}
	return "unknown error kind"
}

// Op identifies the operation that raised an error, usually
// "package.Function", for use in error chains.
type Op string

// Error is the error type produced by E. Any field may be unset.
type Error struct {
	Op   Op
	Kind Kind
	Err  error
}

var _ error = (*Error)(nil)

// Separator joins nested errors when printed.
var Separator = ": "

// E builds an *Error from its arguments. The type of each argument
// determines its meaning:
//
//	reposerrors.Op     the operation being performed
//	reposerrors.Kind    the class of error
//	error               the underlying error that triggered this one
//
// If Kind is unset and the wrapped error is itself an *Error, its Kind
// is promoted, mirroring upspin.io/errors.E's behavior.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			e.Op = Op(a)
		default:
			return Errorf("reposerrors.E: bad call with arg of type %T", arg)
		}
	}
	if e.Kind == Other {
		if prev, ok := e.Err.(*Error); ok {
			e.Kind = prev.Kind
		}
	}
	return e
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(string(e.Op))
	}
	if e.Kind != Other {
		pad(b, Separator)
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, Separator)
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

// Unwrap lets errors.Is/errors.As traverse into the wrapped error.
func (e *Error) Unwrap() error { return e.Err }

func pad(b *bytes.Buffer, sep string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(sep)
}

// Is reports whether err is, or wraps, an *Error of the given Kind.
func Is(kind Kind, err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	if e.Kind != Other {
		return e.Kind == kind
	}
	return Is(kind, e.Err)
}

// Str returns an error that formats as the given text, for use as the
// error-typed argument to E.
func Str(text string) error {
	return &errorString{text}
}

type errorString struct{ s string }

func (e *errorString) Error() string { return e.s }

// Errorf is equivalent to fmt.Errorf but returns a value usable as the
// error-typed argument to E, matching upspin.io/errors.Errorf.
func Errorf(format string, args ...interface{}) error {
	return &errorString{fmt.Sprintf(format, args...)}
}

// HasPrefix reports whether msg looks like an *Error whose outermost Op
// matches op; used by tests that only care which layer raised an error.
func HasPrefix(op string, err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return strings.HasPrefix(string(e.Op), op)
}
