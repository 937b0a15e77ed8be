// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"errors"
	"fmt"
)

// Kind classifies an extraction failure.
type Kind int

const (
	// KindFormat means a structural assumption was violated: a region was
	// opened but never closed, or a row heading carried no elements.
	KindFormat Kind = iota + 1

	// KindDecode means a value fell outside its closed vocabulary.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format error"
	case KindDecode:
		return "decode error"
	}
	return "unknown error"
}

var (
	// ErrFormat matches any *Error of KindFormat via errors.Is.
	ErrFormat = errors.New("format error")

	// ErrDecode matches any *Error of KindDecode via errors.Is.
	ErrDecode = errors.New("decode error")
)

// Error reports a fatal extraction failure. Where locates the failure
// (section, row or field, e.g. "middle chinese/tone[2]").
type Error struct {
	Kind   Kind
	Where  string
	Detail string
}

func (e *Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s in %s: %s", e.Kind, e.Where, e.Detail)
}

// Is lets errors.Is match the ErrFormat and ErrDecode sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFormat:
		return e.Kind == KindFormat
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Formatf builds a KindFormat error.
func Formatf(where, format string, args ...any) *Error {
	return &Error{Kind: KindFormat, Where: where, Detail: fmt.Sprintf(format, args...)}
}

// Decodef builds a KindDecode error.
func Decodef(where, format string, args ...any) *Error {
	return &Error{Kind: KindDecode, Where: where, Detail: fmt.Sprintf(format, args...)}
}

// Within prefixes the location of err with scope when err is an *Error.
// Other errors are returned unchanged.
func Within(scope string, err error) error {
	var e *Error
	if scope == "" || !errors.As(err, &e) {
		return err
	}
	where := scope
	if e.Where != "" {
		where = scope + "/" + e.Where
	}
	return &Error{Kind: e.Kind, Where: where, Detail: e.Detail}
}
