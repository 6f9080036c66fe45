// ABOUTME: Typed error kinds shared by the store, codec, and dispatcher.
// ABOUTME: Callers match kinds with errors.Is and still reach the underlying cause.

package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("io failure")
	ErrDecode          = errors.New("decode failure")
	ErrNetwork         = errors.New("network failure")
	ErrNotFound        = errors.New("not found")
)

// Error carries a kind plus enough context (operation, path, cause) for a
// shell to render a useful message.
type Error struct {
	Kind error
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.Error()
	}
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	default:
		return msg
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func InvalidArgument(op, msg string) *Error {
	return &Error{Kind: ErrInvalidArgument, Op: op, Msg: msg}
}

func IO(op, path string, err error) *Error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

func Decode(path string, err error) *Error {
	return &Error{Kind: ErrDecode, Op: "decode", Path: path, Err: err}
}

func Network(op, addr string, err error) *Error {
	return &Error{Kind: ErrNetwork, Op: op, Path: addr, Err: err}
}

func NotFound(resource, id string) *Error {
	return &Error{
		Kind: ErrNotFound,
		Msg:  fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// Is reports whether err carries the given kind. It is a thin convenience
// over errors.Is for shells that switch on kinds.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}
