package client

import (
	"errors"
	"fmt"

	"github.com/Caden-Ellis77/tcp-client-v1/util"
)

// Kind classifies a failure by the phase of the run it happened in.
type Kind int

// Known error kinds.
const (
	KindUnknown Kind = iota
	KindArgument
	KindResolution
	KindSocketCreation
	KindConnect
	KindSend
	KindReceive
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument error"
	case KindResolution:
		return "resolution error"
	case KindSocketCreation:
		return "socket creation error"
	case KindConnect:
		return "connect error"
	case KindSend:
		return "send error"
	case KindReceive:
		return "receive error"
	case KindClose:
		return "close error"
	default:
		return "unknown error"
	}
}

var (
	// ErrHelp is returned by ParseArgs when --help was requested.
	ErrHelp = errors.New("help requested")
	// ErrConnClosed is returned when a released connection is used.
	ErrConnClosed = errors.New("connection already closed")
)

// Error is returned by every phase of a run.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "connect 127.0.0.1:8080".
	Op  string
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if errno := util.Errno(e.Err); errno != 0 {
		msg += fmt.Sprintf(" [errno %d]", errno)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
