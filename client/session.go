package client

import (
	"fmt"
	"io"
)

// State is a step of a single request/response run.
type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateConnected
	StateRequestSent
	StateResponseReceived
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateConnected:
		return "connected"
	case StateRequestSent:
		return "request sent"
	case StateResponseReceived:
		return "response received"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session drives one exchange: connect, send, receive, print, close. It is
// not safe for concurrent use and runs at most once.
type Session struct {
	cfg    Config
	logger *Logger
	buf    *Buffer
	conn   *Conn
	state  State
}

// NewSession returns a configured session reading responses of at most
// capacity bytes.
func NewSession(cfg Config, capacity int, logger *Logger) *Session {
	return &Session{
		cfg:    cfg,
		logger: logger,
		buf:    NewBuffer(capacity),
		state:  StateConfigured,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Response returns the bytes received so far.
func (s *Session) Response() []byte {
	return s.buf.Bytes()
}

// Run performs the exchange and writes the response followed by a newline
// to out. Any error leaves the session in StateFailed; the connection, if
// one was made, is released first.
func (s *Session) Run(out io.Writer) error {
	if s.state != StateConfigured {
		return fmt.Errorf("session cannot run from state %s", s.state)
	}

	conn, err := Connect(s.cfg, s.logger)
	if err != nil {
		return s.fail(err)
	}
	s.conn = conn
	s.state = StateConnected

	if err := conn.Send(s.cfg.Action, []byte(s.cfg.Message)); err != nil {
		return s.fail(err)
	}
	s.state = StateRequestSent

	if _, err := conn.Receive(s.buf); err != nil {
		return s.fail(err)
	}
	s.state = StateResponseReceived

	if _, err := fmt.Fprintf(out, "%s\n", s.buf.Bytes()); err != nil {
		return s.fail(fmt.Errorf("print response: %w", err))
	}

	if err := conn.Close(); err != nil {
		s.state = StateFailed
		return err
	}
	s.state = StateClosed
	return nil
}

func (s *Session) fail(err error) error {
	s.state = StateFailed
	if s.conn != nil && !s.conn.closed {
		if cerr := s.conn.Close(); cerr != nil {
			s.logger.Log(NewLogEntry(LogLevelWarn, "close after failure", map[string]any{"error": cerr.Error()}))
		}
	}
	return err
}
