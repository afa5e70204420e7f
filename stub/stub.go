// Package stub is a loopback TCP peer for exercising the client. Each
// accepted connection gets one read, one handler-built reply and a close.
package stub

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Caden-Ellis77/tcp-client-v1/util"

	"golang.org/x/sys/unix"
)

// Handler builds the reply to a request. A nil reply closes the
// connection without writing.
type Handler func(req []byte) []byte

// Echo replies with the request bytes.
func Echo(req []byte) []byte {
	return append([]byte(nil), req...)
}

// Reply answers every request with the same bytes.
func Reply(b []byte) Handler {
	return func([]byte) []byte {
		return b
	}
}

// Server is a listening IPv4 loopback socket.
type Server struct {
	fd   int
	port int
}

// Listen binds 127.0.0.1 on an ephemeral port.
func Listen() (*Server, error) {
	// Create socket
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	// Set SO_REUSEADDR
	err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	if err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}

	// Bind, port 0 lets the kernel choose
	addr := &unix.SockaddrInet4{Port: 0, Addr: [4]byte{127, 0, 0, 1}}
	err = unix.Bind(fd, addr)
	if err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}

	// Listen
	err = unix.Listen(fd, unix.SOMAXCONN)
	if err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}

	sa, err := unix.Getsockname(fd)
	if err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("getsockname", err)
	}
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("unexpected socket address %T", sa)
	}
	return &Server{fd: fd, port: in4.Port}, nil
}

// Host returns the address the server is bound to.
func (s *Server) Host() string {
	return "127.0.0.1"
}

// Port returns the bound port as text.
func (s *Server) Port() string {
	return strconv.Itoa(s.port)
}

// ServeOne accepts a single connection and answers one request on it. It
// returns the request bytes it read.
func (s *Server) ServeOne(h Handler) ([]byte, error) {
	var connfd int
	var err error
	for {
		connfd, _, err = unix.Accept(s.fd)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, os.NewSyscallError("accept", err)
	}
	defer unix.Close(connfd)

	buf := make([]byte, util.MaxReceiveSize)
	n, err := util.ReadOnce(connfd, buf)
	if err != nil {
		return nil, os.NewSyscallError("read", err)
	}
	req := buf[:n]

	reply := h(req)
	if len(reply) == 0 {
		return req, nil
	}
	if err := util.WriteAll(connfd, reply); err != nil {
		return req, os.NewSyscallError("write", err)
	}
	return req, nil
}

// Serve runs ServeOne in the background and delivers its result.
func (s *Server) Serve(h Handler) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		req, err := s.ServeOne(h)
		ch <- Result{Request: req, Err: err}
	}()
	return ch
}

// Result is what a background ServeOne produced.
type Result struct {
	Request []byte
	Err     error
}

// Close stops listening. A pending Accept is woken up with an error.
func (s *Server) Close() error {
	_ = unix.Shutdown(s.fd, unix.SHUT_RDWR)
	return unix.Close(s.fd)
}
