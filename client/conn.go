package client

import (
	"context"
	"net"
	"os"
	"strconv"

	"github.com/Caden-Ellis77/tcp-client-v1/util"

	"golang.org/x/sys/unix"
)

// Conn is a connected stream socket owned by a single run.
type Conn struct {
	fd     int
	peer   string
	closed bool
	logger *Logger
}

// Peer returns the address the socket is connected to.
func (c *Conn) Peer() string {
	return c.peer
}

type endpoint struct {
	family int
	sa     unix.Sockaddr
	addr   string
}

// resolve turns host and port into candidate endpoints of both address
// families, in resolver order.
func resolve(host, port string) ([]endpoint, error) {
	ctx := context.Background()
	p, err := net.DefaultResolver.LookupPort(ctx, "tcp", port)
	if err != nil {
		return nil, err
	}
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}

	out := make([]endpoint, 0, len(ips))
	for _, ip := range ips {
		addr := net.JoinHostPort(ip.String(), strconv.Itoa(p))
		if ip4 := ip.IP.To4(); ip4 != nil {
			sa := &unix.SockaddrInet4{Port: p}
			copy(sa.Addr[:], ip4)
			out = append(out, endpoint{family: unix.AF_INET, sa: sa, addr: addr})
			continue
		}
		sa := &unix.SockaddrInet6{Port: p}
		copy(sa.Addr[:], ip.IP.To16())
		if ip.Zone != "" {
			sa.ZoneId = zoneIndex(ip.Zone)
		}
		out = append(out, endpoint{family: unix.AF_INET6, sa: sa, addr: addr})
	}
	if len(out) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return out, nil
}

// zoneIndex maps an IPv6 zone, numeric or an interface name, to its index.
func zoneIndex(zone string) uint32 {
	if n, err := strconv.Atoi(zone); err == nil && n >= 0 {
		return uint32(n)
	}
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index)
	}
	return 0
}

// Connect resolves cfg.Host and cfg.Port and connects a stream socket to
// the first candidate that accepts. When every candidate fails the error of
// the last attempt is returned.
func Connect(cfg Config, logger *Logger) (*Conn, error) {
	logger.Log(NewLogEntry(LogLevelInfo, "resolving address", map[string]any{"host": cfg.Host, "port": cfg.Port}))
	endpoints, err := resolve(cfg.Host, cfg.Port)
	if err != nil {
		return nil, newError(KindResolution, "resolve "+cfg.Address(), err)
	}

	var lastErr error
	for _, ep := range endpoints {
		conn, err := dial(ep, logger)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if len(endpoints) > 1 {
			logger.Log(NewLogEntry(LogLevelWarn, "candidate failed", map[string]any{"addr": ep.addr, "error": err.Error()}))
		}
	}
	return nil, lastErr
}

func dial(ep endpoint, logger *Logger) (*Conn, error) {
	logger.Log(NewLogEntry(LogLevelInfo, "creating socket", map[string]any{"addr": ep.addr}))
	fd, err := unix.Socket(ep.family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, newError(KindSocketCreation, "socket", os.NewSyscallError("socket", err))
	}
	unix.CloseOnExec(fd)

	logger.Log(NewLogEntry(LogLevelInfo, "connecting socket", map[string]any{"addr": ep.addr}))
	if err := unix.Connect(fd, ep.sa); err != nil {
		_ = unix.Close(fd)
		return nil, newError(KindConnect, "connect "+ep.addr, os.NewSyscallError("connect", err))
	}

	logger.Log(NewLogEntry(LogLevelInfo, "connected", map[string]any{"addr": ep.addr}))
	return &Conn{fd: fd, peer: ep.addr, logger: logger}, nil
}

// Close releases the socket. Only the first call reaches the OS; later
// calls fail with ErrConnClosed.
func (c *Conn) Close() error {
	if c.closed {
		return newError(KindClose, "close", ErrConnClosed)
	}
	c.closed = true
	c.logger.Log(NewLogEntry(LogLevelInfo, "closing socket", map[string]any{"addr": c.peer}))
	if err := unix.Close(c.fd); err != nil {
		c.logger.Log(NewLogEntry(LogLevelDebug, "close failed", map[string]any{"errno": util.Errno(err)}))
		return newError(KindClose, "close", os.NewSyscallError("close", err))
	}
	return nil
}
