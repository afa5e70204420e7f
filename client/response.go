package client

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Caden-Ellis77/tcp-client-v1/util"
)

// Buffer is a fixed-capacity receive buffer. Its length never exceeds the
// capacity it was created with.
type Buffer struct {
	buf []byte
	n   int
}

// NewBuffer allocates a Buffer holding at most capacity bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, capacity)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Len returns the number of bytes received.
func (b *Buffer) Len() int { return b.n }

// Bytes returns the received bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.buf[:b.n] }

// String returns the received bytes as text.
func (b *Buffer) String() string { return string(b.buf[:b.n]) }

// Reset discards received bytes.
func (b *Buffer) Reset() { b.n = 0 }

func (b *Buffer) fill(n int) {
	if n < 0 || n > len(b.buf) {
		panic(fmt.Sprintf("client: fill %d out of range [0,%d]", n, len(b.buf)))
	}
	b.n = n
}

// Receive performs exactly one read of at most buf.Cap() bytes. A zero-byte
// read (peer closed without data) is a KindReceive error wrapping io.EOF.
// Data beyond the capacity is left unread.
func (c *Conn) Receive(buf *Buffer) (int, error) {
	if c.closed {
		return 0, newError(KindReceive, "receive", ErrConnClosed)
	}
	if buf == nil || buf.Cap() == 0 {
		return 0, newError(KindReceive, "receive", errors.New("zero capacity buffer"))
	}
	buf.Reset()

	c.logger.Log(NewLogEntry(LogLevelInfo, "starting to receive", map[string]any{"capacity": buf.Cap()}))
	n, err := util.ReadOnce(c.fd, buf.buf)
	if err != nil {
		c.logger.Log(NewLogEntry(LogLevelDebug, "failed on recv", map[string]any{"errno": util.Errno(err)}))
		return 0, newError(KindReceive, "receive", os.NewSyscallError("recv", err))
	}
	if n == 0 {
		c.logger.Log(NewLogEntry(LogLevelDebug, "failed on recv", map[string]any{"code": 0}))
		return 0, newError(KindReceive, "receive", io.EOF)
	}
	buf.fill(n)
	c.logger.Log(NewLogEntry(LogLevelDebug, "recv succeeded", map[string]any{"bytes": n}))
	return n, nil
}
