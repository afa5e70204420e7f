package client

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Caden-Ellis77/tcp-client-v1/util"
)

// EncodeRequest builds the request frame "<action> <len(message)> <message>",
// where the length counts bytes of message.
func EncodeRequest(action Action, message []byte) []byte {
	length := strconv.Itoa(len(message))
	frame := make([]byte, 0, len(action)+1+len(length)+1+len(message))
	frame = append(frame, string(action)...)
	frame = append(frame, ' ')
	frame = append(frame, length...)
	frame = append(frame, ' ')
	frame = append(frame, message...)
	return frame
}

// Send writes the request frame for action and message in a single write.
// Anything short of the full frame is reported as a KindSend error.
func (c *Conn) Send(action Action, message []byte) error {
	if c.closed {
		return newError(KindSend, "send", ErrConnClosed)
	}
	c.logger.Log(NewLogEntry(LogLevelInfo, "configuring message to be sent"))
	frame := EncodeRequest(action, message)
	if c.logger.Enabled(LogLevelDebug) {
		c.logger.Log(NewLogEntry(LogLevelDebug, "sending message", map[string]any{"frame": strconv.Quote(string(frame))}))
	}

	n, err := util.WriteOnce(c.fd, frame)
	if err != nil {
		return newError(KindSend, "send", os.NewSyscallError("send", err))
	}
	if n < len(frame) {
		return newError(KindSend, "send", fmt.Errorf("%w: sent %d of %d bytes", io.ErrShortWrite, n, len(frame)))
	}
	c.logger.Log(NewLogEntry(LogLevelDebug, "bytes sent in message", map[string]any{"bytes": n}))
	return nil
}
