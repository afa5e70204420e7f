package util

import (
	"errors"

	"golang.org/x/sys/unix"
)

const (
	// MaxReceiveSize is the default capacity of a response buffer.
	MaxReceiveSize = 4096
)

// Errno returns the OS status code carried by err, or 0 if there is none.
func Errno(err error) int {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}

// ReadOnce performs a single read into buf, retrying only on EINTR.
func ReadOnce(fd int, buf []byte) (int, error) {
	for {
		rv, err := unix.Read(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return rv, nil
	}
}

// WriteOnce performs a single write of buf, retrying only on EINTR. The
// returned count may be short.
func WriteOnce(fd int, buf []byte) (int, error) {
	for {
		rv, err := unix.Write(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return rv, nil
	}
}

// WriteAll writes buf until it is fully flushed.
func WriteAll(fd int, buf []byte) error {
	n := len(buf)
	for n > 0 {
		rv, err := WriteOnce(fd, buf)
		if err != nil {
			return err
		}
		if rv == 0 {
			return unix.EPIPE
		}
		if rv > n {
			panic("writeAll: rv is greater than n")
		}
		n -= rv
		buf = buf[rv:]
	}
	return nil
}
