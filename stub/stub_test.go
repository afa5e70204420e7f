package stub

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeOneEcho(t *testing.T) {
	s, err := Listen()
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.NotEqual(t, "0", s.Port())

	res := s.Serve(Echo)

	conn, err := net.Dial("tcp", net.JoinHostPort(s.Host(), s.Port()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = conn.Write([]byte("uppercase 5 hello"))
	require.NoError(t, err)

	got, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.Equal(t, "uppercase 5 hello", string(got))

	r := <-res
	require.NoError(t, r.Err)
	require.Equal(t, "uppercase 5 hello", string(r.Request))
}

func TestServeOneNoReply(t *testing.T) {
	s, err := Listen()
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	res := s.Serve(Reply(nil))

	conn, err := net.Dial("tcp", net.JoinHostPort(s.Host(), s.Port()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = conn.Write([]byte("reverse 3 abc"))
	require.NoError(t, err)

	got, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, (<-res).Err)
}

func TestCloseWakesAccept(t *testing.T) {
	s, err := Listen()
	require.NoError(t, err)

	res := s.Serve(Echo)
	require.NoError(t, s.Close())
	require.Error(t, (<-res).Err)
}
