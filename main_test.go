package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caden-Ellis77/tcp-client-v1/client"
	"github.com/Caden-Ellis77/tcp-client-v1/stub"
)

func TestRunReverse(t *testing.T) {
	s, err := stub.Listen()
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	res := s.Serve(stub.Reply([]byte("cba")))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-h", s.Host(), "-p", s.Port(), "reverse", "abc"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "cba\n", stdout.String())
	require.Empty(t, stderr.String())

	r := <-res
	require.NoError(t, r.Err)
	require.Equal(t, "reverse 3 abc", string(r.Request))
}

func TestRunVerbose(t *testing.T) {
	s, err := stub.Listen()
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	s.Serve(stub.Echo)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--verbose", "--host", s.Host(), "--port", s.Port(), "uppercase", "hello"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "uppercase 5 hello\n", stdout.String())
	require.Contains(t, stderr.String(), "INFO connecting socket")
	require.Contains(t, stderr.String(), `DEBUG sending message frame="uppercase 5 hello"`)
	require.Contains(t, stderr.String(), "DEBUG bytes sent in message bytes=17")
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"bogus", "--help", "-p", "x"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "Usage: tcp_client")
	require.NotContains(t, stderr.String(), "ERROR")
}

func TestRunArgumentErrors(t *testing.T) {
	for _, args := range [][]string{
		{"Reverse", "abc"},
		{"reverse"},
		{"-p", "70000", "reverse", "abc"},
		{"-p", "80x", "reverse", "abc"},
	} {
		var stdout, stderr bytes.Buffer
		code := run(args, &stdout, &stderr)
		require.Equal(t, 1, code, args)
		require.Empty(t, stdout.String())
		require.Contains(t, stderr.String(), "ERROR "+client.KindArgument.String())
		require.Contains(t, stderr.String(), "Usage: tcp_client")
	}
}

func TestRunConnectError(t *testing.T) {
	s, err := stub.Listen()
	require.NoError(t, err)
	port := s.Port()
	require.NoError(t, s.Close())

	var stdout, stderr bytes.Buffer
	code := run([]string{"-p", port, "reverse", "abc"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "ERROR connect error")
	require.Contains(t, stderr.String(), "state=failed")
}

func TestRunReceiveError(t *testing.T) {
	s, err := stub.Listen()
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	s.Serve(stub.Reply(nil))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-p", s.Port(), "lowercase", "ABC"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "ERROR receive error")
}
