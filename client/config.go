package client

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	// DefaultHost is the server address used without -h.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the server port used without -p.
	DefaultPort = "8080"

	maxPort = 65535
)

// Action names a text transformation performed by the server.
type Action string

const (
	ActionUppercase Action = "uppercase"
	ActionLowercase Action = "lowercase"
	ActionReverse   Action = "reverse"
	ActionTitleCase Action = "title-case"
	ActionShuffle   Action = "shuffle"
)

// Actions lists every action the server understands.
var Actions = []Action{
	ActionUppercase,
	ActionLowercase,
	ActionReverse,
	ActionTitleCase,
	ActionShuffle,
}

// ParseAction matches s against the known actions exactly.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", newError(KindArgument, "", fmt.Errorf("unrecognized action: %q", s))
}

// Config is everything a run needs. It is built once by ParseArgs and
// passed by value afterwards.
type Config struct {
	Host    string
	Port    string
	Action  Action
	Message string
	Verbose bool
}

// Address renders host and port for diagnostics.
func (c Config) Address() string {
	return c.Host + ":" + c.Port
}

type flagValues struct {
	help    *bool
	verbose *bool
	host    *string
	port    *string
}

func newFlagSet() (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("tcp_client", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	var v flagValues
	v.help = fs.Bool("help", false, "print this help and exit")
	v.verbose = fs.BoolP("verbose", "v", false, "log every phase of the exchange")
	v.host = fs.StringP("host", "h", DefaultHost, "server `HOSTNAME` or address")
	v.port = fs.StringP("port", "p", DefaultPort, "server `PORT` (0-65535)")
	return fs, v
}

// ParseArgs builds a Config from process arguments (without the program
// name). Every failure is a KindArgument *Error; --help anywhere yields one
// wrapping ErrHelp.
func ParseArgs(args []string) (Config, error) {
	for _, a := range args {
		if a == "--help" {
			return Config{}, newError(KindArgument, "", ErrHelp)
		}
	}

	fs, v := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, newError(KindArgument, "", ErrHelp)
		}
		return Config{}, newError(KindArgument, "", err)
	}
	if *v.help {
		return Config{}, newError(KindArgument, "", ErrHelp)
	}

	if fs.Changed("port") {
		if err := validatePort(*v.port); err != nil {
			return Config{}, err
		}
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return Config{}, newError(KindArgument, "", fmt.Errorf("incorrect number of arguments: want ACTION MESSAGE, got %d", len(rest)))
	}
	action, err := ParseAction(rest[0])
	if err != nil {
		return Config{}, err
	}

	return Config{
		Host:    *v.host,
		Port:    *v.port,
		Action:  action,
		Message: rest[1],
		Verbose: *v.verbose,
	}, nil
}

func validatePort(port string) error {
	if port == "" {
		return newError(KindArgument, "", errors.New("incorrect port number usage: empty port"))
	}
	for i := 0; i < len(port); i++ {
		if port[i] < '0' || port[i] > '9' {
			return newError(KindArgument, "", fmt.Errorf("incorrect port number usage: %q", port))
		}
	}
	n, err := strconv.ParseUint(port, 10, 32)
	if err != nil || n > maxPort {
		return newError(KindArgument, "", fmt.Errorf("incorrect port number usage: %s is out of range", port))
	}
	return nil
}

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	fs, _ := newFlagSet()
	_, _ = fmt.Fprintf(w, "\nUsage: tcp_client [--help] [-v] [-h HOST] [-p PORT] ACTION MESSAGE\n\n"+
		"Arguments:\n"+
		"   ACTION   Must be uppercase, lowercase, title-case,\n"+
		"            reverse, or shuffle.\n"+
		"   MESSAGE  Message to send to the server\n\n"+
		"Options:\n%s", fs.FlagUsages())
}
