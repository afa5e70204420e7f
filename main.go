package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/Caden-Ellis77/tcp-client-v1/client"
	"github.com/Caden-Ellis77/tcp-client-v1/util"
)

func logHandler(w io.Writer) client.LogHandler {
	l := log.New(w, "", 0)
	return func(e client.LogEntry) {
		var sb strings.Builder
		sb.WriteString(strings.ToUpper(client.LogLevelToString(e.Level)))
		sb.WriteString(" ")
		sb.WriteString(e.Message)
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
		}
		l.Println(sb.String())
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := client.ParseArgs(args)
	if err != nil {
		if !errors.Is(err, client.ErrHelp) {
			client.NewLogger(client.LogLevelWarn, logHandler(stderr)).Log(client.NewLogEntry(client.LogLevelError, err.Error()))
		}
		client.PrintUsage(stderr)
		return 1
	}

	level := client.LogLevelWarn
	if cfg.Verbose {
		level = client.LogLevelDebug
	}
	logger := client.NewLogger(level, logHandler(stderr))
	logger.Log(client.NewLogEntry(client.LogLevelDebug, "configured", map[string]any{
		"host":    cfg.Host,
		"port":    cfg.Port,
		"action":  string(cfg.Action),
		"message": cfg.Message,
	}))

	sess := client.NewSession(cfg, util.MaxReceiveSize, logger)
	if err := sess.Run(stdout); err != nil {
		logger.Log(client.NewLogEntry(client.LogLevelError, err.Error(), map[string]any{"state": sess.State().String()}))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
