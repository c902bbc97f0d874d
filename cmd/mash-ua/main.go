// Command mash-ua is a client for multi-server address spaces that
// addresses nodes by browse path instead of node identifier.
//
// It loads an address space from YAML, serves it in memory, and runs
// resolution, Read, Write, Call and Browse requests against it through the
// same client a network deployment would use.
//
// Usage:
//
//	mash-ua [flags] [command args...]
//
// Flags:
//
//	-space string             Address space file (YAML)
//	-config string            Configuration file path (YAML)
//	-log-level string         Log level: debug, info, warn, error (default "info")
//	-protocol-log string      File path for protocol event logging (CBOR format)
//	-interactive              Enable interactive command mode
//	-cache-size int           Resolution cache bound (0 = unbounded)
//	-strict                   Fail the whole batch on a malformed absolute address
//	-max-passes int           Maximum translation passes per resolution (default 32)
//	-max-browse-rounds int    Maximum automatic BrowseNext rounds (default 10)
//	-max-ops int              Maximum targets per service call (0 = unlimited)
//	-max-refs int             References per browse page (0 = unlimited)
//
// Examples:
//
//	# Read one value
//	mash-ua -space plant.yaml read "i=85@urn:plant /2:Plant/2:Boiler/2:Temperature"
//
//	# Browse with small pages and log every resolution step
//	mash-ua -space plant.yaml -max-refs 2 -log-level debug browse "i=85@urn:plant /2:Plant"
//
//	# Interactive session with a protocol log for mash-log
//	mash-ua -config mash-ua.yaml -interactive -protocol-log client.mlog
//
// Commands are the same in both modes; type "help" in interactive mode for
// the list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mash-protocol/mash-ua/cmd/mash-ua/interactive"
	"github.com/mash-protocol/mash-ua/pkg/addrspace"
	mashlog "github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/service"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func main() {
	cfg, err := resolveConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.SpaceFile == "" {
		fmt.Fprintln(os.Stderr, "Error: address space file is required (-space)")
		flag.Usage()
		os.Exit(1)
	}
	if !cfg.Interactive && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a command or -interactive is required")
		flag.Usage()
		os.Exit(1)
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal is created first so that log output goes through
	// readline instead of interfering with the prompt.
	var (
		shell *interactive.Shell
		out   io.Writer = os.Stdout
		logw  io.Writer = os.Stderr
	)
	if cfg.Interactive {
		shell, err = interactive.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logw = shell.Stdout()
	} else {
		shell = interactive.New(out)
	}
	logger := slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: level}))

	space, err := addrspace.Load(cfg.SpaceFile, cfg.spaceConfig(logger))
	if err != nil {
		logger.Error("failed to load address space", "error", err)
		os.Exit(1)
	}
	registerMethods(space)
	logger.Info("address space loaded", "file", cfg.SpaceFile, "servers", strings.Join(space.Servers(), ","))

	// Set up protocol logging if requested
	var protocolLogger *mashlog.FileLogger
	if cfg.ProtocolLog != "" {
		protocolLogger, err = mashlog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			logger.Error("failed to create protocol logger", "error", err)
			os.Exit(1)
		}
		logger.Info("protocol logging", "file", cfg.ProtocolLog)
	}

	clientConfig := cfg.clientConfig(logger)
	// Only add the file logger when non-nil to avoid typed-nil interface issue.
	var sinks []mashlog.Logger
	if protocolLogger != nil {
		sinks = append(sinks, protocolLogger)
	}
	if level <= slog.LevelDebug {
		sinks = append(sinks, mashlog.NewSlogAdapter(logger).WithLevel(slog.LevelDebug))
	}
	if len(sinks) > 0 {
		clientConfig.ProtocolLogger = mashlog.NewMultiLogger(sinks...)
	}

	client, err := service.NewClient(space, clientConfig)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	shell.Bind(client, space)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := 0
	if cfg.Interactive {
		logger.Info("interactive mode", "client", client.ClientID())
		go shell.Run(ctx, cancel)
		<-ctx.Done()
	} else if err := shell.Execute(ctx, strings.Join(flag.Args(), " ")); err != nil && !errors.Is(err, interactive.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}
	cancel()

	if protocolLogger != nil {
		if err := protocolLogger.Close(); err != nil {
			logger.Warn("failed to close protocol log", "error", err)
		}
		logger.Debug("protocol log closed", "events", protocolLogger.Written())
	}
	os.Exit(code)
}

// registerMethods installs the method implementations that address space
// files can refer to by name.
func registerMethods(space *addrspace.Space) {
	// echo returns its input arguments.
	space.RegisterMethod("echo", func(_ context.Context, _ ua.NodeID, args []any) ([]any, error) {
		return args, nil
	})
	// reset takes no arguments and reports the object it was called on.
	space.RegisterMethod("reset", func(_ context.Context, object ua.NodeID, args []any) ([]any, error) {
		if len(args) != 0 {
			return nil, ua.NewStatusError(ua.StatusBadInvalidArgument, "reset takes no arguments")
		}
		return []any{object.String()}, nil
	})
}
