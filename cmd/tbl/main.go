package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/salmonumbrella/tbl-cli/internal/cmd"
	"github.com/salmonumbrella/tbl-cli/internal/debug"
	"github.com/salmonumbrella/tbl-cli/internal/update"
)

// Version information set via ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	app := cmd.NewApp()
	app.Version = Version
	app.Commit = Commit
	app.BuildTime = BuildTime
	err := app.Execute(ctx, os.Args[1:])

	// Check for updates after command execution
	// Only do this for interactive humans, otherwise it pollutes agent output streams.
	if err == nil && os.Getenv("TBL_NO_UPDATE_CHECK") == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		var opts []update.Option
		if app.Debug {
			client := &http.Client{Transport: debug.NewDebugTransport(nil, os.Stderr)}
			opts = append(opts, update.WithHTTPClient(client))
		}
		if msg := update.Check(ctx, Version, opts...); msg != "" {
			fmt.Fprintln(os.Stderr, "\n"+msg)
		}
	}

	if err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
