package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	templated "github.com/goliatone/go-templated"
	"github.com/goliatone/go-templated/internal/server"
)

// ServeCommand returns the CLI command for starting the demo server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve demo forms with templated fields",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (overrides server.addr)",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	s, err := setup(c)
	if err != nil {
		return err
	}

	addr := s.cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	srv, err := server.NewServer(addr, s.app,
		server.WithLogger(s.logger),
		server.WithRuntimeAssets(templated.RuntimeAssetsFS()),
		server.WithStylesheets(templated.StylesheetFS()),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(backgroundContext(c), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

