// Package loop runs a single-player match in the local terminal.
package loop

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/draw"
	"github.com/miniapp-factory/square-invasion/internal/loop/client"
	"github.com/miniapp-factory/square-invasion/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Username     string
	Log          *zap.Logger
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of stdout
}

// Run hosts one session in-process and drives it from r and w until the
// player quits. The server loop stops when Run returns.
func Run(r io.Reader, w io.Writer, newEngine server.EngineFactory, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	srv := server.NewServer(newEngine, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	c := client.NewClient(srv, r, w, client.ClientOptions{
		Username:         opts.Username,
		TermSizeFunc:     opts.TermSizeFunc,
		IgnoreInactivity: true,
	})
	if err := c.Run(); err != nil {
		log.Error("client stopped", zap.Error(err))
		return err
	}
	return nil
}
