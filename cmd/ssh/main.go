package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/miniapp-factory/square-invasion/internal/config"
	"github.com/miniapp-factory/square-invasion/internal/draw"
	gamelog "github.com/miniapp-factory/square-invasion/internal/logging"
	loopconfig "github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/loop/client"
	"github.com/miniapp-factory/square-invasion/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	settings, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	logger, err := gamelog.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	log.Infow("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"variant", settings.Game.Variant, "seed", settings.Game.Seed)

	// One session per SSH connection, all ticked by a shared server loop
	gameServer := server.NewServer(settings.Game.EngineFactory(logger.Named("engine")), logger.Named("server"))
	ctx, cancelServer := context.WithCancel(context.Background())
	go gameServer.Run(ctx)
	log.Info("game server started")

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, log),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalw("failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Infow("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	// Notify players and wait for them to disconnect
	log.Infow("notifying connected players", "sessions", gameServer.Count())
	gameServer.Shutdown(15 * time.Second)
	cancelServer()
	log.Infow("game server stopped", "metrics", gameServer.Metrics().Snapshot())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("shutdown error", "error", err)
	}
}

// gameMiddleware runs one game client per SSH session.
func gameMiddleware(gs server.GameServer, log *zap.SugaredLogger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Infow("new game session", "user", sess.User(), "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     username(sess.User()),
			})
			if err := c.Run(); err != nil {
				log.Warnw("game error", "user", sess.User(), "error", err)
			}

			log.Infow("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// username trims an SSH user name to what the HUD can show.
func username(name string) string {
	if utf8.RuneCountInString(name) <= loopconfig.MaxUsernameLength {
		return name
	}
	return string([]rune(name)[:loopconfig.MaxUsernameLength])
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
