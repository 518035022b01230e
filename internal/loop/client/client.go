// Package client renders one session to a terminal and forwards key presses
// to the server.
package client

import (
	"io"
	"time"

	"github.com/miniapp-factory/square-invasion/internal/draw"
	"github.com/miniapp-factory/square-invasion/internal/input"
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	session      *server.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	ignoreIdle   bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc     draw.TermSizeFunc
	Username         string
	IgnoreInactivity bool // Local play never warns or disconnects idle players
}

// NewClient opens a session on the given server.
func NewClient(gs server.GameServer, r io.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.GameWidth, config.GameHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		session:      gs.Open(opts.Username),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		ignoreIdle:   opts.IgnoreInactivity,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.Close(c.session.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.Screen == ScreenShutdown {
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads key presses and forwards them to the session.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 || c.ignoreIdle {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Closed || in.Has(input.KeyQuit) {
		c.state.Running = false
		return
	}
	if c.state.Screen == ScreenShutdown {
		return
	}

	snap := c.session.Snapshot()
	if snap.Phase.Terminal() && time.Since(c.state.endedAt).Seconds() < config.RestartGuardSeconds {
		return
	}
	for _, ev := range eventsFor(in.Keys, snap.Phase) {
		c.session.SendInput(ev)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.session.Events():
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventMatchEnded:
				c.state.lastResult = &matchResult{Phase: event.Phase, Hits: event.Hits}
				c.state.endedAt = time.Now()
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen follows the match phase and handles terminal resize.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	if c.state.Screen != ScreenShutdown {
		c.state.Screen = screenFor(c.session.Snapshot().Phase)
	}

	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.ForceRedraw()
	}

	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitField picks the largest render area that keeps the field's aspect
// ratio within the max render resolution, and the offsets that center it.
// One column is as wide as half a row is tall.
func fitField(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	maxWidth := max(min(termWidth, config.MaxTermWidth), 1)
	maxHeight := max(min(termHeight, config.MaxTermHeight), 1)

	renderHeight = maxHeight
	renderWidth = int(float64(renderHeight*2) * config.GameWidth / config.GameHeight)
	if renderWidth > maxWidth {
		renderWidth = maxWidth
		renderHeight = int(float64(renderWidth) * config.GameHeight / config.GameWidth / 2)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
