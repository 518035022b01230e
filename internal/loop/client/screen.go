package client

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/miniapp-factory/square-invasion/internal/draw"
	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/loop/config"
	"github.com/miniapp-factory/square-invasion/internal/object"
)

// Sprite sizes in field coordinates.
const (
	enemySpriteSize   = 30
	ufoSpriteWidth    = 40
	ufoSpriteHeight   = 16
	shipSpriteWidth   = 30
	shipSpriteHeight  = 30
	shotSpriteWidth   = 4
	shotSpriteHeight  = 10
	blinkPeriodMillis = 600
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.session.Snapshot()
	if c.state.Screen == ScreenPlaying && !c.state.isInactive {
		c.drawField(snapshot)
	}

	c.canvas.Render(c.chunkWriter)

	// Draw border when the terminal has room around the field
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawField paints every entity of the snapshot, background first.
func (c *Client) drawField(s *engine.Snapshot) {
	cv := c.canvas

	for _, p := range s.Particles {
		ink := draw.InkPink
		if p.Kind == object.ParticleRain {
			ink = draw.Gray(p.Shade)
		}
		cv.FillRect(p.X, p.Y, p.Size, p.Size, ink)
	}

	if pu := s.PowerUp; pu != nil {
		cv.FillRect(pu.X, pu.Y, pu.Size, pu.Size, draw.InkGreen)
	}

	for _, e := range s.Enemies {
		cv.FillRect(e.X, e.Y, enemySpriteSize, enemySpriteSize, draw.InkRed)
	}

	for _, u := range s.UFOs {
		cv.DrawPolygon(saucer(u.X, u.Y), draw.InkMagenta, true)
	}

	for _, p := range s.Projectiles {
		cv.FillRect(p.X, p.Y, shotSpriteWidth, shotSpriteHeight, draw.InkYellow)
	}
	for _, p := range s.EnemyProjectiles {
		cv.FillRect(p.X, p.Y, shotSpriteWidth, shotSpriteHeight, draw.InkOrange)
	}

	cv.DrawPolygon(ship(s.Player.X, s.Player.Y), draw.InkCyan, true)
}

// saucer returns the outline of a UFO centered on (x, y).
func saucer(x, y float64) []draw.Point {
	hw, hh := ufoSpriteWidth/2.0, ufoSpriteHeight/2.0
	return []draw.Point{
		{X: x - hw, Y: y},
		{X: x - hw/2, Y: y - hh},
		{X: x + hw/2, Y: y - hh},
		{X: x + hw, Y: y},
		{X: x + hw/2, Y: y + hh},
		{X: x - hw/2, Y: y + hh},
	}
}

// ship returns the outline of the player's ship, nose up.
func ship(x, y float64) []draw.Point {
	hw, hh := shipSpriteWidth/2.0, shipSpriteHeight/2.0
	return []draw.Point{
		{X: x, Y: y - hh},
		{X: x + hw, Y: y + hh},
		{X: x, Y: y + hh/2},
		{X: x - hw, Y: y + hh},
	}
}

// writeText writes s at a canvas position and marks the cells it covers so
// the canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s, color string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	if color != "" {
		c.chunkWriter.WriteAt(col, row, color+s+draw.ColorReset)
	} else {
		c.chunkWriter.WriteAt(col, row, s)
	}
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s horizontally centered on the canvas.
func (c *Client) centered(row int, s, color string) {
	col := max((c.canvas.TerminalWidth()-utf8.RuneCountInString(s))/2+1, 1)
	c.writeText(col, row, s, color)
}

// drawUI draws the overlay for the current screen.
func (c *Client) drawUI(snapshot *engine.Snapshot) {
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	switch c.state.Screen {
	case ScreenPlaying:
		c.drawPlayingHUD(snapshot)
	case ScreenStart:
		c.drawStartScreen(centerY)
	case ScreenGameOver, ScreenWon:
		c.drawEndScreen(centerY, snapshot)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	c.centered(centerY-2, "INACTIVITY WARNING", draw.ColorBrightRed)

	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	lines := wrapText(fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.", remaining,
	), c.canvas.TerminalWidth()-2)
	for i, line := range lines {
		c.centered(centerY+i, line, "")
	}

	c.centered(centerY+len(lines)+1, "Press any key to continue", "")
}

var startDescription = "Defend your Territory from the Enemy. Dodge Enemy Fire and Do Not let them pass. " +
	"Shoot the ammo drop parachute to upgrade your guns multiple times."

var controlLines = []string{
	"A / <  . . . . Left",
	"D / >  . . .  Right",
	"SPACE  . . . . Fire",
	"Q  . . . . . . Quit",
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerY int) {
	width := c.canvas.TerminalWidth()
	desc := wrapText(startDescription, width-4)

	total := 2 + 2 + len(desc) + 2 + len(controlLines) + 2
	row := max(centerY-total/2, 1)

	c.centered(row, "S Q U A R E", draw.ColorBold+draw.ColorNeonGreen)
	c.centered(row+1, "I N V A S I O N", draw.ColorBold+draw.ColorNeonGreen)
	row += 3

	c.centered(row, "Survive a 2 minute Enemy attack.", draw.ColorNeonGreen)
	row += 2
	for _, line := range desc {
		c.centered(row, line, "")
		row++
	}
	row++

	c.centered(row, "Controls", draw.ColorBrightWhite)
	for i, line := range controlLines {
		c.centered(row+1+i, line, "")
	}
	row += len(controlLines) + 2

	if blinkOn() {
		c.centered(row, ">>  Press SPACE to Start  <<", draw.ColorPurple)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(s *engine.Snapshot) {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()

	c.writeText(2, 1, fmt.Sprintf("Hits: %-5d", s.HitCount), draw.ColorBrightWhite)

	remaining := max(config.MatchDuration.Milliseconds()-s.ElapsedMs, 0)
	timeText := fmt.Sprintf("Time: %3ds", (remaining+999)/1000)
	c.writeText(width-len(timeText), 1, timeText, draw.ColorBrightWhite)

	if s.UFOWaveSpawned && len(s.UFOs) > 0 {
		c.writeText(2, 2, ufoHealthText(s.UFOs), draw.ColorPurple)
	}

	c.writeText(2, height, fmt.Sprintf("Guns: %d", s.Guns()), draw.ColorBrightCyan)
	if c.username != "" {
		name := c.username
		c.writeText(width-utf8.RuneCountInString(name), height, name, "")
	}
}

// ufoHealthText renders one shaded bar per UFO, fading as it takes hits.
func ufoHealthText(ufos []object.UFO) string {
	var b strings.Builder
	b.WriteString("UFO")
	for _, u := range ufos {
		b.WriteByte(' ')
		shade := draw.ShadeLevel(float64(u.Health) / config.UFOHealth)
		b.WriteString(strings.Repeat(string(shade), 3))
	}
	// Pad so a destroyed UFO's bar is overwritten
	for range config.UFOWaveSize - len(ufos) {
		b.WriteString("    ")
	}
	return b.String()
}

// drawEndScreen draws the game over and victory screens.
func (c *Client) drawEndScreen(centerY int, s *engine.Snapshot) {
	width := c.canvas.TerminalWidth()

	var title []string
	color := draw.ColorBrightRed
	if s.Phase == engine.PhaseWon {
		title = wrapText("Congratulations! You Have Defeated the Enemy", width-4)
		color = draw.ColorNeonGreen
	} else {
		title = []string{"G A M E   O V E R"}
	}

	top := c.server.TopScores()
	total := len(title) + 4 + len(top) + 3
	row := max(centerY-total/2, 1)

	for _, line := range title {
		c.centered(row, line, draw.ColorBold+color)
		row++
	}
	row++

	c.centered(row, fmt.Sprintf("Score: %d", s.HitCount), draw.ColorBrightWhite)
	c.centered(row+1, fmt.Sprintf("Best: %d", c.session.Best()), "")
	row += 3

	if len(top) > 0 {
		c.centered(row, "Top pilots", draw.ColorPurple)
		row++
		for i, e := range top {
			c.centered(row, fmt.Sprintf("%d. %-*s %4d", i+1, config.MaxUsernameLength, e.Username, e.Score), "")
			row++
		}
		row++
	}

	guarded := time.Since(c.state.endedAt).Seconds() < config.RestartGuardSeconds
	if !guarded && blinkOn() {
		c.centered(row, ">>  Press SPACE to Try Again  <<", draw.ColorPurple)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.centered(centerY-3, "SERVER SHUTTING DOWN", draw.ColorBrightRed)
	c.centered(centerY-1, "The server is restarting for maintenance.", "")
	c.centered(centerY, "Please reconnect in a moment.", "")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), "")
	c.centered(centerY+4, "Press Q to disconnect now", "")
}

func blinkOn() bool {
	return time.Now().UnixMilli()/blinkPeriodMillis%2 == 0
}

// wrapText splits s into lines of at most width runes, breaking at spaces.
// Words longer than width get a line of their own.
func wrapText(s string, width int) []string {
	width = max(width, 1)
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
