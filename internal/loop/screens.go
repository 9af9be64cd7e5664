package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/hurricaneship/internal/draw"
)

var titleArt = []string{
	` _  _ _   _ ___ ___ ___ ___   _   _  _ ___   ___ _  _ ___ ___ `,
	`| || | | | | _ \ _ \_ _/ __| /_\ | \| | __| / __| || |_ _| _ \`,
	`| __ | |_| |   /   /| | (__ / _ \| .' | _|  \__ \ __ || ||  _/`,
	`|_||_|\___/|_|_\_|_\___\___/_/ \_\_|\_|___| |___/_||_|___|_|  `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame renders the canvas and the text overlay for the current state.
func (h *host) drawFrame() error {
	// State and inactivity transitions clear the terminal so stale text goes away.
	if h.state != h.prevState || h.inactive != h.wasInactive {
		h.cw.WriteString("\033[H\033[2J")
		h.canvas.ForceRedraw()
		h.prevState = h.state
		h.wasInactive = h.inactive
	}

	h.canvas.Clear()
	h.drawWorld()
	h.canvas.Render(h.cw)
	h.drawUI()

	return h.cw.Flush()
}

func (h *host) drawUI() {
	width := h.canvas.TerminalWidth()
	height := h.canvas.TerminalHeight()
	centerX, centerY := width/2, height/2

	switch {
	case h.state == GameStateShutdown:
		h.drawShutdownScreen(centerX, centerY)
	case h.inactive:
		h.drawInactivityScreen(centerX, centerY)
	case h.state == GameStateStart:
		h.drawStartScreen(centerX, centerY)
	case h.state == GameStatePlaying:
		h.drawPlayingHUD(width)
	case h.state == GameStateOver:
		h.drawGameOverScreen(centerX, centerY)
	}
}

// writeText writes s and marks its cells so the next canvas render repaints them.
func (h *host) writeText(col, row int, s string) {
	h.writeColored(col, row, s, draw.ColorNone)
}

func (h *host) writeColored(col, row int, s string, c draw.Color) {
	h.cw.WriteColored(col, row, s, c)
	h.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

func (h *host) writeCentered(centerX, row int, s string) {
	h.writeText(centerX-len([]rune(s))/2, row, s)
}

func (h *host) writeBlock(centerX, top int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	for i, l := range lines {
		h.writeText(centerX-width/2, top+i, l)
	}
}

func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

func (h *host) drawStartScreen(centerX, centerY int) {
	top := centerY - 7
	h.writeBlock(centerX, top, titleArt)

	row := top + len(titleArt) + 1
	h.writeCentered(centerX, row, "~ dodge the meteors, grab the shields ~")

	controls := []string{
		"Arrows / WASD  . .  Move pointer",
		"Mouse drag  . . . . Move pointer",
		"Q  . . . . . . . . . . . .  Quit",
	}
	for i, line := range controls {
		h.writeCentered(centerX, row+2+i, line)
	}

	if blinkOn() {
		h.writeCentered(centerX, row+3+len(controls), ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws lives and survival time. Fields are fixed width so a
// shrinking value leaves nothing behind.
func (h *host) drawPlayingHUD(width int) {
	h.writeText(2, 1, fmt.Sprintf("Time: %-8.1f", h.survived))

	lives := fmt.Sprintf("Lives: %-3d", h.lives)
	c := draw.ColorGreen
	if h.lives <= 1 {
		c = draw.ColorRed
	}
	h.writeColored(width-len(lives)-1, 1, lives, c)
}

func (h *host) drawGameOverScreen(centerX, centerY int) {
	top := centerY - 6
	h.writeBlock(centerX, top, gameOverArt)

	row := top + len(gameOverArt) + 1
	h.writeCentered(centerX, row, fmt.Sprintf("You survived %.1f seconds", h.survived))

	if h.sessions != nil {
		if runs := h.sessions.TopRuns(3); len(runs) > 0 {
			h.writeCentered(centerX, row+2, "Best runs")
			for i, r := range runs {
				line := fmt.Sprintf("%d. %-16s %6.1fs", i+1, r.User, r.Survived.Seconds())
				h.writeCentered(centerX, row+3+i, line)
			}
			row += 1 + len(runs)
		}
	}
	if h.record != nil && h.session != nil && h.record.User != h.session.User {
		h.writeCentered(centerX, row+3, fmt.Sprintf("New record by %s!", h.record.User))
	}

	if blinkOn() {
		h.writeCentered(centerX, row+5, ">>  Press SPACE to Restart  <<")
	}
}

func (h *host) drawInactivityScreen(centerX, centerY int) {
	h.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int(h.cfg.Host.InactivityDisconnect - time.Since(h.lastInput).Seconds())
	h.writeCentered(centerX, centerY,
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(left, 0)))
	h.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func (h *host) drawShutdownScreen(centerX, centerY int) {
	h.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	h.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	h.writeCentered(centerX, centerY, "Please reconnect in a moment.")
	h.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(h.shutdownIn)+1))
	h.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
