package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"lookbook/internal/logger"
)

const (
	// maxConsoleLines is the number of log lines shown when the console is open.
	maxConsoleLines  = 12
	maxConsoleWidth  = 160
	consoleToggleKey = rl.KeyF1
)

// Reused every frame to avoid per-frame color allocations.
var consoleBgColor = rl.NewColor(24, 24, 24, 220)

// Console shows the most recent log lines along the bottom of the window. F1 toggles it.
type Console struct {
	log  *logger.Logger
	open bool
}

// NewConsole returns a console over log, open when open is true.
func NewConsole(log *logger.Logger, open bool) *Console {
	return &Console{log: log, open: open}
}

// IsOpen reports whether the console is visible.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles the toggle key. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(consoleToggleKey) {
		c.open = !c.open
	}
}

// Draw draws the console when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	lines := c.log.Tail(maxConsoleLines, maxConsoleWidth)
	if len(lines) == 0 {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	h := int32(len(lines)*lineHeight + 2*padding)
	y := screenH - h
	rl.DrawRectangle(0, y, screenW, h, consoleBgColor)
	for i, line := range lines {
		rl.DrawText(line, padding, y+padding+int32(i*lineHeight), fontSize, rl.LightGray)
	}
}
