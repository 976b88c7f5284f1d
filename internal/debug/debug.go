package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the optional overlays in the top-right corner: FPS, heap allocation and a
// status line supplied by the caller (e.g. viewer load progress). All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Status, when set, is called every updateInterval frames for an extra line.
	Status func() string

	frameCount uint32
	fpsText    string
	memText    string
	statusText string
	memStats   runtime.MemStats
}

// New returns a Debug system with the given overlays enabled.
func New(showFPS, showMemAlloc bool) *Debug {
	return &Debug{ShowFPS: showFPS, ShowMemAlloc: showMemAlloc}
}

// Enabled reports whether Draw would draw anything.
func (d *Debug) Enabled() bool {
	return d.ShowFPS || d.ShowMemAlloc || d.Status != nil
}

// Draw renders the enabled overlays. Call after the canvases are composited.
func (d *Debug) Draw() {
	if !d.Enabled() {
		return
	}
	d.frameCount++
	update := d.frameCount%updateInterval == 1

	y := int32(padding)
	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.fpsText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		drawRight(d.memText, y, rl.Green)
		y += lineHeight
	}
	if d.Status != nil {
		if update || d.statusText == "" {
			d.statusText = d.Status()
		}
		drawRight(d.statusText, y, rl.LightGray)
	}
}

func drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	x := int32(rl.GetScreenWidth()) - rl.MeasureText(text, fontSize) - padding
	rl.DrawText(text, x, y, fontSize, c)
}
