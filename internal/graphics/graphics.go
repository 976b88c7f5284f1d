package graphics

import (
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"lookbook/internal/frame"
	"lookbook/internal/input"
	"lookbook/internal/page"
)

// Config holds the native window settings.
type Config struct {
	Width      int
	Height     int
	Title      string
	TargetFPS  int
	Background color.RGBA
}

// Loop is what the window drives. Page, Scheduler and Surfaces are required.
type Loop struct {
	Page      *page.Page
	Scheduler *frame.Scheduler
	Surfaces  *Surfaces
	Input     *input.Router
	// Update runs first every frame (e.g. overlay key toggles).
	Update func()
	// Overlay draws on top of the composited canvases (e.g. debug text).
	Overlay func()
	// Ready runs once the window is open and the page has its first size, before the
	// first frame. Done runs after the window is asked to close, before GPU teardown.
	Ready func()
	Done  func()
}

// Run opens a resizable window and runs the main loop until it is closed. Each frame it
// raises a page resize when the window size changed, routes pointer input, ticks the
// scheduler (viewers render into their surfaces) and composites the surfaces.
func Run(cfg Config, loop Loop) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()

	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	bg := rl.NewColor(cfg.Background.R, cfg.Background.G, cfg.Background.B, 255)

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	loop.Page.Resize(w, h)
	if loop.Ready != nil {
		loop.Ready()
	}

	for !rl.WindowShouldClose() {
		if nw, nh := rl.GetScreenWidth(), rl.GetScreenHeight(); nw != w || nh != h {
			w, h = nw, nh
			loop.Page.Resize(w, h)
		}
		if loop.Update != nil {
			loop.Update()
		}
		if loop.Input != nil {
			loop.Input.Update(pointer())
		}
		loop.Scheduler.Tick(time.Duration(rl.GetTime() * float64(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		loop.Surfaces.Composite()
		if loop.Overlay != nil {
			loop.Overlay()
		}
		rl.EndDrawing()
	}

	if loop.Done != nil {
		loop.Done()
	}
	loop.Surfaces.Close()
}

func pointer() input.State {
	pos := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	return input.State{
		X:     int(pos.X),
		Y:     int(pos.Y),
		DX:    delta.X,
		DY:    delta.Y,
		Down:  rl.IsMouseButtonDown(rl.MouseLeftButton),
		Wheel: rl.GetMouseWheelMove(),
	}
}
