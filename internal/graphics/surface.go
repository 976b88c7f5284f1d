package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/asset"
	"lookbook/internal/camera"
	"lookbook/internal/page"
	"lookbook/internal/primitives"
	"lookbook/internal/render"
	"lookbook/internal/scene"
)

// Surfaces creates one Surface per canvas and composites them into the window.
// All methods run on the window goroutine.
type Surfaces struct {
	Registry    *Registry
	GridVisible bool

	list []*Surface
}

// NewSurfaces returns an empty set sharing registry between canvases.
func NewSurfaces(registry *Registry) *Surfaces {
	return &Surfaces{Registry: registry}
}

// Factory is a render.Factory creating GPU surfaces. The window must be open.
func (s *Surfaces) Factory(canvas *page.Canvas, width, height int) (render.Renderer, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("graphics: canvas %s: window not open", canvas.ID)
	}
	sf := &Surface{owner: s, canvas: canvas, width: width, height: height}
	sf.target = rl.LoadRenderTexture(int32(width), int32(height))
	if !rl.IsRenderTextureValid(sf.target) {
		return nil, fmt.Errorf("graphics: canvas %s: render texture %dx%d", canvas.ID, width, height)
	}
	s.list = append(s.list, sf)
	return sf, nil
}

// Len is the number of open surfaces.
func (s *Surfaces) Len() int {
	return len(s.list)
}

// Composite draws every surface into its canvas container. Call between BeginDrawing and
// EndDrawing.
func (s *Surfaces) Composite() {
	for _, sf := range s.list {
		sf.composite()
	}
}

// Close releases every surface and the shared registry.
func (s *Surfaces) Close() {
	for len(s.list) > 0 {
		s.list[0].Close()
	}
	s.Registry.Unload()
}

func (s *Surfaces) remove(sf *Surface) {
	for i, o := range s.list {
		if o == sf {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return
		}
	}
}

// Surface renders one canvas into an offscreen texture. It implements render.Renderer.
type Surface struct {
	owner  *Surfaces
	canvas *page.Canvas
	target rl.RenderTexture2D
	width  int
	height int
	resize bool
	closed bool
}

// SetSize implements render.Renderer. The texture is reallocated before the next render.
func (sf *Surface) SetSize(width, height int) {
	if width == sf.width && height == sf.height {
		return
	}
	sf.width, sf.height = width, height
	sf.resize = true
}

// Size implements render.Renderer.
func (sf *Surface) Size() (int, int) {
	return sf.width, sf.height
}

// Render implements render.Renderer: it draws s from cam into the surface texture.
func (sf *Surface) Render(s *scene.Scene, cam *camera.Perspective) {
	if sf.closed {
		return
	}
	if sf.resize {
		rl.UnloadRenderTexture(sf.target)
		sf.target = rl.LoadRenderTexture(int32(sf.width), int32(sf.height))
		sf.resize = false
	}
	reg := sf.owner.Registry

	rl.BeginTextureMode(sf.target)
	rl.ClearBackground(rl.NewColor(s.Background.R, s.Background.G, s.Background.B, s.Background.A))
	rl.BeginMode3D(toCamera(cam))
	// BeginMode3D derives its own projection; use the camera's so near/far and aspect match.
	rl.SetMatrixProjection(toMatrix(cam.Projection))
	if sf.owner.GridVisible {
		drawEditorGrid()
	}
	reg.SetLights(cam.Position, s)
	for _, n := range s.Nodes() {
		if !n.Visible {
			continue
		}
		switch obj := n.Object.(type) {
		case *primitives.Mesh:
			reg.DrawMesh(obj, n.Matrix())
		case *asset.Model:
			reg.DrawModel(obj, n.Matrix())
		}
	}
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Close implements render.Renderer.
func (sf *Surface) Close() {
	if sf.closed {
		return
	}
	sf.closed = true
	rl.UnloadRenderTexture(sf.target)
	sf.owner.remove(sf)
}

func (sf *Surface) composite() {
	r := sf.canvas.Container().Rect()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(sf.target.Texture.Width), -float32(sf.target.Texture.Height))
	dst := rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height))
	rl.DrawTexturePro(sf.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toCamera(c *camera.Perspective) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
