package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookbook/internal/engineconfig"
	"lookbook/internal/gallery"
	"lookbook/internal/logger"
	"lookbook/internal/primitives"
	"lookbook/internal/viewer"
)

// writeGarment saves a box-shaped GLB spanning min..max under dir.
func writeGarment(t *testing.T, dir, name string, min, max [3]float32) {
	t.Helper()
	doc := gltf.NewDocument()
	var pos [][3]float32
	for _, x := range []float32{min[0], max[0]} {
		for _, y := range []float32{min[1], max[1]} {
			for _, z := range []float32{min[2], max[2]} {
				pos = append(pos, [3]float32{x, y, z})
			}
		}
	}
	acc := modeler.WritePosition(doc, pos)
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: acc}}}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	require.NoError(t, gltf.SaveBinary(doc, filepath.Join(dir, name)))
}

func testPrefs(t *testing.T) engineconfig.Prefs {
	p := engineconfig.Default()
	p.Assets.BaseDir = t.TempDir()
	p.Assets.CacheDir = t.TempDir()
	p.Window.Width, p.Window.Height = 900, 600
	return p
}

func TestGalleryOfSixGarments(t *testing.T) {
	prefs := testPrefs(t)
	descs := gallery.Defaults()
	for i, d := range descs {
		f := float32(i + 1)
		writeGarment(t, prefs.Assets.BaseDir, d.Asset, [3]float32{0, 0, 0}, [3]float32{f, 2 * f, f / 3})
	}
	log := logger.Discard()
	a := New(prefs, log, descs, nil)
	defer a.Close()

	a.Start(prefs.Window.Width, prefs.Window.Height)
	a.Scheduler.Tick(0)
	require.Len(t, a.Gallery.Viewers(), 6)

	require.Eventually(t, func() bool {
		_, tasks := a.Scheduler.Pending()
		return tasks == 6
	}, 5*time.Second, 5*time.Millisecond)
	a.Scheduler.Tick(time.Millisecond)

	for _, v := range a.Gallery.Viewers() {
		state, err := v.LoadState()
		require.NoError(t, err, v.Canvas().ID)
		require.Equal(t, viewer.LoadDone, state)
		require.Equal(t, 1, v.Scene.Len())
		n := v.Scene.Visible()
		assert.Equal(t, float32(0.8), n.Position[1])
		assert.InDelta(t, 2, n.WorldBounds().MaxDim(), 1e-4)
		assert.InDelta(t, 289.0/288.0, v.Camera.Aspect, 1e-5, "3x2 grid cells")
	}
	assert.Equal(t, "6 viewers: 6 loaded, 0 loading, 0 failed, 0 placeholder", a.Status())
	assert.NotNil(t, a.Target("canvas-1"))
	assert.Nil(t, a.Target("nope"))
}

func TestRunHeadless(t *testing.T) {
	prefs := testPrefs(t)
	prefs.Window.TargetFPS = 500
	descs := []gallery.Descriptor{
		{CanvasID: "shape", Geometry: &primitives.Geometry{Kind: primitives.Cone}, Color: "#10b981"},
		{CanvasID: "gone", Asset: "missing.glb"},
	}
	log := logger.Discard()
	a := New(prefs, log, descs, nil)

	require.NoError(t, a.RunHeadless(context.Background(), 5))

	all := strings.Join(log.Lines(), "\n")
	assert.Contains(t, all, "gallery: 2 of 2 viewers started")
	assert.Contains(t, all, "viewer shape: 4 frames, placeholder")
	assert.Contains(t, all, "viewer gone: ")
	for _, v := range a.Gallery.Viewers() {
		assert.True(t, v.Closed())
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	prefs := testPrefs(t)
	a := New(prefs, nil, gallery.Defaults(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, a.RunHeadless(ctx, 0))
}
