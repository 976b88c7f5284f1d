package gallery

import (
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"lookbook/internal/page"
	"lookbook/internal/primitives"
	"lookbook/internal/viewer"
)

// DescriptorPath is the default gallery file, relative to the working directory.
const DescriptorPath = "config/gallery.yaml"

// errNothingToShow is returned for a descriptor with neither asset nor geometry.
var errNothingToShow = errors.New("neither asset nor geometry")

// Descriptor is one gallery entry as written in config/gallery.yaml: the canvas it
// draws into and either an asset to load or a placeholder shape with its material.
type Descriptor struct {
	CanvasID  string               `yaml:"canvas"`
	Asset     string               `yaml:"asset,omitempty"`
	Geometry  *primitives.Geometry `yaml:"geometry,omitempty"`
	Color     string               `yaml:"color,omitempty"`
	Metalness *float32             `yaml:"metalness,omitempty"`
	Roughness *float32             `yaml:"roughness,omitempty"`
}

type file struct {
	Viewers []Descriptor `yaml:"viewers"`
}

// garments is the built-in gallery: one model per canvas under the asset directory.
var garments = []string{"tshirt", "hoodie", "jacket", "dress", "jeans", "sneakers"}

// Defaults returns the built-in gallery of six garment models.
func Defaults() []Descriptor {
	out := make([]Descriptor, 0, len(garments))
	for i, name := range garments {
		out = append(out, Descriptor{
			CanvasID: fmt.Sprintf("canvas-%d", i+1),
			Asset:    name + ".glb",
		})
	}
	return out
}

// Parse decodes a gallery file. Canvas ids must be present and unique.
func Parse(data []byte) ([]Descriptor, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	seen := make(map[string]bool, len(f.Viewers))
	for i, d := range f.Viewers {
		if d.CanvasID == "" {
			return nil, fmt.Errorf("gallery: viewer %d: missing canvas", i)
		}
		if seen[d.CanvasID] {
			return nil, fmt.Errorf("gallery: duplicate canvas %q", d.CanvasID)
		}
		seen[d.CanvasID] = true
	}
	return f.Viewers, nil
}

// Load reads the gallery file at path. A missing file yields Defaults().
func Load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return Parse(data)
}

// Viewer converts d into the descriptor a viewer is built from. The result shares no
// memory with d, so later edits to the gallery never reach a running viewer.
func (d Descriptor) Viewer() (viewer.Descriptor, error) {
	var out viewer.Descriptor
	if err := copier.CopyWithOption(&out, &d, copier.Option{DeepCopy: true}); err != nil {
		return viewer.Descriptor{}, fmt.Errorf("gallery: %s: %w", d.CanvasID, err)
	}
	if out.Asset == "" && out.Geometry == nil {
		return viewer.Descriptor{}, fmt.Errorf("gallery: %s: %w", d.CanvasID, errNothingToShow)
	}
	if out.Geometry != nil {
		g := out.Geometry.WithDefaults()
		if err := g.Validate(); err != nil {
			return viewer.Descriptor{}, fmt.Errorf("gallery: %s: %w", d.CanvasID, err)
		}
		out.Geometry = &g
	}

	c := primitives.DefaultColor
	if d.Color != "" {
		parsed, ok := primitives.ParseHexColor(d.Color)
		if !ok {
			return viewer.Descriptor{}, fmt.Errorf("gallery: %s: bad color %q", d.CanvasID, d.Color)
		}
		c = parsed
	}
	out.Material = primitives.NewStandard(c)
	if d.Metalness != nil {
		out.Material.Metalness = *d.Metalness
	}
	if d.Roughness != nil {
		out.Material.Roughness = *d.Roughness
	}
	return out, nil
}

// AddCanvases creates the page markup for descs: one canvas per entry, in order.
func AddCanvases(p *page.Page, descs []Descriptor) {
	for _, d := range descs {
		p.AddCanvas(d.CanvasID)
	}
}
