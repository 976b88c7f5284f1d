package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ConfigPath is the default preferences file, relative to the process working directory.
const ConfigPath = "config/viewer.json"

// Window holds the native window and canvas grid settings.
type Window struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	TargetFPS int    `json:"target_fps"`
	Columns   int    `json:"columns"` // 0 = automatic grid
	Gap       int    `json:"gap"`
}

// Camera holds the perspective camera settings shared by every viewer.
type Camera struct {
	Fovy     float32    `json:"fovy"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	Position [3]float32 `json:"position"`
}

// Controls holds the orbit control settings.
type Controls struct {
	Damping         bool    `json:"damping"`
	DampingFactor   float32 `json:"damping_factor"`
	AutoRotate      bool    `json:"auto_rotate"`
	AutoRotateSpeed float32 `json:"auto_rotate_speed"`
	MinDistance     float32 `json:"min_distance"`
	MaxDistance     float32 `json:"max_distance"`
}

// Model holds loaded-model normalization: the size of the largest dimension after scaling
// and the lift applied after centering.
type Model struct {
	TargetSize float32 `json:"target_size"`
	YOffset    float32 `json:"y_offset"`
}

// Lights holds the ambient and directional light settings.
type Lights struct {
	AmbientColor         string     `json:"ambient_color"`
	AmbientIntensity     float32    `json:"ambient_intensity"`
	DirectionalColor     string     `json:"directional_color"`
	DirectionalIntensity float32    `json:"directional_intensity"`
	DirectionalPosition  [3]float32 `json:"directional_position"`
}

// Assets holds where models are read from and cached.
type Assets struct {
	BaseDir  string `json:"base_dir"`
	CacheDir string `json:"cache_dir"`
	Parallel int    `json:"parallel"`
}

// Prefs holds viewer preferences. Persisted across runs.
type Prefs struct {
	Window       Window   `json:"window"`
	Camera       Camera   `json:"camera"`
	Controls     Controls `json:"controls"`
	Model        Model    `json:"model"`
	Lights       Lights   `json:"lights"`
	Assets       Assets   `json:"assets"`
	Background   string   `json:"background"`
	ShowFPS      bool     `json:"show_fps"`
	ShowMemAlloc bool     `json:"show_memalloc"`
	ShowConsole  bool     `json:"show_console"`
	GridVisible  bool     `json:"grid_visible"`
	LogPath      string   `json:"log_path"`
}

// Default returns the default preferences (debug overlays and grid off).
func Default() Prefs {
	return Prefs{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "lookbook",
			TargetFPS: 60,
			Columns:   3,
			Gap:       8,
		},
		Camera: Camera{
			Fovy:     45,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{0, 1.5, 4},
		},
		Controls: Controls{
			Damping:         true,
			DampingFactor:   0.05,
			AutoRotate:      true,
			AutoRotateSpeed: 2,
			MinDistance:     2,
			MaxDistance:     10,
		},
		Model: Model{
			TargetSize: 2,
			YOffset:    0.8,
		},
		Lights: Lights{
			AmbientColor:         "#ffffff",
			AmbientIntensity:     0.6,
			DirectionalColor:     "#ffffff",
			DirectionalIntensity: 1,
			DirectionalPosition:  [3]float32{5, 10, 7.5},
		},
		Assets: Assets{
			BaseDir:  "assets/models",
			CacheDir: "cache/assets",
			Parallel: 4,
		},
		Background: "#1e1e24",
		LogPath:    "logs/lookbook.txt",
	}
}

// Load reads preferences from path. Fields missing from the file keep their defaults.
// A missing file is not an error; an unreadable or invalid one returns Default() and the error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("engineconfig: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from LOOKBOOK_* variables found by lookup (os.LookupEnv
// in production). Unparsable numbers are reported and leave the field unchanged.
func (p *Prefs) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LOOKBOOK_ASSET_DIR"); ok && v != "" {
		p.Assets.BaseDir = v
	}
	if v, ok := lookup("LOOKBOOK_CACHE_DIR"); ok && v != "" {
		p.Assets.CacheDir = v
	}
	if v, ok := lookup("LOOKBOOK_LOG"); ok {
		p.LogPath = v
	}
	if v, ok := lookup("LOOKBOOK_FPS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("engineconfig: LOOKBOOK_FPS=%q: want a positive integer", v)
		}
		p.Window.TargetFPS = n
	}
	return nil
}
