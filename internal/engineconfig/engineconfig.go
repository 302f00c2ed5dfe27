package engineconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the viewer preferences file, relative to the process working directory.
const DefaultPath = "config/viewer.toml"

// ViewerPrefs holds window and overlay preferences. The shelf contents live in the catalog.
type ViewerPrefs struct {
	WindowWidth  int     `toml:"window_width"`
	WindowHeight int     `toml:"window_height"`
	Fullscreen   bool    `toml:"fullscreen"`
	TargetFPS    int     `toml:"target_fps"`
	ShowFPS      bool    `toml:"show_fps"`
	ShowMemAlloc bool    `toml:"show_memalloc"`
	PanSpeed     float32 `toml:"pan_speed"`
	SkipIntro    bool    `toml:"skip_intro"`
	// Catalog is a YAML catalog path; empty uses the built-in catalog.
	Catalog string `toml:"catalog"`
	// Screenshot, when set, is written once the intro pan finishes (.webp or .png).
	Screenshot string `toml:"screenshot"`
	CacheDir   string `toml:"cache_dir"`
}

// Default returns the preferences used when no file exists.
func Default() ViewerPrefs {
	return ViewerPrefs{
		WindowWidth:  1280,
		WindowHeight: 720,
		Fullscreen:   false,
		TargetFPS:    60,
		ShowFPS:      false,
		ShowMemAlloc: false,
		PanSpeed:     0.48,
		CacheDir:     "assets/cache",
	}
}

// Load reads preferences from path. Keys missing from the file keep their defaults.
// A missing file is not an error. A malformed file returns Default() together with the error.
func Load(path string) (ViewerPrefs, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		return Default(), fmt.Errorf("engineconfig: %s: window size %dx%d must be positive", path, p.WindowWidth, p.WindowHeight)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory if needed.
func Save(path string, p ViewerPrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return fmt.Errorf("engineconfig: encode: %w", err)
	}
	return f.Close()
}
