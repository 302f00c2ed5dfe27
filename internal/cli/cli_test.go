package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"figure-shelf/internal/engineconfig"
	"figure-shelf/internal/layout"
)

const overlappingCatalog = `bookcase: {shelves: 3, height: 3, width: 4, depth: 1.5}
shelves:
  - row: 1
    figures:
      - {name: wide, boxWidth: 1.5, boxHeight: 0.5, boxDepth: 0.5, shiftOverride: 0.6}
      - {name: next, boxWidth: 0.5, boxHeight: 0.5, boxDepth: 0.5, shiftOverride: 0.6}
`

// viewCall records what the root command handed to the viewer.
type viewCall struct {
	calls     int
	cfg       layout.Config
	prefs     engineconfig.ViewerPrefs
	showScene bool
}

func (v *viewCall) view(ctx context.Context, cfg layout.Config, p engineconfig.ViewerPrefs, showScene bool) error {
	v.calls++
	v.cfg, v.prefs, v.showScene = cfg, p, showScene
	return nil
}

func run(t *testing.T, args ...string) (string, *viewCall, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	v := &viewCall{}
	root := newRootCommand(&out, &errOut, v.view)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), v, err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommandDefaultCatalog(t *testing.T) {
	out, v, err := run(t, "layout", "--strict")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	if v.calls != 0 {
		t.Error("layout opened the viewer")
	}
	for _, want := range []string{"Bookcase 6 shelves", "spacing 0.980", "shelf", "back", "red-knight", "mech", "no overlaps"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCommandOverlaps(t *testing.T) {
	path := writeFile(t, "overlap.yaml", overlappingCatalog)

	out, _, err := run(t, "layout", "--catalog", path)
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	if !strings.Contains(out, "wide overlaps next by 0.500") {
		t.Errorf("overlap not reported:\n%s", out)
	}

	_, _, err = run(t, "layout", "--strict", "--catalog", path)
	if !errors.Is(err, errOverlap) {
		t.Errorf("strict layout error = %v, want errOverlap", err)
	}
}

func TestLayoutCommandPanelCollisions(t *testing.T) {
	path := writeFile(t, "tall.yaml", `bookcase: {shelves: 3, height: 3, width: 4, depth: 1.5}
shelves:
  - row: 0
    figures:
      - {name: lookout, boxWidth: 0.5, boxHeight: 0.5, boxDepth: 0.5, shiftOverride: 0.6}
  - row: 1
    figures:
      - {name: tower, boxWidth: 0.5, boxHeight: 1.4, boxDepth: 0.5, shiftOverride: 0.6}
`)

	out, _, err := run(t, "layout", "--catalog", path)
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	for _, want := range []string{
		"row 1: tower cuts into the shelf of row 0 by 0.050",
		"row 0: lookout rises 0.500 above the bookcase",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, _, err = run(t, "layout", "--strict", "--catalog", path)
	if !errors.Is(err, errOverlap) || !strings.Contains(err.Error(), "2 collisions") {
		t.Errorf("strict layout error = %v, want 2 collisions", err)
	}
}

func TestLayoutCommandBadCatalog(t *testing.T) {
	path := writeFile(t, "bad.yaml", "bookcase: {shelves: 1, height: 3, width: 4, depth: 1}\n")
	_, _, err := run(t, "layout", "--catalog", path)
	if !errors.Is(err, layout.ErrInvalidBookcase) {
		t.Errorf("error = %v, want ErrInvalidBookcase", err)
	}
}

func TestRootOpensViewer(t *testing.T) {
	_, v, err := run(t, "--skip-intro", "-v")
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	if v.calls != 1 {
		t.Fatalf("viewer calls = %d, want 1", v.calls)
	}
	if !v.prefs.SkipIntro || !v.showScene {
		t.Errorf("prefs = %+v showScene = %v", v.prefs, v.showScene)
	}
	if v.prefs.WindowWidth != 1280 || v.cfg.Bookcase.Shelves != 6 {
		t.Errorf("defaults not applied: %+v %+v", v.prefs, v.cfg.Bookcase)
	}
	if _, err := os.Stat("logs/shelf.txt"); err != nil {
		t.Errorf("log file not written: %v", err)
	}
}

func TestViewUsesPreferences(t *testing.T) {
	catalogPath := writeFile(t, "small.yaml", overlappingCatalog)
	prefs := engineconfig.Default()
	prefs.Catalog = catalogPath
	prefs.ShowFPS = true
	prefsPath := filepath.Join(t.TempDir(), "viewer.toml")
	if err := engineconfig.Save(prefsPath, prefs); err != nil {
		t.Fatal(err)
	}

	_, v, err := run(t, "view", "--config", prefsPath, "--fps=false")
	if err != nil {
		t.Fatalf("view error = %v", err)
	}
	if v.cfg.Bookcase.Shelves != 3 {
		t.Errorf("catalog from preferences not used: %+v", v.cfg.Bookcase)
	}
	if v.prefs.ShowFPS {
		t.Error("--fps=false did not override the preferences")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "viewer.toml")

	out, _, err := run(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output does not name the file:\n%s", out)
	}
	got, err := engineconfig.Load(path)
	if err != nil || got != engineconfig.Default() {
		t.Errorf("Load() = %+v, %v", got, err)
	}

	if _, _, err := run(t, "config", "init", "--config", path); err == nil {
		t.Error("second init without --force succeeded")
	}
	if _, _, err := run(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}
