// Package graphics is the raylib side of the viewer: the window, the frame loop, the renderer
// that turns a layout into draw calls, and mouse input for the orbit camera.
package graphics

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"figure-shelf/internal/assets"
	"figure-shelf/internal/debug"
	"figure-shelf/internal/engineconfig"
	"figure-shelf/internal/layout"
	"figure-shelf/internal/logger"
	"figure-shelf/internal/scene"
)

// ErrSurfaceNotReady is returned when the window never became ready for drawing.
var ErrSurfaceNotReady = errors.New("graphics: window not ready")

// Options configures the window and the frame loop.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
	// Screenshot, when set, is written once after the intro pan finishes.
	Screenshot string
	Overlay    *debug.Overlay
	Assets     assets.Options
	Scene      scene.Options
	Logger     *log.Logger
}

// Run opens the window, mounts a scene for cfg and drives it until the window is closed, the
// scene stops running, or ctx ends. The scene is disposed and the window closed on return.
func Run(ctx context.Context, cfg layout.Config, opts Options) error {
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	if opts.Title == "" {
		opts.Title = "Figure Shelf"
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}

	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := windowSize(opts)
	rl.InitWindow(width, height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.TargetFPS))

	if opts.Assets.Logger == nil {
		opts.Assets.Logger = lg
	}
	loader := assets.NewLoader(ctx, opts.Assets)
	defer loader.Close()

	if opts.Scene.Logger == nil {
		opts.Scene.Logger = lg
	}
	renderer := NewRenderer(loader, lg)
	host := newWindowHost()
	sc := scene.New(cfg, renderer, host, opts.Scene)
	defer sc.Dispose()

	ok, err := sc.Mount(ctx, windowSurface{})
	if err != nil {
		return err
	}
	if !ok {
		return ErrSurfaceNotReady
	}

	shotPending := opts.Screenshot != ""
	for !rl.WindowShouldClose() {
		host.poll()
		if sc.IntroDone() {
			feedOrbit(sc.Controls())
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		running := sc.Tick(rl.GetFrameTime())
		// The 3D batch is flushed by EndMode3D, so the frame can be read back before the overlay.
		if running && shotPending && sc.IntroDone() {
			shotPending = false
			if err := saveScreenshot(opts.Screenshot); err != nil {
				lg.Error("screenshot failed", "path", opts.Screenshot, "err", err)
			} else {
				lg.Info("screenshot saved", "path", opts.Screenshot)
			}
		}
		if running && opts.Overlay != nil {
			uploaded, total := renderer.TextureStats()
			opts.Overlay.Draw(debug.Stats{IntroDone: sc.IntroDone(), TexturesLoaded: uploaded, TexturesTotal: total})
		}
		rl.EndDrawing()
		if !running {
			break
		}
	}

	st := loader.Stats()
	lg.Debug("viewer closed", "frames", sc.Frames(), "images", st.Total, "failed", st.Failed)
	return nil
}

// View runs the viewer for cfg with the given preferences, logging through the context logger.
// showScene adds intro and texture lines to the overlay.
func View(ctx context.Context, cfg layout.Config, p engineconfig.ViewerPrefs, showScene bool) error {
	if p.Screenshot != "" {
		if err := CheckScreenshotPath(p.Screenshot); err != nil {
			return err
		}
	}
	lg := logger.FromContext(ctx)

	overlay := debug.New()
	overlay.ShowFPS = p.ShowFPS
	overlay.ShowMemAlloc = p.ShowMemAlloc
	overlay.ShowScene = showScene

	return Run(ctx, cfg, Options{
		Width:      p.WindowWidth,
		Height:     p.WindowHeight,
		Fullscreen: p.Fullscreen,
		TargetFPS:  p.TargetFPS,
		Screenshot: p.Screenshot,
		Overlay:    overlay,
		Assets:     assets.Options{CacheDir: p.CacheDir, Logger: lg},
		Scene:      scene.Options{PanSpeed: p.PanSpeed, SkipIntro: p.SkipIntro, Logger: lg},
		Logger:     lg,
	})
}

// windowSize is the size passed to InitWindow. Monitors cannot be queried before the window
// exists, so fullscreen asks for 0x0 and raylib fills in the current monitor's size.
func windowSize(opts Options) (int32, int32) {
	if opts.Fullscreen {
		return 0, 0
	}
	return int32(opts.Width), int32(opts.Height)
}
