package scene

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"figure-shelf/internal/camera"
	"figure-shelf/internal/layout"
)

// State is the lifecycle stage of a Scene.
type State int

const (
	StateUninitialized State = iota
	StateConstructing
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConstructing:
		return "constructing"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Renderer draws a built layout. Build is called once per Mount, Render once per frame,
// Release once on Dispose.
type Renderer interface {
	Build(l *layout.Layout) error
	Render(v camera.View)
	Release()
}

// Host is the window environment: current size and resize notifications. The returned func
// removes the listener.
type Host interface {
	Viewport() (width, height int)
	OnResize(fn func(width, height int)) (unsubscribe func())
}

// Surface is the render target. Mount does nothing until it is ready.
type Surface interface {
	Ready() bool
}

// Options tunes the camera behavior of a Scene.
type Options struct {
	// PanSpeed is the intro pan rate in units per second; 0 uses camera.DefaultPanSpeed.
	PanSpeed float32
	// SkipIntro starts the camera at the end of the pan.
	SkipIntro bool
	Logger    *log.Logger
}

// Scene owns one bookcase from construction to teardown:
// Uninitialized -> Constructing -> Running -> Disposed.
//
// The running flag is the only thing that keeps the frame loop alive: Tick returns false once
// the scene is disposed or its context ends, and the loop stops on that.
type Scene struct {
	cfg      layout.Config
	opts     Options
	renderer Renderer
	host     Host
	log      *log.Logger

	state       State
	ctx         context.Context
	layout      *layout.Layout
	rig         *camera.Rig
	unsubscribe func()
	frames      uint64
}

// New returns an unmounted scene for cfg.
func New(cfg layout.Config, r Renderer, h Host, opts Options) *Scene {
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	return &Scene{cfg: cfg, opts: opts, renderer: r, host: h, log: lg}
}

// Mount builds the layout, hands it to the renderer, subscribes to resizes, and starts running.
// It reports false without error when the surface is missing or not ready yet, or when the scene
// was already mounted or disposed; calling it again later is safe.
func (s *Scene) Mount(ctx context.Context, surface Surface) (bool, error) {
	if s.state != StateUninitialized {
		return false, nil
	}
	if surface == nil || !surface.Ready() {
		s.log.Debug("render surface not ready, skipping scene setup")
		return false, nil
	}

	s.state = StateConstructing
	l, err := layout.Build(s.cfg)
	if err != nil {
		s.state = StateUninitialized
		return false, fmt.Errorf("scene: %w", err)
	}
	if err := s.renderer.Build(l); err != nil {
		s.renderer.Release()
		s.state = StateUninitialized
		return false, fmt.Errorf("scene: build renderer: %w", err)
	}

	w, h := s.host.Viewport()
	s.rig = camera.NewRig(l.Bookcase, camera.Viewport{Width: w, Height: h}, s.opts.PanSpeed)
	if s.opts.SkipIntro {
		s.rig.SkipIntro()
	}
	s.layout = l
	s.ctx = ctx
	s.unsubscribe = s.host.OnResize(s.Resize)
	s.state = StateRunning

	s.log.Info("scene running", "panels", len(l.Panels), "figures", len(l.Figures), "viewport", fmt.Sprintf("%dx%d", w, h))
	if o := l.Overlaps(); len(o) > 0 {
		s.log.Warn("layout has collisions", "count", len(o))
	}
	return true, nil
}

// Tick advances the camera by dt seconds and renders one frame. It returns false, and renders
// nothing, unless the scene is running. A cancelled context disposes the scene.
func (s *Scene) Tick(dt float32) bool {
	if s.state != StateRunning {
		return false
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.log.Debug("scene context done, disposing", "err", s.ctx.Err())
		s.Dispose()
		return false
	}
	wasIntro := !s.rig.Intro.Done()
	s.rig.Tick(dt)
	if wasIntro && s.rig.Intro.Done() {
		s.log.Debug("intro pan finished", "frames", s.frames+1)
	}
	s.renderer.Render(s.rig.View())
	s.frames++
	return true
}

// Resize updates the viewport and projection. Ignored unless running.
func (s *Scene) Resize(width, height int) {
	if s.state != StateRunning {
		return
	}
	s.rig.Resize(width, height)
	s.log.Debug("viewport resized", "width", width, "height", height)
}

// Dispose removes the resize listener, releases the orbit controls and the renderer, and stops
// the frame loop. Calling it more than once is harmless; disposing an unmounted scene keeps it
// from ever mounting.
func (s *Scene) Dispose() {
	switch s.state {
	case StateDisposed:
		return
	case StateRunning:
		if s.unsubscribe != nil {
			s.unsubscribe()
			s.unsubscribe = nil
		}
		s.rig.Dispose()
		s.renderer.Release()
		s.log.Info("scene disposed", "frames", s.frames)
	}
	s.state = StateDisposed
}

// State returns the current lifecycle stage.
func (s *Scene) State() State { return s.state }

// Running reports whether the frame loop should continue.
func (s *Scene) Running() bool { return s.state == StateRunning }

// Layout returns the built layout, or nil before Mount.
func (s *Scene) Layout() *layout.Layout { return s.layout }

// Controls returns the orbit controls for feeding user input, or nil before Mount.
func (s *Scene) Controls() *camera.Orbit {
	if s.rig == nil {
		return nil
	}
	return s.rig.Orbit
}

// View returns the current camera, or the zero View before Mount.
func (s *Scene) View() camera.View {
	if s.rig == nil {
		return camera.View{}
	}
	return s.rig.View()
}

// IntroDone reports whether the intro pan has finished.
func (s *Scene) IntroDone() bool {
	return s.rig != nil && s.rig.Intro.Done()
}

// Frames returns the number of frames rendered.
func (s *Scene) Frames() uint64 { return s.frames }
