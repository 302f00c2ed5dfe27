package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// windowHost adapts the raylib window to scene.Host. raylib has no resize callback, so poll
// checks once per frame and fans the new size out to listeners.
type windowHost struct {
	listeners map[int]func(int, int)
	next      int
}

func newWindowHost() *windowHost {
	return &windowHost{listeners: make(map[int]func(int, int))}
}

func (h *windowHost) Viewport() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (h *windowHost) OnResize(fn func(int, int)) func() {
	id := h.next
	h.next++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

func (h *windowHost) poll() {
	if !rl.IsWindowResized() {
		return
	}
	w, ht := h.Viewport()
	for _, fn := range h.listeners {
		fn(w, ht)
	}
}

// windowSurface is ready once raylib has created the window and GL context.
type windowSurface struct{}

func (windowSurface) Ready() bool { return rl.IsWindowReady() }
