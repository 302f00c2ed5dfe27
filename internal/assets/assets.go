// Package assets loads figure images in the background.
//
// Load never blocks: it returns a Handle at once and decodes on a bounded set of goroutines.
// Callers poll the handle each frame and use the image whenever it shows up. A failed load is
// logged and left failed; nothing retries.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/log"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"

	"figure-shelf/internal/download"
)

// ErrNoImage is the error of a handle created for an empty reference.
var ErrNoImage = errors.New("assets: no image")

// Options configures a Loader. Zero values pick defaults.
type Options struct {
	// Workers bounds concurrent decodes. Default 4.
	Workers int64
	// MaxSize is the longest edge kept in memory; larger images are scaled down. Default 1024.
	MaxSize int
	// CacheDir receives downloaded remote images. Default "assets/cache".
	CacheDir string
	Logger   *log.Logger
}

// Handle is a pending or finished image load.
type Handle struct {
	ref  string
	done chan struct{}
	img  image.Image
	err  error
}

// Ref returns the reference the handle was created for.
func (h *Handle) Ref() string { return h.ref }

// Ready reports whether the load finished, successfully or not.
func (h *Handle) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Image returns the decoded image once the load succeeded.
func (h *Handle) Image() (image.Image, bool) {
	if !h.Ready() || h.err != nil {
		return nil, false
	}
	return h.img, true
}

// Err returns the load error, or nil while pending or on success.
func (h *Handle) Err() error {
	if !h.Ready() {
		return nil
	}
	return h.err
}

// Wait blocks until the load finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handle) finish(img image.Image, err error) {
	h.img, h.err = img, err
	close(h.done)
}

// Loader deduplicates references and decodes them in the background.
type Loader struct {
	opts   Options
	log    *log.Logger
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	handles map[string]*Handle
	order   []string
}

// NewLoader returns a loader whose pending work stops when ctx ends or Close is called.
func NewLoader(ctx context.Context, opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 1024
	}
	if opts.CacheDir == "" {
		opts.CacheDir = "assets/cache"
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Loader{
		opts:    opts,
		log:     lg,
		sem:     semaphore.NewWeighted(opts.Workers),
		ctx:     ctx,
		cancel:  cancel,
		handles: make(map[string]*Handle),
	}
}

// Load starts loading ref unless it is already known, and returns its handle.
func (l *Loader) Load(ref string) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.handles[ref]; ok {
		return h
	}
	h := &Handle{ref: ref, done: make(chan struct{})}
	l.handles[ref] = h
	l.order = append(l.order, ref)

	if ref == "" {
		h.finish(nil, ErrNoImage)
		return h
	}
	l.wg.Add(1)
	go l.run(h)
	return h
}

func (l *Loader) run(h *Handle) {
	defer l.wg.Done()
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		h.finish(nil, err)
		return
	}
	defer l.sem.Release(1)

	img, err := l.decode(h.ref)
	if err != nil {
		l.log.Warn("figure image unavailable, using fallback color", "ref", h.ref, "err", err)
		h.finish(nil, err)
		return
	}
	b := img.Bounds()
	l.log.Debug("figure image loaded", "ref", h.ref, "width", b.Dx(), "height", b.Dy())
	h.finish(img, nil)
}

func (l *Loader) decode(ref string) (image.Image, error) {
	path := ref
	if download.IsRemote(ref) {
		p, err := download.Fetch(l.ctx, nil, ref, l.opts.CacheDir)
		if err != nil {
			return nil, err
		}
		path = p
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()
	img, err := decoderFor(path)(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return Fit(img, l.opts.MaxSize), nil
}

// decoderFor picks the decoder by extension. TGA has no magic number, so sniffing with
// image.Decode cannot tell it apart from other formats.
func decoderFor(path string) func(io.Reader) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode
	case ".jpg", ".jpeg":
		return jpeg.Decode
	case ".gif":
		return gif.Decode
	case ".webp":
		return webp.Decode
	case ".tga":
		return tga.Decode
	}
	return func(r io.Reader) (image.Image, error) {
		img, _, err := image.Decode(r)
		return img, err
	}
}

// Fit scales img down so its longest edge is at most maxSize, keeping the aspect ratio.
// Smaller images are returned unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// Stats counts handles by state.
type Stats struct {
	Total   int
	Loaded  int
	Failed  int
	Pending int
}

// Stats returns the current counts.
func (l *Loader) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	var s Stats
	for _, ref := range l.order {
		h := l.handles[ref]
		s.Total++
		switch {
		case !h.Ready():
			s.Pending++
		case h.err != nil:
			s.Failed++
		default:
			s.Loaded++
		}
	}
	return s
}

// Close cancels pending loads and waits for running ones.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
