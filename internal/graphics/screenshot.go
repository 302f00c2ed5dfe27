package graphics

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// encodeScreenshot writes img to w in the format named by ext (".webp" or ".png").
func encodeScreenshot(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("graphics: screenshot format %q not supported (use .webp or .png)", ext)
}

// saveScreenshot reads back the current framebuffer and writes it to path. Call before
// EndDrawing, once the 3D pass has been flushed.
func saveScreenshot(path string) error {
	shot := rl.LoadImageFromScreen()
	img := shot.ToImage()
	rl.UnloadImage(shot)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeScreenshot(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// CheckScreenshotPath reports an error when path does not name a supported image format.
func CheckScreenshotPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp", ".png":
		return nil
	}
	return fmt.Errorf("graphics: screenshot %s: format not supported (use .webp or .png)", path)
}
