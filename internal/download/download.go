package download

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "figure-shelf/1.0"

// DefaultClient is used when Fetch gets a nil client.
var DefaultClient = &http.Client{Timeout: 60 * time.Second}

// imageExts are the extensions the asset loader can decode.
var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".tga"}

// CachePath returns where Fetch stores url under destDir. The name keeps the URL's base name for
// readability and adds a short hash so different URLs with the same base name do not collide.
func CachePath(url, destDir string) string {
	sum := sha1.Sum([]byte(url))
	name := sanitizeFilename(filenameFromURL(url))
	ext := extensionFromURL(url)
	return filepath.Join(destDir, name+"-"+hex.EncodeToString(sum[:4])+ext)
}

// Fetch downloads url into destDir and returns the saved path. A file already cached for the same
// URL is returned without a request. Non-image responses are rejected.
func Fetch(ctx context.Context, client *http.Client, url, destDir string) (string, error) {
	if client == nil {
		client = DefaultClient
	}
	savedPath := CachePath(url, destDir)
	if cached, ok := lookupCache(savedPath); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}

	if filepath.Ext(savedPath) == "" {
		ext := extensionFromContentType(resp.Header.Get("Content-Type"))
		if ext == "" {
			return "", fmt.Errorf("download: %s: not an image (%q)", url, resp.Header.Get("Content-Type"))
		}
		savedPath += ext
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	// Write to a temp name first so a cancelled download never leaves a truncated cache entry.
	tmp := savedPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, savedPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// IsRemote reports whether an image reference is fetched over HTTP.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// lookupCache finds a non-empty cached file for savedPath. URLs without an image extension are
// saved under the extension their Content-Type named, so each known extension is tried.
func lookupCache(savedPath string) (string, bool) {
	candidates := []string{savedPath}
	if filepath.Ext(savedPath) == "" {
		candidates = candidates[:0]
		for _, e := range imageExts {
			candidates = append(candidates, savedPath+e)
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Size() > 0 {
			return c, true
		}
	}
	return "", false
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "tga"), strings.Contains(ct, "targa"):
		return ".tga"
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range imageExts {
		if ext == e {
			return ext
		}
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}
