package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/facette/natsort"

	"github.com/playlistx/photoboothbackend/quiz"
)

// Resolver maps logical asset names to packaged filesystem paths, or to a
// dev-server URL when one is configured. Template resolution is injective:
// no two themes or archetypes ever share a template file.
type Resolver struct {
	baseDir    string
	devBaseURL string
}

// NewResolver creates a resolver rooted at baseDir. devBaseURL, when
// non-empty, overrides path resolution for URL consumers (the kiosk UI in
// dev mode); image loading always goes through the filesystem.
func NewResolver(baseDir, devBaseURL string) (*Resolver, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("invalid assets base directory '%s': %w", baseDir, err)
	}
	return &Resolver{baseDir: absBase, devBaseURL: strings.TrimRight(devBaseURL, "/")}, nil
}

// URL resolves a logical name for the kiosk UI: a dev-server URL when
// configured, a packaged file path otherwise.
func (r *Resolver) URL(name string) string {
	name = strings.TrimPrefix(name, "/")
	if r.devBaseURL != "" {
		return r.devBaseURL + "/" + name
	}
	return filepath.Join(r.baseDir, filepath.FromSlash(name))
}

// Path resolves a logical name to an absolute file path, rejecting names
// that escape the assets directory.
func (r *Resolver) Path(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	full := filepath.Clean(filepath.Join(r.baseDir, filepath.FromSlash(name)))
	if !strings.HasPrefix(full, r.baseDir) {
		return "", fmt.Errorf("asset name '%s' resolves outside assets directory", name)
	}
	return full, nil
}

// LoadImage opens a logical asset as a decoded image.
func (r *Resolver) LoadImage(name string) (image.Image, error) {
	full, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset '%s': %w", name, err)
	}
	return img, nil
}

// TemplateForArchetype returns the frame asset name for a quiz archetype.
func (r *Resolver) TemplateForArchetype(a quiz.Archetype) (string, error) {
	n := quiz.FrameNumber(a)
	if n == 0 {
		return "", fmt.Errorf("no frame asset for archetype '%s'", a)
	}
	return fmt.Sprintf("images/frame-%d.png", n), nil
}

// TemplateForTheme returns the overlay asset name for a racing theme.
func (r *Resolver) TemplateForTheme(t quiz.RacingTheme) (string, error) {
	if !quiz.IsValidTheme(string(t)) {
		return "", fmt.Errorf("no overlay asset for theme '%s'", t)
	}
	return fmt.Sprintf("images/overlay-%s.png", t), nil
}

// ListFrames returns the available frame assets in natural order, so
// frame-10.png sorts after frame-9.png rather than after frame-1.png.
func (r *Resolver) ListFrames() ([]string, error) {
	dir := filepath.Join(r.baseDir, "images")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list frame assets in %s: %w", dir, err)
	}

	var frames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame-") && strings.HasSuffix(name, ".png") {
			frames = append(frames, name)
		}
	}
	natsort.Sort(frames)
	return frames, nil
}
