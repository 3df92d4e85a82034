package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playlistx/photoboothbackend/quiz"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := NewResolver(dir, "")
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	return r, dir
}

func TestTemplateForArchetypeIsInjective(t *testing.T) {
	r, _ := newTestResolver(t)

	seen := make(map[string]quiz.Archetype)
	for _, a := range quiz.ArchetypeOrder {
		name, err := r.TemplateForArchetype(a)
		if err != nil {
			t.Fatalf("TemplateForArchetype(%s) failed: %v", a, err)
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("template %q shared by %s and %s", name, prev, a)
		}
		seen[name] = a
	}

	if _, err := r.TemplateForArchetype("unknown"); err == nil {
		t.Error("expected error for unknown archetype")
	}
}

func TestTemplateForThemeIsInjective(t *testing.T) {
	r, _ := newTestResolver(t)

	seen := make(map[string]quiz.RacingTheme)
	for _, theme := range quiz.RacingThemeOrder {
		name, err := r.TemplateForTheme(theme)
		if err != nil {
			t.Fatalf("TemplateForTheme(%s) failed: %v", theme, err)
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("overlay %q shared by %s and %s", name, prev, theme)
		}
		seen[name] = theme
	}

	if _, err := r.TemplateForTheme("spaceship"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	r, _ := newTestResolver(t)
	if _, err := r.Path("../outside.png"); err == nil {
		t.Error("expected traversal to be rejected")
	}
}

func TestURLPrefersDevServer(t *testing.T) {
	dir := t.TempDir()
	r, err := NewResolver(dir, "http://localhost:5173/")
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if got := r.URL("images/frame-1.png"); got != "http://localhost:5173/images/frame-1.png" {
		t.Errorf("URL = %q", got)
	}

	packaged, err := NewResolver(dir, "")
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if got := packaged.URL("images/frame-1.png"); got != filepath.Join(dir, "images", "frame-1.png") {
		t.Errorf("packaged URL = %q", got)
	}
}

func TestListFramesNaturalOrder(t *testing.T) {
	r, dir := newTestResolver(t)

	imagesDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for _, name := range []string{"frame-10.png", "frame-2.png", "frame-1.png", "overlay-f1.png"} {
		if err := os.WriteFile(filepath.Join(imagesDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	frames, err := r.ListFrames()
	if err != nil {
		t.Fatalf("ListFrames failed: %v", err)
	}
	want := []string{"frame-1.png", "frame-2.png", "frame-10.png"}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frames[%d] = %s, want %s", i, frames[i], want[i])
		}
	}
}
