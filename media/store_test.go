package media

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeDataURIRoundTrip(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01, 0x02}
	uri := EncodeDataURI("image/png", payload)

	mime, data, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("expected mime image/png, got %s", mime)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload mismatch after round trip")
	}
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not a data uri",
		"data:image/png;base64,",
		"data:;base64,aGVsbG8=",
		"data:image/png,aGVsbG8=",
		"data:image/png;base64,!!!not-base64!!!",
	}
	for _, input := range cases {
		if _, _, err := DecodeDataURI(input); err == nil {
			t.Errorf("expected error for %q, got none", input)
		}
	}
}

func TestPhotoFileName(t *testing.T) {
	cases := []struct {
		id, name, want string
	}{
		{"abc-123", "Jane Doe", "abc-123-Jane-Doe.png"},
		{"abc-123", "  spaced  ", "abc-123-spaced.png"},
		{"abc-123", "O'Neill <script>", "abc-123-O-Neill--script-.png"},
		{"abc-123", "", "abc-123-.png"},
	}
	for _, tc := range cases {
		if got := PhotoFileName(tc.id, tc.name); got != tc.want {
			t.Errorf("PhotoFileName(%q, %q) = %q, want %q", tc.id, tc.name, got, tc.want)
		}
	}
}

func TestSavePhotoWritesDecodedBytes(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore failed: %v", err)
	}

	payload := []byte("fake image bytes")
	path, err := store.SavePhoto(EncodeDataURI("image/png", payload), "shot.png")
	if err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved photo: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Errorf("saved bytes differ from decoded payload")
	}
}

func TestSavePhotoRejectsInvalidDataURI(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPhotoStore(dir)
	if err != nil {
		t.Fatalf("NewPhotoStore failed: %v", err)
	}

	if _, err := store.SavePhoto("nonsense", "shot.png"); err == nil {
		t.Fatal("expected error for invalid data URI")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list photo dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files after rejected save, found %d", len(entries))
	}
}

func TestSaveBytesRejectsTraversal(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore failed: %v", err)
	}

	if _, err := store.SaveBytes([]byte("x"), "../escape.png"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestOpenReturnsSavedPhoto(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewPhotoStore failed: %v", err)
	}

	payload := []byte("photo contents")
	if _, err := store.SaveBytes(payload, "a.png"); err != nil {
		t.Fatalf("SaveBytes failed: %v", err)
	}

	reader, err := store.Open("a.png")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	read, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read photo: %v", err)
	}
	if !bytes.Equal(read, payload) {
		t.Errorf("read bytes differ from saved payload")
	}
}
