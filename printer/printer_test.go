package printer

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

type fakeRunner struct {
	name string
	args []string
	err  error
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return []byte("request id is DS-RX1-42"), f.err
}

func writeTestPhoto(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "photo.png")
	img := imaging.New(64, 96, color.NRGBA{R: 180, G: 40, B: 40, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write test photo: %v", err)
	}
	return path
}

func TestRenderPhotoPDF(t *testing.T) {
	dir := t.TempDir()
	photoPath := writeTestPhoto(t, dir)

	pdfPath, err := RenderPhotoPDF(photoPath, filepath.Join(dir, "exports"))
	if err != nil {
		t.Fatalf("RenderPhotoPDF failed: %v", err)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF")
	}
}

func TestPrintSubmitsPDFToDevice(t *testing.T) {
	dir := t.TempDir()
	photoPath := writeTestPhoto(t, dir)

	runner := &fakeRunner{}
	p := New("DS-RX1", filepath.Join(dir, "exports"), runner)

	result := p.Print(photoPath)
	if !result.Success {
		t.Fatalf("Print failed: %s", result.Error)
	}
	if result.Filepath != photoPath {
		t.Errorf("Filepath = %q, want %q", result.Filepath, photoPath)
	}

	if runner.name != "lp" {
		t.Fatalf("command = %q, want lp", runner.name)
	}
	argStr := ""
	for _, a := range runner.args {
		argStr += a + " "
	}
	if !bytes.Contains([]byte(argStr), []byte("-d DS-RX1")) {
		t.Errorf("device flag missing from args: %v", runner.args)
	}
	if !bytes.Contains([]byte(argStr), []byte("landscape")) {
		t.Errorf("landscape option missing from args: %v", runner.args)
	}

	pdfPath := runner.args[len(runner.args)-1]
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("spooled PDF missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("spooled file is not a PDF")
	}
}

func TestPrintRequiresExistingFile(t *testing.T) {
	runner := &fakeRunner{}
	p := New("DS-RX1", t.TempDir(), runner)

	result := p.Print("/nonexistent/photo.png")
	if result.Success {
		t.Fatal("Print should fail for a missing file")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
	if runner.name != "" {
		t.Error("spooler must not be invoked when the photo is missing")
	}
}

func TestPrintReportsSpoolerFailure(t *testing.T) {
	dir := t.TempDir()
	photoPath := writeTestPhoto(t, dir)

	runner := &fakeRunner{err: os.ErrPermission}
	p := New("DS-RX1", filepath.Join(dir, "exports"), runner)

	result := p.Print(photoPath)
	if result.Success {
		t.Fatal("Print should report the spooler failure")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}
