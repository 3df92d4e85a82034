package printer

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"
)

// Result is the outcome of one print request. Error carries a message
// instead of an error value so the result can cross the JSON bridge as-is.
type Result struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

// CommandRunner abstracts spawning the print command so tests never touch a
// real spooler.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// ExecRunner runs commands through os/exec.
var ExecRunner CommandRunner = execRunner{}

// How long the spooled helper PDF stays on disk after the job is handed to
// the spooler. CUPS reads the file when the job actually prints, so it
// cannot be removed immediately.
const spoolFileTTL = 5 * time.Minute

// Printer submits photos to the kiosk's dye-sub printer through the system
// spooler. Jobs print silently; no dialog ever reaches the kiosk screen.
type Printer struct {
	device    string
	outputDir string
	runner    CommandRunner
}

// New builds a printer for the named spooler device. Helper PDFs are written
// under outputDir.
func New(device, outputDir string, runner CommandRunner) *Printer {
	if runner == nil {
		runner = ExecRunner
	}
	return &Printer{device: device, outputDir: outputDir, runner: runner}
}

// Print renders the photo into a 4x6 landscape PDF and submits it to the
// spooler. The photo file must already exist on disk; callers print only
// after the save completes, never on a timer.
func (p *Printer) Print(photoPath string) Result {
	if _, err := os.Stat(photoPath); err != nil {
		if os.IsNotExist(err) {
			return Result{Error: fmt.Sprintf("photo file does not exist: %s", photoPath)}
		}
		return Result{Error: fmt.Sprintf("cannot access photo file: %v", err)}
	}

	pdfPath, err := RenderPhotoPDF(photoPath, p.outputDir)
	if err != nil {
		return Result{Error: err.Error()}
	}

	output, err := p.runner.Run("lp",
		"-d", p.device,
		"-o", "landscape",
		"-o", "fit-to-page",
		pdfPath,
	)
	if err != nil {
		log.Printf("printer: Print command failed for %s: %v (%s)", photoPath, err, output)
		return Result{Error: fmt.Sprintf("print command failed: %v", err), Filepath: photoPath}
	}

	p.scheduleCleanup(pdfPath)
	log.Printf("printer: Submitted %s to device %s", photoPath, p.device)
	return Result{Success: true, Filepath: photoPath}
}

// scheduleCleanup removes the helper PDF once the spooler has had time to
// consume it. Fire and forget; a failed removal only logs.
func (p *Printer) scheduleCleanup(pdfPath string) {
	time.AfterFunc(spoolFileTTL, func() {
		if err := os.Remove(pdfPath); err != nil && !os.IsNotExist(err) {
			log.Printf("printer: Failed to remove spooled PDF %s: %v", pdfPath, err)
		}
	})
}
