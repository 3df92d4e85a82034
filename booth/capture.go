package booth

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/playlistx/photoboothbackend/media"
)

// Clock abstracts countdown timing so tests run instantly.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the production clock.
var RealClock Clock = realClock{}

const (
	countdownStart = 3
	maxRetakes     = 2
)

var (
	// ErrCameraInactive is returned when an operation needs a running stream.
	ErrCameraInactive = errors.New("camera is not active")
	// ErrCaptureBusy is returned while a countdown is in progress.
	ErrCaptureBusy = errors.New("a capture is already in progress")
	// ErrQuotaReached is returned when the session already has all its photos.
	ErrQuotaReached = errors.New("photo quota reached")
	// ErrNoRetakesLeft is returned after the retake allowance is spent.
	ErrNoRetakesLeft = errors.New("no retakes left")
	// ErrNothingToRetake is returned when no photo has been taken yet.
	ErrNothingToRetake = errors.New("no photo to retake")
)

// PipelineStatus is a snapshot of the capture pipeline for the kiosk UI.
type PipelineStatus struct {
	Active      bool `json:"active"`
	Countdown   int  `json:"countdown"`
	PhotosTaken int  `json:"photosTaken"`
	PhotosMax   int  `json:"photosMax"`
	RetakesUsed int  `json:"retakesUsed"`
	RetakesLeft int  `json:"retakesLeft"`
}

// CapturePipeline drives one visitor's photo capture: live preview,
// countdown, snapshot, bounded retakes. It is safe for concurrent use; the
// countdown itself runs synchronously inside Capture.
type CapturePipeline struct {
	camera    CameraSource
	clock     Clock
	maxPhotos int

	mu        sync.Mutex
	active    bool
	busy      bool
	countdown int // -1 when no countdown is showing
	photos    []image.Image
	lastShot  image.Image
	retakes   int
	lastErr   error
}

// NewCapturePipeline builds a pipeline taking maxPhotos per session. The
// quiz variant takes 2, the racing variant 1.
func NewCapturePipeline(camera CameraSource, maxPhotos int, clock Clock) *CapturePipeline {
	if clock == nil {
		clock = RealClock
	}
	return &CapturePipeline{
		camera:    camera,
		clock:     clock,
		maxPhotos: maxPhotos,
		countdown: -1,
	}
}

// StartCamera opens the camera stream. Starting an already-active pipeline
// is a no-op so the kiosk UI can call it on every screen entry.
func (p *CapturePipeline) StartCamera() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		return nil
	}
	if err := p.camera.Start(); err != nil {
		p.lastErr = err
		return fmt.Errorf("failed to start camera: %w", err)
	}
	p.active = true
	p.lastShot = nil
	p.lastErr = nil
	return nil
}

// Capture runs the full countdown and takes one photo. It blocks for the
// countdown duration, ticking 3, 2, 1, then snapping at 0. The snapshot is
// flipped horizontally so the saved photo matches the mirrored preview. When
// the session quota is reached the camera stream stops.
func (p *CapturePipeline) Capture() (image.Image, error) {
	p.mu.Lock()
	switch {
	case !p.active:
		p.mu.Unlock()
		return nil, ErrCameraInactive
	case p.busy:
		p.mu.Unlock()
		return nil, ErrCaptureBusy
	case len(p.photos) >= p.maxPhotos:
		p.mu.Unlock()
		return nil, ErrQuotaReached
	}
	p.busy = true
	p.mu.Unlock()

	for tick := countdownStart; tick > 0; tick-- {
		p.setCountdown(tick)
		<-p.clock.After(time.Second)
	}
	p.setCountdown(0)

	frame, err := p.camera.Frame()
	if err != nil {
		p.finishCapture(nil, err)
		return nil, fmt.Errorf("failed to capture photo: %w", err)
	}

	shot := imaging.FlipH(frame)
	p.finishCapture(shot, nil)
	return shot, nil
}

func (p *CapturePipeline) setCountdown(value int) {
	p.mu.Lock()
	p.countdown = value
	p.mu.Unlock()
}

func (p *CapturePipeline) finishCapture(shot image.Image, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.busy = false
	p.countdown = -1
	p.lastErr = err
	if shot == nil {
		return
	}

	p.photos = append(p.photos, shot)
	p.lastShot = shot
	if len(p.photos) >= p.maxPhotos {
		if stopErr := p.camera.Stop(); stopErr != nil {
			log.Printf("booth.capture: Failed to stop camera after final photo: %v", stopErr)
		}
		p.active = false
	}
}

// Retake discards the most recent photo and re-arms the camera. At most two
// retakes are allowed per session.
func (p *CapturePipeline) Retake() error {
	p.mu.Lock()

	switch {
	case p.busy:
		p.mu.Unlock()
		return ErrCaptureBusy
	case len(p.photos) == 0:
		p.mu.Unlock()
		return ErrNothingToRetake
	case p.retakes >= maxRetakes:
		p.mu.Unlock()
		return ErrNoRetakesLeft
	}

	p.photos = p.photos[:len(p.photos)-1]
	p.retakes++
	p.lastShot = nil
	needsRestart := !p.active
	p.mu.Unlock()

	if needsRestart {
		return p.StartCamera()
	}
	return nil
}

// Advance finalizes the capture phase: the camera stream stops and the
// session's photos are handed to the caller.
func (p *CapturePipeline) Advance() ([]image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		return nil, ErrCaptureBusy
	}
	if len(p.photos) == 0 {
		return nil, errors.New("no photos captured")
	}

	if p.active {
		if err := p.camera.Stop(); err != nil {
			log.Printf("booth.capture: Failed to stop camera on advance: %v", err)
		}
		p.active = false
	}

	photos := make([]image.Image, len(p.photos))
	copy(photos, p.photos)
	return photos, nil
}

// Reset clears all state for the next visitor, stopping the camera if it is
// still running.
func (p *CapturePipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		if err := p.camera.Stop(); err != nil {
			log.Printf("booth.capture: Failed to stop camera on reset: %v", err)
		}
	}
	p.active = false
	p.busy = false
	p.countdown = -1
	p.photos = nil
	p.lastShot = nil
	p.retakes = 0
	p.lastErr = nil
}

// Status returns a snapshot for the kiosk UI.
func (p *CapturePipeline) Status() PipelineStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PipelineStatus{
		Active:      p.active,
		Countdown:   p.countdown,
		PhotosTaken: len(p.photos),
		PhotosMax:   p.maxPhotos,
		RetakesUsed: p.retakes,
		RetakesLeft: maxRetakes - p.retakes,
	}
}

// LastError returns the most recent camera failure, if any.
func (p *CapturePipeline) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Photos returns a copy of the photos captured so far.
func (p *CapturePipeline) Photos() []image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	photos := make([]image.Image, len(p.photos))
	copy(photos, p.photos)
	return photos
}

// StreamPreview renders preview frames at the given interval until ctx is
// canceled, passing each frame to emit. While the stream is inactive the
// frozen last shot is shown instead of live video.
func (p *CapturePipeline) StreamPreview(ctx context.Context, renderer *media.PreviewRenderer, interval time.Duration, emit func(*image.NRGBA)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		active := p.active
		countdown := p.countdown
		still := p.lastShot
		p.mu.Unlock()

		var live image.Image
		if active {
			frame, err := p.camera.Frame()
			if err != nil {
				log.Printf("booth.capture: Preview frame read failed: %v", err)
				continue
			}
			live = frame
			still = nil
		}
		emit(renderer.RenderFrame(live, still, countdown))
	}
}
