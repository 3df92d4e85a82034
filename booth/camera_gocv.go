package booth

import (
	"fmt"
	"image"
	"log"
	"sync"

	"gocv.io/x/gocv"
)

// Capture resolution requested from the device. The device may deliver a
// lower resolution; the pipeline fits frames into layout slots regardless.
const (
	cameraFrameWidth  = 1920
	cameraFrameHeight = 1080
)

// GocvCamera reads frames from a local video device through OpenCV.
type GocvCamera struct {
	deviceID int

	mu      sync.Mutex
	capture *gocv.VideoCapture
}

func NewGocvCamera(deviceID int) *GocvCamera {
	return &GocvCamera{deviceID: deviceID}
}

func (c *GocvCamera) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		return fmt.Errorf("camera device %d is already open", c.deviceID)
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return fmt.Errorf("failed to open camera device %d: %w", c.deviceID, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, cameraFrameWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, cameraFrameHeight)

	c.capture = capture
	log.Printf("booth.camera: Opened camera device %d", c.deviceID)
	return nil
}

func (c *GocvCamera) Frame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, fmt.Errorf("camera device %d is not open", c.deviceID)
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("failed to read frame from camera device %d", c.deviceID)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert camera frame: %w", err)
	}
	return img, nil
}

func (c *GocvCamera) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	if err != nil {
		return fmt.Errorf("failed to close camera device %d: %w", c.deviceID, err)
	}
	log.Printf("booth.camera: Closed camera device %d", c.deviceID)
	return nil
}
