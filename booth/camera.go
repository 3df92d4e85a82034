package booth

import "image"

// CameraSource abstracts the physical camera so the capture pipeline can be
// driven by a fake in tests.
type CameraSource interface {
	// Start opens the device. Calling Start on an open source is an error.
	Start() error
	// Frame grabs the current frame. Only valid between Start and Stop.
	Frame() (image.Image, error)
	// Stop releases the device. Stopping a stopped source is a no-op.
	Stop() error
}
