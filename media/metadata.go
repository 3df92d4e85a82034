package media

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// DecodeUserPhoto decodes an uploaded photo and normalizes its EXIF
// orientation so downstream compositing can treat the pixels as upright.
// Photos without EXIF data (canvas captures, PNGs) pass through untouched.
func DecodeUserPhoto(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	return NormalizeOrientation(img, readOrientation(data)), nil
}

// NormalizeOrientation applies the inverse transform for a standard EXIF
// orientation value (1-8). Unknown values leave the image unchanged.
func NormalizeOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// readOrientation probes the EXIF orientation tag, returning 0 when the
// photo carries no usable EXIF block.
func readOrientation(data []byte) int {
	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	tag, err := exifData.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	orientation, err := tag.Int(0)
	if err != nil {
		log.Printf("media.metadata: Unreadable EXIF orientation value: %v", err)
		return 0
	}
	return orientation
}
