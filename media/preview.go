package media

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
)

// Preview frames render at the kiosk's portrait screen resolution with the
// live camera strip centered vertically.
const (
	PreviewWidth  = 1080
	PreviewHeight = 1920

	previewVideoY = 540
)

var (
	previewBackground = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	badgeFill         = color.NRGBA{R: 0xF2, G: 0xE9, B: 0xDA, A: 0xBF}
	badgeStroke       = color.NRGBA{R: 0x9C, G: 0x77, B: 0x4D, A: 0xFF}
)

// PreviewRenderer draws the on-screen capture view: the mirrored live camera
// frame (or a frozen snapshot after capture) plus the countdown badge.
type PreviewRenderer struct {
	fonts CaptionFonts
}

func NewPreviewRenderer(fonts CaptionFonts) *PreviewRenderer {
	return &PreviewRenderer{fonts: fonts}
}

// RenderFrame composes one preview frame. The live frame is mirrored so the
// visitor sees themselves as in a mirror; a non-nil still takes precedence
// and is drawn as-is because snapshots are already flipped when taken.
// Countdown values 1..3 draw the badge; 0 or below draws none.
func (r *PreviewRenderer) RenderFrame(live image.Image, still image.Image, countdown int) *image.NRGBA {
	canvas := imaging.New(PreviewWidth, PreviewHeight, previewBackground)

	videoX := (PreviewWidth - photoSlotWidth) / 2
	switch {
	case still != nil:
		fitted := imaging.Fill(still, photoSlotWidth, photoSlotHeight, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, fitted, image.Pt(videoX, previewVideoY))
	case live != nil:
		mirrored := imaging.FlipH(live)
		fitted := imaging.Fill(mirrored, photoSlotWidth, photoSlotHeight, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, fitted, image.Pt(videoX, previewVideoY))
	}

	if countdown > 0 {
		cx := videoX + 80
		cy := previewVideoY + photoSlotHeight - 80
		fillCircle(canvas, cx, cy, 45, badgeFill)
		strokeCircle(canvas, cx, cy, 45, 4, badgeStroke)
		drawCenteredText(canvas, r.fonts.Bold, strconv.Itoa(countdown), cx, cy, badgeStroke)
	}
	return canvas
}

func fillCircle(dst *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				blendPixel(dst, x, y, c)
			}
		}
	}
}

func strokeCircle(dst *image.NRGBA, cx, cy, r, width int, c color.NRGBA) {
	outer := r * r
	inner := (r - width) * (r - width)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			d := dx*dx + dy*dy
			if d <= outer && d >= inner {
				blendPixel(dst, x, y, c)
			}
		}
	}
}

// blendPixel does straight alpha blending of c over the destination pixel.
func blendPixel(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Pt(x, y).In(dst.Rect)) {
		return
	}
	if c.A == 0xFF {
		dst.SetNRGBA(x, y, c)
		return
	}
	base := dst.NRGBAAt(x, y)
	a := int(c.A)
	inv := 255 - a
	dst.SetNRGBA(x, y, color.NRGBA{
		R: uint8((int(c.R)*a + int(base.R)*inv) / 255),
		G: uint8((int(c.G)*a + int(base.G)*inv) / 255),
		B: uint8((int(c.B)*a + int(base.B)*inv) / 255),
		A: 0xFF,
	})
}
