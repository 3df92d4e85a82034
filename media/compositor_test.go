package media

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func testFonts() CaptionFonts {
	return CaptionFonts{Regular: basicfont.Face7x13, Bold: basicfont.Face7x13}
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestDrawArchetypeCompositeDimensions(t *testing.T) {
	photo := solidImage(640, 360, color.NRGBA{R: 200, A: 255})
	out := DrawArchetypeComposite([]image.Image{photo, photo}, nil, nil, false, testFonts())

	bounds := out.Bounds()
	if bounds.Dx() != CanvasWidth || bounds.Dy() != CanvasHeight {
		t.Fatalf("expected %dx%d canvas, got %dx%d", CanvasWidth, CanvasHeight, bounds.Dx(), bounds.Dy())
	}
}

func TestDrawArchetypeCompositePlacesPhotosInSlots(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	out := DrawArchetypeComposite(
		[]image.Image{solidImage(640, 360, red), solidImage(640, 360, blue)},
		nil, nil, false, testFonts(),
	)

	centerX := CanvasWidth / 2
	topSlot := out.NRGBAAt(centerX, archetypePhotoOffsets[0]+photoSlotHeight/2)
	if topSlot != red {
		t.Errorf("top slot center = %v, want %v", topSlot, red)
	}
	bottomSlot := out.NRGBAAt(centerX, archetypePhotoOffsets[1]+photoSlotHeight/2)
	if bottomSlot != blue {
		t.Errorf("bottom slot center = %v, want %v", bottomSlot, blue)
	}

	// background between the slots stays untouched
	gap := out.NRGBAAt(centerX, archetypePhotoOffsets[0]+photoSlotHeight+5)
	if gap != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("gap pixel = %v, want white background", gap)
	}
}

func TestDrawArchetypeCompositeIgnoresExtraPhotos(t *testing.T) {
	photo := solidImage(640, 360, color.NRGBA{G: 255, A: 255})
	out := DrawArchetypeComposite(
		[]image.Image{photo, photo, photo, photo},
		nil, nil, false, testFonts(),
	)
	if out.Bounds().Dx() != CanvasWidth {
		t.Fatalf("unexpected canvas width %d", out.Bounds().Dx())
	}
}

func TestCaptionsOnlyAffectLowerQuarter(t *testing.T) {
	photo := solidImage(640, 360, color.NRGBA{R: 120, G: 50, B: 30, A: 255})
	photos := []image.Image{photo, photo}

	plain := DrawArchetypeComposite(photos, nil, nil, false, testFonts())
	captioned := DrawArchetypeComposite(photos, nil, []Caption{
		{Label: "Lucky Numbers", Text: "3 11 24 calm looks good on you"},
		{Label: "Festive Craving", Text: "Lemon madeleines, productivity, but make it pastry."},
	}, false, testFonts())

	limit := CanvasHeight * 3 / 4
	for y := 0; y < limit; y += 7 {
		for x := 0; x < CanvasWidth; x += 7 {
			if plain.NRGBAAt(x, y) != captioned.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) above the caption area changed", x, y)
			}
		}
	}
}

func TestDrawThemeCompositeDimensionsAndOverlay(t *testing.T) {
	photo := solidImage(1080, 1920, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	bare := DrawThemeComposite(photo, nil)
	if bare.Bounds().Dx() != CanvasWidth || bare.Bounds().Dy() != CanvasHeight {
		t.Fatalf("expected %dx%d canvas, got %dx%d", CanvasWidth, CanvasHeight, bare.Bounds().Dx(), bare.Bounds().Dy())
	}
	if got := bare.NRGBAAt(CanvasWidth/2, CanvasHeight/2); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("bare composite center = %v, want photo color", got)
	}

	overlay := solidImage(CanvasWidth, CanvasHeight, color.NRGBA{G: 255, A: 255})
	covered := DrawThemeComposite(photo, overlay)
	if got := covered.NRGBAAt(CanvasWidth/2, CanvasHeight/2); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("overlay composite center = %v, want overlay color", got)
	}
}

func TestWrapTextRespectsMaxWidth(t *testing.T) {
	face := basicfont.Face7x13
	text := "the quick brown fox jumps over the lazy dog near the riverbank"
	maxWidth := 150

	lines := wrapText(face, text, maxWidth)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(lines))
	}
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			t.Errorf("line %q measures %dpx, exceeds %dpx", line, w, maxWidth)
		}
	}
}

func TestWrapTextKeepsOversizedWordWhole(t *testing.T) {
	face := basicfont.Face7x13
	lines := wrapText(face, "supercalifragilisticexpialidocious", 20)
	if len(lines) != 1 || lines[0] != "supercalifragilisticexpialidocious" {
		t.Errorf("oversized word should stay on one line, got %v", lines)
	}
}

func TestEncodePNGProducesValidSignature(t *testing.T) {
	data, err := EncodePNG(solidImage(4, 4, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Errorf("output does not look like a PNG")
	}
}
