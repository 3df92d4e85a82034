package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/playlistx/photoboothbackend/assets"
	"github.com/playlistx/photoboothbackend/quiz"
)

// Final composite dimensions. Both variants render to the same portrait
// canvas so downstream printing and export never branch on variant.
const (
	CanvasWidth  = 1280
	CanvasHeight = 1920
)

// Captured photos land in 16:9 slots sized to the camera stream's aspect.
const (
	photoSlotWidth  = 853
	photoSlotHeight = 480
)

// Vertical offsets of the two photo slots in the archetype layout.
var archetypePhotoOffsets = []int{318, 798}

// Caption layout constants.
const (
	captionLineHeight     = 44
	captionSectionSpacing = 12
	captionTypeSpacing    = 8
	captionMaxLines       = 6
)

var (
	captionDarkText  = color.NRGBA{R: 0x4A, G: 0x2E, B: 0x1C, A: 0xFF}
	captionLightText = color.NRGBA{R: 0xF2, G: 0xE9, B: 0xDA, A: 0xFF}
)

// Compositor renders final photobooth composites. Caption selection is the
// only randomized step; everything after selection is deterministic.
type Compositor struct {
	assets *assets.Resolver
	fonts  CaptionFonts
	rng    *rand.Rand
}

// NewCompositor wires a compositor over the packaged assets and loaded
// caption fonts.
func NewCompositor(res *assets.Resolver, fonts CaptionFonts, rng *rand.Rand) *Compositor {
	return &Compositor{assets: res, fonts: fonts, rng: rng}
}

// ComposeArchetype renders the quiz-variant composite: two captured photos,
// the archetype's frame on top, and two randomly selected caption blocks in
// the lower quarter. A missing frame asset aborts the composite; frames are
// not optional in this layout.
func (c *Compositor) ComposeArchetype(photos []image.Image, archetype quiz.Archetype) ([]byte, error) {
	info, ok := quiz.Archetypes[archetype]
	if !ok {
		return nil, fmt.Errorf("unknown archetype '%s'", archetype)
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("no photos to compose")
	}

	frameName, err := c.assets.TemplateForArchetype(archetype)
	if err != nil {
		return nil, err
	}
	frame, err := c.assets.LoadImage(frameName)
	if err != nil {
		return nil, fmt.Errorf("failed to load frame for archetype '%s': %w", archetype, err)
	}

	captions, err := SelectCaptions(c.rng, quiz.ContentLabels, info.Contents)
	if err != nil {
		return nil, fmt.Errorf("failed to select captions for archetype '%s': %w", archetype, err)
	}

	canvas := DrawArchetypeComposite(photos, frame, captions, info.Dark, c.fonts)
	return EncodePNG(canvas)
}

// ComposeTheme renders the racing-variant composite: one photo filling the
// canvas with the theme's overlay on top. The overlay is decorative, so a
// missing overlay asset degrades to the bare photo instead of failing the
// session.
func (c *Compositor) ComposeTheme(photo image.Image, theme quiz.RacingTheme) ([]byte, error) {
	if photo == nil {
		return nil, fmt.Errorf("no photo to compose")
	}

	var overlay image.Image
	overlayName, err := c.assets.TemplateForTheme(theme)
	if err != nil {
		return nil, err
	}
	overlay, err = c.assets.LoadImage(overlayName)
	if err != nil {
		log.Printf("media.compositor: Skipping overlay for theme '%s': %v", theme, err)
		overlay = nil
	}

	canvas := DrawThemeComposite(photo, overlay)
	return EncodePNG(canvas)
}

// DrawArchetypeComposite is the deterministic drawing core for the quiz
// variant. Photos beyond the available slots are ignored.
func DrawArchetypeComposite(photos []image.Image, frame image.Image, captions []Caption, dark bool, fonts CaptionFonts) *image.NRGBA {
	canvas := imaging.New(CanvasWidth, CanvasHeight, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	slotX := (CanvasWidth - photoSlotWidth) / 2
	for i, photo := range photos {
		if i >= len(archetypePhotoOffsets) {
			break
		}
		fitted := imaging.Fill(photo, photoSlotWidth, photoSlotHeight, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, fitted, image.Pt(slotX, archetypePhotoOffsets[i]))
	}

	if frame != nil {
		full := imaging.Resize(frame, CanvasWidth, CanvasHeight, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, full, image.Pt(0, 0), 1.0)
	}

	textColor := captionDarkText
	if dark {
		textColor = captionLightText
	}
	drawCaptions(canvas, captions, textColor, fonts)
	return canvas
}

// DrawThemeComposite is the deterministic drawing core for the racing
// variant. A nil overlay yields the bare photo fitted to the canvas.
func DrawThemeComposite(photo image.Image, overlay image.Image) *image.NRGBA {
	canvas := imaging.Fill(photo, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos)
	if overlay != nil {
		full := imaging.Resize(overlay, CanvasWidth, CanvasHeight, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, full, image.Pt(0, 0), 1.0)
	}
	return canvas
}

// drawCaptions lays the caption blocks out in the lower quarter of the
// canvas: bold category label, then wrapped caption text, center aligned.
// Shorter text floats toward the vertical middle of the reserved area.
func drawCaptions(dst *image.NRGBA, captions []Caption, textColor color.NRGBA, fonts CaptionFonts) {
	maxTextWidth := int(float64(CanvasWidth) * 0.45)
	centerX := CanvasWidth / 2

	type block struct {
		labelLines []string
		textLines  []string
	}
	blocks := make([]block, 0, len(captions))
	totalLines := 0
	for _, caption := range captions {
		b := block{
			labelLines: wrapText(fonts.Bold, caption.Label, maxTextWidth),
			textLines:  wrapText(fonts.Regular, caption.Text, maxTextWidth),
		}
		totalLines += len(b.labelLines) + len(b.textLines)
		blocks = append(blocks, b)
	}

	y := CanvasHeight*3/4 + captionSectionSpacing*2
	if slack := captionMaxLines - totalLines - 1; slack > 0 {
		y += slack * captionLineHeight / 2
	}

	for _, b := range blocks {
		y = drawWrappedLines(dst, fonts.Bold, b.labelLines, centerX, y, textColor)
		y += captionTypeSpacing
		y = drawWrappedLines(dst, fonts.Regular, b.textLines, centerX, y, textColor)
		y += captionSectionSpacing
	}
}

// wrapText greedily breaks text on spaces so each line fits maxWidth. A
// single word wider than maxWidth gets its own line rather than being cut.
func wrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// drawWrappedLines draws each line centered horizontally, treating y as the
// vertical center of the first line, and returns the y past the last line.
func drawWrappedLines(dst *image.NRGBA, face font.Face, lines []string, centerX, y int, textColor color.NRGBA) int {
	for i, line := range lines {
		drawCenteredText(dst, face, line, centerX, y+i*captionLineHeight, textColor)
	}
	return y + len(lines)*captionLineHeight
}

// drawCenteredText draws text with its horizontal center at centerX and its
// vertical center at centerY.
func drawCenteredText(dst *image.NRGBA, face font.Face, text string, centerX, centerY int, textColor color.NRGBA) {
	width := font.MeasureString(face, text)
	metrics := face.Metrics()
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(centerX) - width/2,
			Y: fixed.I(centerY) + (metrics.Ascent-metrics.Descent)/2,
		},
	}
	drawer.DrawString(text)
}

// EncodePNG renders any image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}
	return buf.Bytes(), nil
}
