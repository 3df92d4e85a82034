package media

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// CaptionFonts bundles the two faces the compositor draws with.
type CaptionFonts struct {
	Regular font.Face
	Bold    font.Face
}

// LoadCaptionFonts parses the two caption TTF files at the given pixel size.
func LoadCaptionFonts(regularPath, boldPath string, size float64) (CaptionFonts, error) {
	regular, err := loadFace(regularPath, size)
	if err != nil {
		return CaptionFonts{}, fmt.Errorf("failed to load caption font: %w", err)
	}
	bold, err := loadFace(boldPath, size)
	if err != nil {
		return CaptionFonts{}, fmt.Errorf("failed to load bold caption font: %w", err)
	}
	return CaptionFonts{Regular: regular, Bold: bold}, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file '%s': %w", path, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font file '%s': %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face from '%s': %w", path, err)
	}
	return face, nil
}
