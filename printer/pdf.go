package printer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Print media is 4x6 inch photo paper in landscape.
const (
	pageWidthIn  = 6.0
	pageHeightIn = 4.0
)

// RenderPhotoPDF wraps a photo in a single-page borderless 4x6 inch PDF so
// the print spooler receives fixed physical dimensions regardless of the
// photo's pixel size. Returns the path of the written PDF.
func RenderPhotoPDF(photoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create print output directory '%s': %w", outputDir, err)
	}

	imageType := "PNG"
	if ext := strings.ToLower(filepath.Ext(photoPath)); ext == ".jpg" || ext == ".jpeg" {
		imageType = "JPG"
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: pageWidthIn, Ht: pageHeightIn},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.ImageOptions(photoPath, 0, 0, pageWidthIn, pageHeightIn, false, gofpdf.ImageOptions{
		ImageType: imageType,
	}, 0, "")

	outPath := filepath.Join(outputDir, fmt.Sprintf("print-%d.pdf", time.Now().UnixNano()))
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("failed to write print PDF '%s': %w", outPath, err)
	}
	return outPath, nil
}
