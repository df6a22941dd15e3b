// Package pdf lays a tall page-width capture out over consecutive pages.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/phpdave11/gofpdf"
)

const imageName = "capture"

// Layout describes the output pages.
type Layout struct {
	PageWidth   float64 // mm
	PageHeight  float64 // mm
	Orientation string  // "portrait" or "landscape"
	ImageType   string  // "jpeg" or "png"
	Title       string
}

// A4 is a portrait A4 layout for JPEG captures.
func A4() Layout {
	return Layout{PageWidth: 210, PageHeight: 297, Orientation: "portrait", ImageType: "jpeg"}
}

var errEmptyImage = errors.New("capture has no area")

// Compose writes a PDF that shows img scaled to the page width, one page
// height per page, with zero margins. It returns the number of pages.
func Compose(w io.Writer, img []byte, l Layout) (int, error) {
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return 0, fmt.Errorf("composing pdf: invalid page size %gx%g", l.PageWidth, l.PageHeight)
	}
	if len(img) == 0 {
		return 0, fmt.Errorf("composing pdf: %w", errEmptyImage)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation(l.Orientation),
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("sairam-quotation", true)
	if l.Title != "" {
		doc.SetTitle(l.Title, true)
	}

	opt := gofpdf.ImageOptions{ImageType: imageType(l.ImageType)}
	info := doc.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(img))
	if doc.Err() {
		return 0, fmt.Errorf("composing pdf: registering capture: %w", doc.Error())
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return 0, fmt.Errorf("composing pdf: %w", errEmptyImage)
	}

	height := l.PageWidth * info.Height() / info.Width()
	pages := PagesFor(height, l.PageHeight)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.ImageOptions(imageName, 0, -float64(i)*l.PageHeight, l.PageWidth, height, false, opt, 0, "")
	}
	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("composing pdf: %w", err)
	}
	return pages, nil
}

// PagesFor returns how many pages of pageHeight a content height spans.
// Empty content still takes one page.
func PagesFor(height, pageHeight float64) int {
	if height <= 0 || pageHeight <= 0 {
		return 1
	}
	return max(int(math.Ceil(height/pageHeight-1e-9)), 1)
}

// CountPages estimates the page count of a PDF by counting page objects.
func CountPages(data []byte) int {
	count := bytes.Count(data, []byte("/Type /Page"))
	count -= bytes.Count(data, []byte("/Type /Pages"))
	return max(count, 1)
}

func orientation(s string) string {
	if strings.EqualFold(s, "landscape") || strings.EqualFold(s, "l") {
		return "L"
	}
	return "P"
}

func imageType(s string) string {
	switch strings.ToLower(s) {
	case "png":
		return "PNG"
	default:
		return "JPG"
	}
}
