package compositor

import (
	"math"
	"strconv"
)

// Rect is an element's rendered size in CSS pixels.
type Rect struct {
	Width  float64
	Height float64
}

// Fit is the pagination decision for one measured element.
type Fit struct {
	HeightUnits  float64 // rendered height converted to page units
	TotalPages   int
	TargetHeight float64 // height the element is stretched to, in page units
}

// HeightUnits converts a rendered height to page units assuming the
// rendered width spans exactly one page width.
func HeightUnits(r Rect, pageWidth float64) (float64, error) {
	if r.Width <= 0 || math.IsNaN(r.Width) || math.IsInf(r.Width, 0) {
		return 0, ErrNotRendered
	}
	return r.Height * (pageWidth / r.Width), nil
}

// TotalPages is the minimum whole number of pages covering heightUnits.
// An element with no height still occupies one page.
func TotalPages(heightUnits, pageHeight float64) int {
	pages := int(math.Ceil(heightUnits / pageHeight))
	if pages < 1 {
		return 1
	}
	return pages
}

// TargetHeight fills totalPages pages minus epsilon, so the last page is
// covered to its bottom edge without spilling onto an empty extra page.
func TargetHeight(totalPages int, pageHeight, epsilon float64) float64 {
	return float64(totalPages)*pageHeight - epsilon
}

// Measure computes the Fit for a rendered rect under cfg.
func (cfg Config) Measure(r Rect) (Fit, error) {
	h, err := HeightUnits(r, cfg.PageWidth)
	if err != nil {
		return Fit{}, err
	}
	pages := TotalPages(h, cfg.PageHeight)
	return Fit{
		HeightUnits:  h,
		TotalPages:   pages,
		TargetHeight: TargetHeight(pages, cfg.PageHeight, cfg.Epsilon),
	}, nil
}

// Length formats a value in the given CSS unit, rounded to a thousandth.
func Length(v float64, unit string) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64) + unit
}
