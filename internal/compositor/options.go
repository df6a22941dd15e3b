package compositor

// PageBreakMode selects how content is split across pages.
type PageBreakMode string

const (
	// PageBreakCSS lets layout rules (CSS break properties) place page breaks.
	PageBreakCSS PageBreakMode = "css"
	// PageBreakNone slices a continuous capture at fixed page intervals.
	PageBreakNone PageBreakMode = "none"
)

// ImageEncoding is the intermediate image format of the capture.
type ImageEncoding struct {
	Format  string  // "jpeg" or "png"
	Quality float64 // 0..1
}

// CaptureOptions control the element capture.
type CaptureOptions struct {
	PixelScale    float64
	CrossOrigin   bool
	Logging       bool
	ScrollX       float64
	ScrollY       float64
	CaptureHeight float64 // CSS pixels, the element's scroll height at capture time
}

// PageFormat is the physical output page.
type PageFormat struct {
	Unit        string // "mm"
	Width       float64
	Height      float64
	Orientation string // "portrait" or "landscape"
}

// RasterOptions is everything the rasterizer needs for one export.
type RasterOptions struct {
	Margin    float64
	Filename  string
	Image     ImageEncoding
	Capture   CaptureOptions
	Page      PageFormat
	PageBreak PageBreakMode
	Pages     int // pages the element was stretched to
}
