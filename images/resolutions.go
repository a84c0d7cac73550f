// Package images - named display resolutions used as upscaling sources,
// intermediates and targets.
package images

import (
	"fmt"
	"image"
	"math"
)

// AspectRatio represents an aspect ratio by name (e.g., "16:9").
type AspectRatio string

const (
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
)

// ResolutionType represents a common name or standard for a resolution.
type ResolutionType string

const (
	ResolutionTypeNHD      ResolutionType = "nHD"
	ResolutionTypeQHD540   ResolutionType = "qHD 540p"
	ResolutionTypeHD720p   ResolutionType = "HD 720p"
	ResolutionTypeFHD1080p ResolutionType = "Full HD 1080p"
	ResolutionTypeQHD1440p ResolutionType = "QHD 1440p"
	ResolutionType4KUHD    ResolutionType = "4K UHD"
	ResolutionType8KUHD    ResolutionType = "8K UHD"
)

// ResolutionPixels describes the exact dimensions of a resolution.
type ResolutionPixels struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Resolution describes a resolution standard.
type Resolution struct {
	Name        ResolutionType   `json:"name" yaml:"name"`
	AspectRatio AspectRatio      `json:"aspectRatio" yaml:"aspect_ratio"`
	Pixels      ResolutionPixels `json:"pixels" yaml:"pixels"`
}

// GetMegaPixels calculates the megapixel value rounded to two decimal places
// (e.g., 2.07 for 1080p).
func (r Resolution) GetMegaPixels() float64 {
	if r.Pixels.Width <= 0 || r.Pixels.Height <= 0 {
		return 0.0
	}
	mp := float64(r.Pixels.Width*r.Pixels.Height) / 1_000_000.0
	return math.Round(mp*100) / 100
}

// Size returns the dimensions as an image.Point.
func (r Resolution) Size() image.Point {
	return image.Pt(r.Pixels.Width, r.Pixels.Height)
}

// Matches reports whether the bounds of img are exactly this resolution.
func (r Resolution) Matches(img image.Image) bool {
	b := img.Bounds()
	return b.Dx() == r.Pixels.Width && b.Dy() == r.Pixels.Height
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Pixels.Width > 0 && r.Pixels.Height > 0
}

// String returns a human-readable summary of the resolution.
func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", r.Name, r.Pixels.Width, r.Pixels.Height, r.GetMegaPixels())
}

// resolutions stores all defined resolution standards keyed by type.
var resolutions = map[ResolutionType]Resolution{
	ResolutionTypeNHD: {
		Name:        ResolutionTypeNHD,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 640, Height: 360},
	},
	ResolutionTypeQHD540: {
		Name:        ResolutionTypeQHD540,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 960, Height: 540},
	},
	ResolutionTypeHD720p: {
		Name:        ResolutionTypeHD720p,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 1280, Height: 720},
	},
	ResolutionTypeFHD1080p: {
		Name:        ResolutionTypeFHD1080p,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 1920, Height: 1080},
	},
	ResolutionTypeQHD1440p: {
		Name:        ResolutionTypeQHD1440p,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 2560, Height: 1440},
	},
	ResolutionType4KUHD: {
		Name:        ResolutionType4KUHD,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 3840, Height: 2160},
	},
	ResolutionType8KUHD: {
		Name:        ResolutionType8KUHD,
		AspectRatio: AspectRatio169,
		Pixels:      ResolutionPixels{Width: 7680, Height: 4320},
	},
}

// Frequently used resolutions.
var (
	HD720 = resolutions[ResolutionTypeHD720p]
	FHD   = resolutions[ResolutionTypeFHD1080p]
	QHD   = resolutions[ResolutionTypeQHD1440p]
	UHD4K = resolutions[ResolutionType4KUHD]
)

// GetSupportedResolutions returns all defined resolutions. The order is not guaranteed.
func GetSupportedResolutions() []Resolution {
	all := make([]Resolution, 0, len(resolutions))
	for _, res := range resolutions {
		all = append(all, res)
	}
	return all
}

// GetResolutionByType retrieves a specific resolution by its type.
// It returns the Resolution and true if found, otherwise an empty Resolution and false.
func GetResolutionByType(t ResolutionType) (Resolution, bool) {
	res, ok := resolutions[t]
	return res, ok
}

// ResolutionFromPixels returns the named resolution with exactly the given
// dimensions, or an unnamed one labelled "WxH" when none matches.
//
// Arguments:
//   - width: Width in pixels.
//   - height: Height in pixels.
//
// Returns:
//   - Resolution: The matching resolution.
func ResolutionFromPixels(width, height int) Resolution {
	for _, res := range resolutions {
		if res.Pixels.Width == width && res.Pixels.Height == height {
			return res
		}
	}
	return Resolution{
		Name:   ResolutionType(fmt.Sprintf("%dx%d", width, height)),
		Pixels: ResolutionPixels{Width: width, Height: height},
	}
}

// GetHighestResolutionUnderDimensions retrieves the highest resolution that fits
// within the given width and height.
//
// Arguments:
//   - width: The maximum possible width of the image.
//   - height: The maximum possible height of the image.
//
// Returns:
//   - Resolution: The highest resolution that fits.
//   - bool: True if a resolution was found, otherwise false.
func GetHighestResolutionUnderDimensions(width, height int) (Resolution, bool) {
	var highest Resolution
	var found bool

	for _, res := range resolutions {
		if res.Pixels.Width <= width && res.Pixels.Height <= height {
			if !found || res.GetMegaPixels() > highest.GetMegaPixels() {
				highest = res
				found = true
			}
		}
	}
	return highest, found
}
