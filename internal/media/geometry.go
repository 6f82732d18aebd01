package media

import (
	"fmt"

	"github.com/pkg/errors"
)

// Aspect ratio of the vertical target frame
const (
	AspectWidth  = 9
	AspectHeight = 16
)

// ErrInvalidDimensions is returned for non-positive source dimensions
var ErrInvalidDimensions = errors.New("invalid source dimensions")

// Geometry is the centered 9:16 crop window of a source frame
type Geometry struct {
	Width        int
	Height       int
	TargetWidth  int
	TargetHeight int
	XOffset      int
	YOffset      int
}

// ComputeGeometry derives the largest even-sized 9:16 window that fits the
// source frame, centered on both axes.
func ComputeGeometry(width, height int) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}

	targetWidth := height * AspectWidth / AspectHeight
	targetHeight := height
	if targetWidth > width {
		targetWidth = width
		targetHeight = width * AspectHeight / AspectWidth
	}

	// H.264 needs even dimensions
	targetWidth = targetWidth / 2 * 2
	targetHeight = targetHeight / 2 * 2

	return Geometry{
		Width:        width,
		Height:       height,
		TargetWidth:  targetWidth,
		TargetHeight: targetHeight,
		XOffset:      (width - targetWidth) / 2,
		YOffset:      (height - targetHeight) / 2,
	}, nil
}

// Empty reports whether the crop window has no area (only for frames a few
// pixels wide or tall).
func (g Geometry) Empty() bool {
	return g.TargetWidth == 0 || g.TargetHeight == 0
}

// CropFilter returns the ffmpeg crop expression
func (g Geometry) CropFilter() string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", g.TargetWidth, g.TargetHeight, g.XOffset, g.YOffset)
}

// Filter returns the crop followed by a scale to the target size
func (g Geometry) Filter() string {
	return fmt.Sprintf("%s,scale=%d:%d", g.CropFilter(), g.TargetWidth, g.TargetHeight)
}

// String returns a short description used in logs
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d -> %dx%d+%d+%d", g.Width, g.Height, g.TargetWidth, g.TargetHeight, g.XOffset, g.YOffset)
}
