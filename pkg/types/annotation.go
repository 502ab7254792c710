package types

import "fmt"

// PixelBox is an axis-aligned box in absolute pixel coordinates.
type PixelBox struct {
	XMin, YMin, XMax, YMax int
}

// PixelBoxFromXYWH converts a COCO-style [x, y, width, height] box to corner
// form. All four corners are truncated toward zero the same way, so
// XMax-XMin differs from int(w) only through the shared truncation of x.
func PixelBoxFromXYWH(x, y, w, h float64) PixelBox {
	return PixelBox{
		XMin: int(x),
		YMin: int(y),
		XMax: int(x + w),
		YMax: int(y + h),
	}
}

// Text renders the box as "xmin,ymin,xmax,ymax".
func (b PixelBox) Text() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.XMin, b.YMin, b.XMax, b.YMax)
}

// NormalizedBox is an axis-aligned box with coordinates as [0,1] ratios of
// the image size, the Open Images convention.
type NormalizedBox struct {
	XMin, YMin, XMax, YMax float64
}

// Text renders the box as "xmin,ymin,xmax,ymax" with six decimal places.
func (b NormalizedBox) Text() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.XMin, b.YMin, b.XMax, b.YMax)
}

// Annotation is a row in the Annotation table. Box is nil for sources that
// only provide normalized coordinates; such rows store the box in BBoxText
// and leave the pixel columns NULL so normalized values can never be read as
// pixels. The coordinate unit therefore varies by source dataset and is not
// reconciled across separately generated databases.
type Annotation struct {
	AnnotationID int64
	ImageID      int64
	VersionID    int64
	AnnotatorID  int64
	LabelClassID int64
	Box          *PixelBox
	BBoxText     string // textual box, unit per source dataset; empty for NULL
	MaskPath     string // segmentation mask reference; empty for NULL
}
