package types

// Dimensions holds pixel dimensions for an image. Images whose dimensions
// cannot be determined carry no Dimensions at all rather than zero values.
type Dimensions struct {
	Width  int
	Height int
}

// Image is a row in the Image table. ImageID is the surrogate key; FilePath
// is the natural key, unique within a run. Dims is nil when the source
// metadata does not declare dimensions and no decoder probe succeeded.
type Image struct {
	ImageID  int64
	FilePath string
	Dims     *Dimensions
}
