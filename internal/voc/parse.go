// This file parses VOC per-image annotation XML and split membership files.
package voc

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// annotation is the decoded form of one <annotation> document.
type annotation struct {
	Filename string   `xml:"filename"`
	Size     *size    `xml:"size"`
	Objects  []object `xml:"object"`
}

// size carries the declared pixel dimensions. Coordinates are kept as text
// and converted explicitly, since some VOC files write floats.
type size struct {
	Width  string `xml:"width"`
	Height string `xml:"height"`
}

// object is one annotated object with its class name and optional box.
type object struct {
	Name   string  `xml:"name"`
	BndBox *bndbox `xml:"bndbox"`
}

// bndbox holds the corner coordinates as text.
type bndbox struct {
	XMin string `xml:"xmin"`
	YMin string `xml:"ymin"`
	XMax string `xml:"xmax"`
	YMax string `xml:"ymax"`
}

// parseFile decodes one annotation XML document.
func parseFile(path string) (*annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ann annotation
	if err := xml.Unmarshal(data, &ann); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &ann, nil
}

// dims converts the declared size to Dimensions, absent when the document
// has no <size> element or the values do not parse as integers.
func (a *annotation) dims() *types.Dimensions {
	if a.Size == nil {
		return nil
	}
	w, errW := strconv.Atoi(strings.TrimSpace(a.Size.Width))
	h, errH := strconv.Atoi(strings.TrimSpace(a.Size.Height))
	if errW != nil || errH != nil {
		return nil
	}
	return &types.Dimensions{Width: w, Height: h}
}

// box converts the text coordinates to a pixel box, truncating float text
// the same way for all four corners. The box is absent when the object has
// no <bndbox>; a coordinate that fails to parse is a malformed record.
func (o *object) box() (*types.PixelBox, error) {
	if o.BndBox == nil {
		return nil, nil
	}
	var b types.PixelBox
	for _, c := range []struct {
		text string
		dst  *int
	}{
		{o.BndBox.XMin, &b.XMin},
		{o.BndBox.YMin, &b.YMin},
		{o.BndBox.XMax, &b.XMax},
		{o.BndBox.YMax, &b.YMax},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing bndbox coordinate %q: %w", c.text, err)
		}
		*c.dst = int(v)
	}
	return &b, nil
}

// readSplitStems loads the image stems listed in ImageSets/Main/<split>.txt.
// A missing file yields an empty set; membership files are optional.
func readSplitStems(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	stems := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		// Per-class files carry "stem label" pairs; the plain split files
		// carry one stem per line. Only the stem matters here.
		stem := strings.TrimSpace(line)
		if i := strings.IndexByte(stem, ' '); i >= 0 {
			stem = stem[:i]
		}
		if stem != "" {
			stems[stem] = true
		}
	}
	return stems, nil
}
