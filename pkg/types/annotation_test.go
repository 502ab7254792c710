package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelBoxFromXYWH(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       PixelBox
	}{
		{"integers", 10, 20, 30, 40, PixelBox{XMin: 10, YMin: 20, XMax: 40, YMax: 60}},
		{"fractions truncate after summing", 10.9, 20.9, 0.2, 0.2,
			PixelBox{XMin: 10, YMin: 20, XMax: 11, YMax: 21}},
		{"zero size", 5, 5, 0, 0, PixelBox{XMin: 5, YMin: 5, XMax: 5, YMax: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelBoxFromXYWH(tt.x, tt.y, tt.w, tt.h))
		})
	}
}

func TestBoxText(t *testing.T) {
	p := PixelBox{XMin: 1, YMin: 2, XMax: 3, YMax: 4}
	assert.Equal(t, "1,2,3,4", p.Text())

	n := NormalizedBox{XMin: 0.1, YMin: 0.25, XMax: 0.5, YMax: 1}
	assert.Equal(t, "0.100000,0.250000,0.500000,1.000000", n.Text())
}
