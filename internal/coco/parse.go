// This file parses COCO annotation JSON documents into in-memory records.
package coco

import (
	"encoding/json"
	"fmt"
	"os"
)

// document is the relevant subset of a COCO annotation file. Instances files
// carry all three lists; image-info files (test split) carry only images.
type document struct {
	Images      []imageRecord      `json:"images"`
	Annotations []annotationRecord `json:"annotations"`
	Categories  []categoryRecord   `json:"categories"`
}

// imageRecord is one entry of the images array.
type imageRecord struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// annotationRecord is one entry of the annotations array. BBox is
// [x, y, width, height] in absolute pixels.
type annotationRecord struct {
	ID         int64     `json:"id"`
	ImageID    int64     `json:"image_id"`
	CategoryID int64     `json:"category_id"`
	BBox       []float64 `json:"bbox"`
}

// categoryRecord is one entry of the categories array.
type categoryRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// parseFile decodes one annotation JSON document.
func parseFile(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}
