// Package voc converts PASCAL VOC per-image XML annotations into the shared
// annotation schema. The twenty canonical class names are pre-seeded with
// fixed ids 1..20; anything else found in an annotation gets the next
// auto-increment id on first sight.
package voc

// CanonicalClasses lists the twenty VOC class names in their fixed order.
// The seeded label_class_id is the 1-based position in this list.
var CanonicalClasses = []string{
	"aeroplane", "bicycle", "bird", "boat", "bottle", "bus", "car", "cat", "chair",
	"cow", "diningtable", "dog", "horse", "motorbike", "person", "pottedplant",
	"sheep", "sofa", "train", "tvmonitor",
}
