// Package coco converts COCO 2017 detection annotations into the shared
// annotation schema. Image and category ids are reused verbatim from the
// dataset; annotation ids restart one past the table maximum so train and
// val batches merge without collisions.
package coco

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// Split names used by the COCO 2017 release.
var splitNames = []string{types.SplitTrain, types.SplitVal, types.SplitTest}

// annotationFileNames maps each split to its fixed annotation filename.
var annotationFileNames = map[string]string{
	types.SplitTrain: "instances_train2017.json",
	types.SplitVal:   "instances_val2017.json",
	types.SplitTest:  "image_info_test2017.json",
}

// splitDirNames maps each split to its fixed image directory name.
var splitDirNames = map[string]string{
	types.SplitTrain: "train2017",
	types.SplitVal:   "val2017",
	types.SplitTest:  "test2017",
}

// Layout holds the discovered source files for a COCO root. Entries are
// absent for splits whose files were not found.
type Layout struct {
	AnnotationFiles map[string]string // split -> JSON path
	SplitDirs       map[string]string // split -> image directory path
}

// Locate walks root for the fixed COCO 2017 names: split image directories
// (train2017, val2017, test2017) and annotation JSONs. The walk matches by
// exact name anywhere under root, so the usual Kaggle unzip nesting works.
// Returns ErrMissingInput when no annotation file and no split directory
// exists at all.
func Locate(root string) (Layout, error) {
	if _, err := os.Stat(root); err != nil {
		return Layout{}, fmt.Errorf("%w: source root %s", types.ErrMissingInput, root)
	}

	layout := Layout{
		AnnotationFiles: make(map[string]string),
		SplitDirs:       make(map[string]string),
	}

	dirWant := make(map[string]string, len(splitDirNames))
	fileWant := make(map[string]string, len(annotationFileNames))
	for split, name := range splitDirNames {
		dirWant[name] = split
	}
	for split, name := range annotationFileNames {
		fileWant[name] = split
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := strings.ToLower(d.Name())
		if d.IsDir() {
			if split, ok := dirWant[name]; ok {
				layout.SplitDirs[split] = path
			}
			return nil
		}
		if split, ok := fileWant[name]; ok {
			layout.AnnotationFiles[split] = path
		}
		return nil
	})
	if err != nil {
		return Layout{}, fmt.Errorf("walking %s: %w", root, err)
	}

	if len(layout.AnnotationFiles) == 0 && len(layout.SplitDirs) == 0 {
		return Layout{}, fmt.Errorf("%w: no COCO annotation files or split directories under %s",
			types.ErrMissingInput, root)
	}
	return layout, nil
}
