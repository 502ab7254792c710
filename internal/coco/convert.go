// This file drives the COCO conversion: seed rows, images, splits, and
// annotations inside one transaction.
package coco

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/imgmeta"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// DefaultDBName is the output filename when no --db flag is given.
const DefaultDBName = "coco2017.db"

// Fixed seed rows for the COCO 2017 release.
const (
	annotatorID = 1
	versionID   = 1
)

var (
	seedAnnotator = types.Annotator{
		AnnotatorID:    annotatorID,
		Name:           "COCO",
		ExpertiseLevel: "crowd",
	}
	seedVersion = types.DatasetVersion{
		VersionID:   versionID,
		Name:        "COCO 2017",
		ReleaseDate: "2017-09-01",
	}
)

// Convert locates COCO sources under root, parses the available annotation
// JSONs, and populates store. Splits without an annotation file fall back to
// scanning the split directory for numerically named JPEGs; splits with
// neither are skipped. The whole run is one transaction.
func Convert(root string, store *sqlite.Store) error {
	started := time.Now().UTC()

	layout, err := Locate(root)
	if err != nil {
		return err
	}

	docs := make(map[string]*document, len(splitNames))
	for _, split := range splitNames {
		path, ok := layout.AnnotationFiles[split]
		if !ok {
			continue
		}
		doc, err := parseFile(path)
		if err != nil {
			return err
		}
		docs[split] = doc
		slog.Info("parsed annotation file", "split", split, "path", path,
			"images", len(doc.Images), "annotations", len(doc.Annotations))
	}

	return store.Run(func(tx *sqlite.Tx) error {
		if err := tx.SeedAnnotator(seedAnnotator); err != nil {
			return err
		}
		if err := tx.SeedDatasetVersion(seedVersion); err != nil {
			return err
		}

		if err := insertCategories(tx, docs); err != nil {
			return err
		}

		for _, split := range splitNames {
			if doc, ok := docs[split]; ok {
				if err := insertImagesFromDoc(tx, doc, split); err != nil {
					return err
				}
				continue
			}
			if dir, ok := layout.SplitDirs[split]; ok {
				if err := insertImagesByScanning(tx, dir, split); err != nil {
					return err
				}
			}
		}

		// Only the instances files carry annotations; test has image info only.
		for _, split := range []string{types.SplitTrain, types.SplitVal} {
			doc, ok := docs[split]
			if !ok || len(doc.Annotations) == 0 {
				continue
			}
			if err := insertAnnotations(tx, doc.Annotations); err != nil {
				return err
			}
		}

		return tx.RecordRun(types.ImportRun{
			RunID:      uuid.NewString(),
			Dataset:    "coco2017",
			SourceRoot: root,
			StartedAt:  started.Format(time.RFC3339),
			FinishedAt: time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// insertCategories seeds LabelClass from the first document that carries a
// categories list, keeping the dataset's own category ids.
func insertCategories(tx *sqlite.Tx, docs map[string]*document) error {
	var cats []categoryRecord
	for _, split := range splitNames {
		if doc, ok := docs[split]; ok && len(doc.Categories) > 0 {
			cats = doc.Categories
			break
		}
	}
	for _, cat := range cats {
		if err := tx.InsertLabelClassWithID(cat.ID, cat.Name); err != nil {
			return err
		}
	}
	return nil
}

// insertImagesFromDoc inserts images declared in an annotation document,
// keeping the dataset's image ids and declared dimensions.
func insertImagesFromDoc(tx *sqlite.Tx, doc *document, split string) error {
	for _, im := range doc.Images {
		img := types.Image{
			ImageID:  im.ID,
			FilePath: fmt.Sprintf("%s2017/%s", split, im.FileName),
		}
		if im.Width > 0 && im.Height > 0 {
			img.Dims = &types.Dimensions{Width: im.Width, Height: im.Height}
		}
		id, _, err := tx.EnsureImage(img)
		if err != nil {
			return err
		}
		if err := tx.AddSplit(id, split); err != nil {
			return err
		}
	}
	return nil
}

// insertImagesByScanning registers images from a split directory when the
// annotation JSON is absent. COCO image filenames are zero-padded numeric
// ids, so the stem becomes the image id; anything else is skipped.
// Dimensions come from a best-effort header probe.
func insertImagesByScanning(tx *sqlite.Tx, dir, split string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	relBase := filepath.Base(dir)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".jpg")
		id, err := strconv.ParseInt(stem, 10, 64)
		if err != nil {
			continue
		}

		img := types.Image{
			ImageID:  id,
			FilePath: relBase + "/" + entry.Name(),
		}
		if dims, ok := imgmeta.Probe(filepath.Join(dir, entry.Name())); ok {
			img.Dims = &dims
		}
		imageID, _, err := tx.EnsureImage(img)
		if err != nil {
			return err
		}
		if err := tx.AddSplit(imageID, split); err != nil {
			return err
		}
	}
	return nil
}

// insertAnnotations writes one Annotation row per record, reassigning ids
// sequentially from one past the current table maximum.
func insertAnnotations(tx *sqlite.Tx, anns []annotationRecord) error {
	nextID, err := tx.NextAnnotationID()
	if err != nil {
		return err
	}

	for _, a := range anns {
		if len(a.BBox) != 4 {
			return fmt.Errorf("annotation %d: bbox has %d elements, want 4", a.ID, len(a.BBox))
		}
		x, y, w, h := a.BBox[0], a.BBox[1], a.BBox[2], a.BBox[3]
		box := types.PixelBoxFromXYWH(x, y, w, h)

		bboxText, err := json.Marshal([]float64{x, y, w, h})
		if err != nil {
			return fmt.Errorf("encoding bbox for annotation %d: %w", a.ID, err)
		}

		err = tx.InsertAnnotation(types.Annotation{
			AnnotationID: nextID,
			ImageID:      a.ImageID,
			VersionID:    versionID,
			AnnotatorID:  annotatorID,
			LabelClassID: a.CategoryID,
			Box:          &box,
			BBoxText:     string(bboxText),
		})
		if err != nil {
			return err
		}
		nextID++
	}
	return nil
}
