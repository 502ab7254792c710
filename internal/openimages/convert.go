// Package openimages converts Open Images V7 box annotations into the
// shared annotation schema. Images are reassigned small sequential ids in
// first-encountered order, capped at a configured target count; label
// classes are discovered lazily from the MIDs of accepted box rows.
package openimages

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// Fixed seed rows. The release date is the V7 announcement date.
const (
	annotatorID = 1
	versionID   = 1
	releaseDate = "2022-10-01"
)

// selectedImage is one image chosen for the output, in selection order.
type selectedImage struct {
	originalID string // Open Images string id, the natural key
	subset     string
	url        string // thumbnail preferred, else original URL; stored as file_path
}

// Convert populates store from the CSV files named in cfg. All configured
// CSVs must exist before any write happens; the run aborts otherwise.
func Convert(cfg types.OpenImagesConfig, store *sqlite.Store) error {
	started := time.Now().UTC()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkInputs(cfg); err != nil {
		return err
	}

	midToName, err := readClassNames(cfg.ClassDescriptions)
	if err != nil {
		return err
	}
	slog.Info("loaded class descriptions", "classes", len(midToName))

	selected, err := chooseImages(cfg)
	if err != nil {
		return err
	}
	slog.Info("selected images", "count", len(selected), "target", cfg.TargetImageCount)

	// Open Images ships box coordinates as [0,1] ratios of the image size.
	// They are stored normalized in the bbox text column with NULL pixel
	// columns, unlike the absolute pixel boxes of the COCO and VOC outputs.
	slog.Warn("box coordinates are normalized to [0,1], not pixels",
		"dataset", cfg.DatasetName)

	return store.Run(func(tx *sqlite.Tx) error {
		if err := tx.SeedAnnotator(types.Annotator{
			AnnotatorID:    annotatorID,
			Name:           "OpenImages",
			ExpertiseLevel: "verified/mixed",
		}); err != nil {
			return err
		}
		if err := tx.SeedDatasetVersion(types.DatasetVersion{
			VersionID:   versionID,
			Name:        cfg.DatasetName,
			ReleaseDate: releaseDate,
		}); err != nil {
			return err
		}

		imageIDs, err := insertImages(tx, selected)
		if err != nil {
			return err
		}

		total := 0
		for _, subset := range types.OpenImagesSubsets {
			path, ok := cfg.BoxFiles[subset]
			if !ok {
				continue
			}
			n, err := insertBoxes(tx, path, imageIDs, midToName)
			if err != nil {
				return err
			}
			total += n
			slog.Info("ingested boxes", "subset", subset, "annotations", n)
		}
		slog.Debug("box ingestion complete", "annotations", total)

		return tx.RecordRun(types.ImportRun{
			RunID:      uuid.NewString(),
			Dataset:    cfg.DatasetName,
			SourceRoot: cfg.DataDir,
			StartedAt:  started.Format(time.RFC3339),
			FinishedAt: time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// checkInputs verifies every configured CSV exists. No partial-success
// mode: one missing file aborts the run before any write.
func checkInputs(cfg types.OpenImagesConfig) error {
	paths := []string{cfg.ClassDescriptions}
	for _, subset := range types.OpenImagesSubsets {
		if p, ok := cfg.BoxFiles[subset]; ok {
			paths = append(paths, p)
		}
		if p, ok := cfg.ImageInfoFiles[subset]; ok {
			paths = append(paths, p)
		}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s", types.ErrMissingInput, p)
		}
	}
	return nil
}

// chooseImages streams the image-info CSVs in subset order and keeps the
// first TargetImageCount distinct images. Rows without a usable URL are
// skipped; the thumbnail URL is preferred over the original.
func chooseImages(cfg types.OpenImagesConfig) ([]selectedImage, error) {
	var selected []selectedImage
	seen := make(map[string]bool)

	for _, subset := range types.OpenImagesSubsets {
		if len(selected) >= cfg.TargetImageCount {
			break
		}
		path, ok := cfg.ImageInfoFiles[subset]
		if !ok {
			continue
		}

		rows, err := openRows(path, "ImageID")
		if err != nil {
			return nil, err
		}
		for {
			more, err := rows.Next()
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if !more {
				break
			}

			oid := rows.Field("ImageID")
			if oid == "" || seen[oid] {
				continue
			}
			url := rows.Field("Thumbnail300KURL")
			if url == "" {
				url = rows.Field("OriginalURL")
			}
			if url == "" {
				continue
			}

			seen[oid] = true
			selected = append(selected, selectedImage{originalID: oid, subset: subset, url: url})
			if len(selected) >= cfg.TargetImageCount {
				break
			}
		}
		rows.Close()
	}
	return selected, nil
}

// insertImages writes Image and splits rows for the selection, assigning
// sequential ids in selection order, and returns the original-id to
// surrogate-id map used to filter box rows. Dimensions stay NULL: the info
// files do not carry pixel sizes and the boxes are normalized anyway.
func insertImages(tx *sqlite.Tx, selected []selectedImage) (map[string]int64, error) {
	imageIDs := make(map[string]int64, len(selected))
	for _, sel := range selected {
		id, _, err := tx.EnsureImage(types.Image{FilePath: sel.url})
		if err != nil {
			return nil, err
		}
		imageIDs[sel.originalID] = id

		split, err := types.SplitForSubset(sel.subset)
		if err != nil {
			return nil, err
		}
		if err := tx.AddSplit(id, split); err != nil {
			return nil, err
		}
	}
	return imageIDs, nil
}

// insertBoxes streams one box CSV and writes an Annotation row for every box
// belonging to a selected image. Label classes are created on first sight of
// a MID, named via the description map with the raw MID as fallback.
func insertBoxes(tx *sqlite.Tx, path string, imageIDs map[string]int64, midToName map[string]string) (int, error) {
	rows, err := openRows(path, "ImageID", "LabelName", "XMin", "XMax", "YMin", "YMax")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	labelIDs := make(map[string]int64)
	count := 0
	for {
		more, err := rows.Next()
		if err != nil {
			return count, fmt.Errorf("%s: %w", path, err)
		}
		if !more {
			break
		}

		imageID, ok := imageIDs[rows.Field("ImageID")]
		if !ok {
			continue
		}

		mid := rows.Field("LabelName")
		labelID, ok := labelIDs[mid]
		if !ok {
			name := midToName[mid]
			if name == "" {
				name = mid
			}
			labelID, _, err = tx.EnsureLabelClass(name)
			if err != nil {
				return count, err
			}
			labelIDs[mid] = labelID
		}

		box, err := parseBox(rows)
		if err != nil {
			return count, fmt.Errorf("%s: %w", path, err)
		}

		err = tx.InsertAnnotation(types.Annotation{
			ImageID:      imageID,
			VersionID:    versionID,
			AnnotatorID:  annotatorID,
			LabelClassID: labelID,
			BBoxText:     box.Text(),
		})
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// parseBox reads the four normalized coordinates of the current row.
func parseBox(rows *rowReader) (types.NormalizedBox, error) {
	var box types.NormalizedBox
	for _, c := range []struct {
		name string
		dst  *float64
	}{
		{"XMin", &box.XMin},
		{"XMax", &box.XMax},
		{"YMin", &box.YMin},
		{"YMax", &box.YMax},
	} {
		v, err := strconv.ParseFloat(rows.Field(c.name), 64)
		if err != nil {
			return box, fmt.Errorf("parsing %s: %w", c.name, err)
		}
		*c.dst = v
	}
	return box, nil
}
