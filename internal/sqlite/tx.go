// This file implements the per-run transaction operations: seed rows,
// idempotent natural-key upserts, and annotation inserts.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// Tx wraps the run transaction with schema-aware operations. All converters
// write through one Tx; Store.Run controls commit and rollback.
type Tx struct {
	tx *sql.Tx
}

// SeedAnnotator inserts the fixed annotator row for the run.
func (t *Tx) SeedAnnotator(a types.Annotator) error {
	_, err := t.tx.Exec(
		"INSERT INTO Annotator (annotator_id, name, expertise_level) VALUES (?, ?, ?)",
		a.AnnotatorID, a.Name, a.ExpertiseLevel,
	)
	if err != nil {
		return fmt.Errorf("seeding annotator: %w", err)
	}
	return nil
}

// SeedDatasetVersion inserts the fixed dataset version row for the run.
func (t *Tx) SeedDatasetVersion(v types.DatasetVersion) error {
	_, err := t.tx.Exec(
		"INSERT INTO DatasetVersion (version_id, name, release_date) VALUES (?, ?, ?)",
		v.VersionID, v.Name, v.ReleaseDate,
	)
	if err != nil {
		return fmt.Errorf("seeding dataset version: %w", err)
	}
	return nil
}

// RecordRun inserts the provenance row for this converter invocation.
func (t *Tx) RecordRun(run types.ImportRun) error {
	_, err := t.tx.Exec(
		"INSERT INTO import_runs (run_id, dataset, source_root, started_at, finished_at) VALUES (?, ?, ?, ?, ?)",
		run.RunID, run.Dataset, nullString(run.SourceRoot), run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("recording import run: %w", err)
	}
	return nil
}

// EnsureImage inserts an image if its natural key is new and returns the
// image's surrogate id. When img.ImageID is non-zero the source-assigned id
// is kept (COCO reuses its own integer ids); otherwise the id
// auto-increments. Duplicate natural keys return the existing row's id with
// created=false; first occurrence wins and the stored row is never updated.
func (t *Tx) EnsureImage(img types.Image) (int64, bool, error) {
	width, height := dimsColumns(img.Dims)

	if img.ImageID != 0 {
		res, err := t.tx.Exec(
			"INSERT OR IGNORE INTO Image (image_id, file_path, width, height) VALUES (?, ?, ?, ?)",
			img.ImageID, img.FilePath, width, height,
		)
		if err != nil {
			return 0, false, fmt.Errorf("inserting image %d: %w", img.ImageID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, false, fmt.Errorf("checking image insert: %w", err)
		}
		return img.ImageID, n > 0, nil
	}

	res, err := t.tx.Exec(
		"INSERT OR IGNORE INTO Image (file_path, width, height) VALUES (?, ?, ?)",
		img.FilePath, width, height,
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting image %q: %w", img.FilePath, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("checking image insert: %w", err)
	}
	if n > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("reading image id: %w", err)
		}
		return id, true, nil
	}

	var id int64
	err = t.tx.QueryRow("SELECT image_id FROM Image WHERE file_path = ?", img.FilePath).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("resolving image %q: %w", img.FilePath, err)
	}
	return id, false, nil
}

// EnsureLabelClass returns the id for a class name, creating the class on
// first sight. The existence check runs before the insert so callers always
// learn whether they linked to an existing class or created one.
func (t *Tx) EnsureLabelClass(name string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow("SELECT label_class_id FROM LabelClass WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("looking up label class %q: %w", name, err)
	}

	res, err := t.tx.Exec("INSERT INTO LabelClass (name) VALUES (?)", name)
	if err != nil {
		return 0, false, fmt.Errorf("inserting label class %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading label class id: %w", err)
	}
	return id, true, nil
}

// InsertLabelClassWithID inserts a class keeping a source-assigned id.
// Duplicates are ignored, first occurrence wins.
func (t *Tx) InsertLabelClassWithID(id int64, name string) error {
	_, err := t.tx.Exec(
		"INSERT OR IGNORE INTO LabelClass (label_class_id, name) VALUES (?, ?)",
		id, name,
	)
	if err != nil {
		return fmt.Errorf("inserting label class %d %q: %w", id, name, err)
	}
	return nil
}

// AddSplit associates an image with a split label. The (image, split) pair
// is naturally deduplicating.
func (t *Tx) AddSplit(imageID int64, split string) error {
	if !types.ValidSplit(split) {
		return fmt.Errorf("%w: %q", types.ErrUnknownSplit, split)
	}
	_, err := t.tx.Exec(
		"INSERT OR IGNORE INTO splits (image_id, split) VALUES (?, ?)",
		imageID, split,
	)
	if err != nil {
		return fmt.Errorf("inserting split %q for image %d: %w", split, imageID, err)
	}
	return nil
}

// NextAnnotationID returns one past the current maximum annotation id, so a
// second batch (val after train) continues the sequence without collisions.
func (t *Tx) NextAnnotationID() (int64, error) {
	var maxID int64
	err := t.tx.QueryRow("SELECT COALESCE(MAX(annotation_id), 0) FROM Annotation").Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("reading max annotation id: %w", err)
	}
	return maxID + 1, nil
}

// InsertAnnotation inserts one annotation row. A zero AnnotationID lets the
// id auto-increment; pixel columns are NULL when the box is nil.
func (t *Tx) InsertAnnotation(a types.Annotation) error {
	var xmin, ymin, xmax, ymax any
	if a.Box != nil {
		xmin, ymin, xmax, ymax = a.Box.XMin, a.Box.YMin, a.Box.XMax, a.Box.YMax
	}

	var err error
	if a.AnnotationID != 0 {
		_, err = t.tx.Exec(
			`INSERT INTO Annotation
             (annotation_id, image_id, version_id, annotator_id, label_class_id,
              xmin, ymin, xmax, ymax, bbox, mask_path)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.AnnotationID, a.ImageID, a.VersionID, a.AnnotatorID, a.LabelClassID,
			xmin, ymin, xmax, ymax, nullString(a.BBoxText), nullString(a.MaskPath),
		)
	} else {
		_, err = t.tx.Exec(
			`INSERT INTO Annotation
             (image_id, version_id, annotator_id, label_class_id,
              xmin, ymin, xmax, ymax, bbox, mask_path)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ImageID, a.VersionID, a.AnnotatorID, a.LabelClassID,
			xmin, ymin, xmax, ymax, nullString(a.BBoxText), nullString(a.MaskPath),
		)
	}
	if err != nil {
		return fmt.Errorf("inserting annotation for image %d: %w", a.ImageID, err)
	}
	return nil
}

// dimsColumns converts optional dimensions to nullable column values.
func dimsColumns(d *types.Dimensions) (width, height any) {
	if d == nil {
		return nil, nil
	}
	return d.Width, d.Height
}

// nullString converts an empty string to a NULL column value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
