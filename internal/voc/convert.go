// This file drives the VOC conversion: seed rows, then one image plus its
// splits and annotations per XML file, all inside one transaction.
package voc

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// DefaultDBName is the output filename when no --db flag is given.
const DefaultDBName = "voc2012.db"

// Fixed seed rows for the VOC2012 release. VOC has no per-annotator ids, so
// a single system annotator stands in.
const (
	annotatorID = 1
	versionID   = 1
)

// Convert reads the VOC2012 tree under root and populates store. The
// Annotations/ and JPEGImages/ directories are required; split membership
// files and segmentation masks are picked up when present.
func Convert(root string, store *sqlite.Store) error {
	started := time.Now().UTC()

	annDir := filepath.Join(root, "Annotations")
	imgDir := filepath.Join(root, "JPEGImages")
	segDir := filepath.Join(root, "SegmentationClass")
	setsDir := filepath.Join(root, "ImageSets", "Main")

	for _, dir := range []string{annDir, imgDir} {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: expected VOC structure with %s", types.ErrMissingInput, dir)
		}
	}

	splitStems := make(map[string]map[string]bool, len(types.AllSplits))
	for _, split := range types.AllSplits {
		stems, err := readSplitStems(filepath.Join(setsDir, split+".txt"))
		if err != nil {
			return err
		}
		splitStems[split] = stems
	}

	entries, err := os.ReadDir(annDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", annDir, err)
	}
	slog.Info("located VOC sources", "root", root, "annotation_files", len(entries))

	return store.Run(func(tx *sqlite.Tx) error {
		if err := tx.SeedAnnotator(types.Annotator{
			AnnotatorID:    annotatorID,
			Name:           "VOC System",
			ExpertiseLevel: "N/A",
		}); err != nil {
			return err
		}
		if err := tx.SeedDatasetVersion(types.DatasetVersion{
			VersionID:   versionID,
			Name:        "VOC2012",
			ReleaseDate: "2012-05-11",
		}); err != nil {
			return err
		}
		for i, name := range CanonicalClasses {
			if err := tx.InsertLabelClassWithID(int64(i+1), name); err != nil {
				return err
			}
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
				continue
			}
			if err := convertImage(tx, filepath.Join(annDir, entry.Name()), imgDir, segDir, splitStems); err != nil {
				return err
			}
		}

		return tx.RecordRun(types.ImportRun{
			RunID:      uuid.NewString(),
			Dataset:    "voc2012",
			SourceRoot: root,
			StartedAt:  started.Format(time.RFC3339),
			FinishedAt: time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// convertImage ingests one annotation XML: the image row, its split
// memberships, and one Annotation per object.
func convertImage(tx *sqlite.Tx, xmlPath, imgDir, segDir string, splitStems map[string]map[string]bool) error {
	ann, err := parseFile(xmlPath)
	if err != nil {
		return err
	}

	filename := ann.Filename
	if filename == "" {
		filename = strings.TrimSuffix(filepath.Base(xmlPath), ".xml") + ".jpg"
	}
	// Split membership and masks key on the declared filename's stem, which
	// can differ from the XML file's own name.
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	imageID, _, err := tx.EnsureImage(types.Image{
		FilePath: filepath.Join(imgDir, filename),
		Dims:     ann.dims(),
	})
	if err != nil {
		return err
	}

	for _, split := range types.AllSplits {
		if splitStems[split][stem] {
			if err := tx.AddSplit(imageID, split); err != nil {
				return err
			}
		}
	}

	// One semantic mask per image, shared by all its objects.
	maskPath := filepath.Join(segDir, stem+".png")
	if _, err := os.Stat(maskPath); err != nil {
		maskPath = ""
	}

	for i := range ann.Objects {
		obj := &ann.Objects[i]
		name := strings.TrimSpace(obj.Name)

		labelID, created, err := tx.EnsureLabelClass(name)
		if err != nil {
			return err
		}
		if created {
			slog.Debug("class outside the canonical list", "name", name, "id", labelID)
		}

		box, err := obj.box()
		if err != nil {
			return fmt.Errorf("%s: %w", xmlPath, err)
		}

		a := types.Annotation{
			ImageID:      imageID,
			VersionID:    versionID,
			AnnotatorID:  annotatorID,
			LabelClassID: labelID,
			Box:          box,
			MaskPath:     maskPath,
		}
		if box != nil {
			a.BBoxText = box.Text()
		}
		if err := tx.InsertAnnotation(a); err != nil {
			return err
		}
	}
	return nil
}
