// Unit tests for the Store: schema lifecycle, idempotent upserts, and the
// one-transaction-per-run contract.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// setupStore creates a fresh store on a temp path and registers cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_RebuildsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")

	store, err := Open(path)
	require.NoError(t, err)
	err = store.Run(func(tx *Tx) error {
		_, _, err := tx.EnsureLabelClass("person")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same path discards everything from the first run.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 0, counts["LabelClass"])
}

func TestOpen_ConnectionPragmas(t *testing.T) {
	store := setupStore(t)

	var journalMode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var fk int
	require.NoError(t, store.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var sync int
	require.NoError(t, store.db.QueryRow("PRAGMA synchronous").Scan(&sync))
	assert.Equal(t, 1, sync, "NORMAL")
}

func TestOpen_ReplacesNonDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 0, counts["Image"])
}

func TestRun_RollsBackOnError(t *testing.T) {
	store := setupStore(t)

	sentinel := errors.New("boom")
	err := store.Run(func(tx *Tx) error {
		if _, _, err := tx.EnsureLabelClass("person"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 0, counts["LabelClass"], "failed run must not leave partial rows")
}

func TestEnsureLabelClass(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		id, created, err := tx.EnsureLabelClass("person")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(1), id)

		again, created, err := tx.EnsureLabelClass("person")
		require.NoError(t, err)
		assert.False(t, created, "second sight of the same name links, not creates")
		assert.Equal(t, id, again)

		other, created, err := tx.EnsureLabelClass("dog")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, id, other)
		return nil
	})
	require.NoError(t, err)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["LabelClass"])
}

func TestInsertLabelClassWithID_FirstOccurrenceWins(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		require.NoError(t, tx.InsertLabelClassWithID(7, "cat"))
		// Same id again with a different name is silently ignored.
		require.NoError(t, tx.InsertLabelClassWithID(7, "lion"))
		return nil
	})
	require.NoError(t, err)

	db := openRaw(t, store.Path())
	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM LabelClass WHERE label_class_id = 7").Scan(&name))
	assert.Equal(t, "cat", name)
}

func TestEnsureImage(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, tx *Tx)
	}{
		{
			name: "auto-increment id for path-keyed images",
			check: func(t *testing.T, tx *Tx) {
				id, created, err := tx.EnsureImage(types.Image{FilePath: "JPEGImages/a.jpg"})
				require.NoError(t, err)
				assert.True(t, created)
				assert.Equal(t, int64(1), id)

				id2, created, err := tx.EnsureImage(types.Image{FilePath: "JPEGImages/b.jpg"})
				require.NoError(t, err)
				assert.True(t, created)
				assert.Equal(t, int64(2), id2)
			},
		},
		{
			name: "duplicate path returns existing id",
			check: func(t *testing.T, tx *Tx) {
				id, _, err := tx.EnsureImage(types.Image{FilePath: "val2017/1.jpg"})
				require.NoError(t, err)

				again, created, err := tx.EnsureImage(types.Image{FilePath: "val2017/1.jpg"})
				require.NoError(t, err)
				assert.False(t, created)
				assert.Equal(t, id, again)
			},
		},
		{
			name: "source-assigned id is kept verbatim",
			check: func(t *testing.T, tx *Tx) {
				id, created, err := tx.EnsureImage(types.Image{ImageID: 397133, FilePath: "val2017/397133.jpg"})
				require.NoError(t, err)
				assert.True(t, created)
				assert.Equal(t, int64(397133), id)

				// Re-insertion under the same id is ignored.
				again, created, err := tx.EnsureImage(types.Image{ImageID: 397133, FilePath: "val2017/397133.jpg"})
				require.NoError(t, err)
				assert.False(t, created)
				assert.Equal(t, int64(397133), again)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			err := store.Run(func(tx *Tx) error {
				tt.check(t, tx)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestEnsureImage_Dimensions(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		_, _, err := tx.EnsureImage(types.Image{
			FilePath: "with-dims.jpg",
			Dims:     &types.Dimensions{Width: 640, Height: 480},
		})
		require.NoError(t, err)

		_, _, err = tx.EnsureImage(types.Image{FilePath: "without-dims.jpg"})
		require.NoError(t, err)
		return nil
	})
	require.NoError(t, err)

	db := openRaw(t, store.Path())

	var width, height sql.NullInt64
	require.NoError(t, db.QueryRow(
		"SELECT width, height FROM Image WHERE file_path = 'with-dims.jpg'",
	).Scan(&width, &height))
	assert.Equal(t, int64(640), width.Int64)
	assert.Equal(t, int64(480), height.Int64)

	require.NoError(t, db.QueryRow(
		"SELECT width, height FROM Image WHERE file_path = 'without-dims.jpg'",
	).Scan(&width, &height))
	assert.False(t, width.Valid, "unknown width stays NULL")
	assert.False(t, height.Valid, "unknown height stays NULL")
}

func TestAddSplit(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		id, _, err := tx.EnsureImage(types.Image{FilePath: "a.jpg"})
		require.NoError(t, err)

		require.NoError(t, tx.AddSplit(id, types.SplitTrain))
		// The (image, split) pair deduplicates naturally.
		require.NoError(t, tx.AddSplit(id, types.SplitTrain))
		require.NoError(t, tx.AddSplit(id, types.SplitTrainval))

		err = tx.AddSplit(id, "validation")
		require.ErrorIs(t, err, types.ErrUnknownSplit)
		return nil
	})
	require.NoError(t, err)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["splits"])
}

func TestNextAnnotationID(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		require.NoError(t, tx.SeedAnnotator(types.Annotator{AnnotatorID: 1, Name: "COCO", ExpertiseLevel: "crowd"}))
		require.NoError(t, tx.SeedDatasetVersion(types.DatasetVersion{VersionID: 1, Name: "COCO 2017"}))
		require.NoError(t, tx.InsertLabelClassWithID(1, "person"))
		imgID, _, err := tx.EnsureImage(types.Image{FilePath: "a.jpg"})
		require.NoError(t, err)

		next, err := tx.NextAnnotationID()
		require.NoError(t, err)
		assert.Equal(t, int64(1), next, "empty table starts at 1")

		box := types.PixelBox{XMin: 1, YMin: 2, XMax: 3, YMax: 4}
		require.NoError(t, tx.InsertAnnotation(types.Annotation{
			AnnotationID: 41, ImageID: imgID, VersionID: 1, AnnotatorID: 1,
			LabelClassID: 1, Box: &box, BBoxText: box.Text(),
		}))

		next, err = tx.NextAnnotationID()
		require.NoError(t, err)
		assert.Equal(t, int64(42), next, "continues one past the maximum")
		return nil
	})
	require.NoError(t, err)
}

func TestInsertAnnotation_NullableColumns(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		require.NoError(t, tx.SeedAnnotator(types.Annotator{AnnotatorID: 1, Name: "OpenImages", ExpertiseLevel: "verified/mixed"}))
		require.NoError(t, tx.SeedDatasetVersion(types.DatasetVersion{VersionID: 1, Name: "OpenImagesV7 (boxes)"}))
		imgID, _, err := tx.EnsureImage(types.Image{FilePath: "https://example.org/thumb.jpg"})
		require.NoError(t, err)
		labelID, _, err := tx.EnsureLabelClass("Cat")
		require.NoError(t, err)

		// Normalized box: pixel columns stay NULL, only the text is set.
		return tx.InsertAnnotation(types.Annotation{
			ImageID: imgID, VersionID: 1, AnnotatorID: 1, LabelClassID: labelID,
			BBoxText: types.NormalizedBox{XMin: 0.1, YMin: 0.2, XMax: 0.3, YMax: 0.4}.Text(),
		})
	})
	require.NoError(t, err)

	db := openRaw(t, store.Path())
	var xmin sql.NullInt64
	var bbox string
	var mask sql.NullString
	require.NoError(t, db.QueryRow("SELECT xmin, bbox, mask_path FROM Annotation").Scan(&xmin, &bbox, &mask))
	assert.False(t, xmin.Valid)
	assert.Equal(t, "0.100000,0.200000,0.300000,0.400000", bbox)
	assert.False(t, mask.Valid)
}

func TestForeignKeys_Enforced(t *testing.T) {
	store := setupStore(t)

	err := store.Run(func(tx *Tx) error {
		require.NoError(t, tx.SeedAnnotator(types.Annotator{AnnotatorID: 1, Name: "x"}))
		require.NoError(t, tx.SeedDatasetVersion(types.DatasetVersion{VersionID: 1, Name: "x"}))
		// No image with id 99 exists.
		err := tx.InsertAnnotation(types.Annotation{
			ImageID: 99, VersionID: 1, AnnotatorID: 1, LabelClassID: 1,
		})
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}

// openRaw opens a plain database handle for assertions on committed state.
func openRaw(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
