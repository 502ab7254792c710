// Package sqlite implements the shared annotation schema and the writer
// stage of the dataset converters. Every run rebuilds the database file from
// scratch; the schema is never migrated in place.
package sqlite

// Schema DDL for all tables. Mirrors the shared target schema: six core
// tables plus the import_runs provenance table.
const (
	createImage = `CREATE TABLE Image (
    image_id   INTEGER PRIMARY KEY,
    file_path  TEXT NOT NULL UNIQUE,
    width      INTEGER,
    height     INTEGER
);`

	createLabelClass = `CREATE TABLE LabelClass (
    label_class_id INTEGER PRIMARY KEY,
    name           TEXT NOT NULL UNIQUE
);`

	createAnnotator = `CREATE TABLE Annotator (
    annotator_id    INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    expertise_level TEXT
);`

	createDatasetVersion = `CREATE TABLE DatasetVersion (
    version_id   INTEGER PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE,
    release_date TEXT
);`

	createAnnotation = `CREATE TABLE Annotation (
    annotation_id  INTEGER PRIMARY KEY,
    image_id       INTEGER NOT NULL,
    version_id     INTEGER NOT NULL,
    annotator_id   INTEGER NOT NULL,
    label_class_id INTEGER NOT NULL,
    xmin INTEGER, ymin INTEGER, xmax INTEGER, ymax INTEGER,
    bbox           TEXT,
    mask_path      TEXT,
    FOREIGN KEY (image_id)       REFERENCES Image(image_id) ON DELETE CASCADE,
    FOREIGN KEY (version_id)     REFERENCES DatasetVersion(version_id),
    FOREIGN KEY (annotator_id)   REFERENCES Annotator(annotator_id),
    FOREIGN KEY (label_class_id) REFERENCES LabelClass(label_class_id)
);`

	createSplits = `CREATE TABLE splits (
    image_id  INTEGER NOT NULL,
    split     TEXT CHECK(split IN ('train','val','trainval','test')),
    PRIMARY KEY (image_id, split),
    FOREIGN KEY (image_id) REFERENCES Image(image_id) ON DELETE CASCADE
);`

	createImportRuns = `CREATE TABLE import_runs (
    run_id      TEXT PRIMARY KEY,
    dataset     TEXT NOT NULL,
    source_root TEXT,
    started_at  TEXT NOT NULL,
    finished_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxAnnotationImage = `CREATE INDEX idx_annot_image ON Annotation(image_id);`
	idxAnnotationLabel = `CREATE INDEX idx_annot_label ON Annotation(label_class_id);`
	idxSplitsSplit     = `CREATE INDEX idx_splits_split ON splits(split);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createImage,
	createLabelClass,
	createAnnotator,
	createDatasetVersion,
	createAnnotation,
	createSplits,
	createImportRuns,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxAnnotationImage,
	idxAnnotationLabel,
	idxSplitsSplit,
}

// CoreTables lists the core table names in seed-then-insert order, used for
// the post-run row count summary.
var CoreTables = []string{
	"Image",
	"LabelClass",
	"Annotator",
	"DatasetVersion",
	"Annotation",
	"splits",
}
