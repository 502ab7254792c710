package types

// LabelClass is a row in the LabelClass table. Name is the natural key,
// unique within a run; classes are never updated or removed once created.
type LabelClass struct {
	LabelClassID int64
	Name         string
}

// Annotator is the single fixed row describing the dataset's original
// annotation source (crowd, verified, or a system placeholder).
type Annotator struct {
	AnnotatorID    int64
	Name           string
	ExpertiseLevel string
}

// DatasetVersion is the single fixed row identifying the dataset release.
type DatasetVersion struct {
	VersionID   int64
	Name        string
	ReleaseDate string // ISO 8601 date
}

// ImportRun records provenance for one converter invocation.
type ImportRun struct {
	RunID      string // UUID
	Dataset    string
	SourceRoot string
	StartedAt  string // RFC 3339
	FinishedAt string // RFC 3339
}
