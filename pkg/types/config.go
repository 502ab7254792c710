package types

import (
	"fmt"
	"path/filepath"
)

// Open Images subset names as they appear in the V7 release files. Iteration
// over the subsets always follows this order so the first-N image selection
// is deterministic.
var OpenImagesSubsets = []string{"train", "validation", "test"}

// subsetSplits maps Open Images subset names to the schema's split labels.
var subsetSplits = map[string]string{
	"train":      SplitTrain,
	"validation": SplitVal,
	"test":       SplitTest,
}

// SplitForSubset returns the split label for an Open Images subset name.
// Returns ErrUnknownSplit for unrecognized subsets.
func SplitForSubset(subset string) (string, error) {
	split, ok := subsetSplits[subset]
	if !ok {
		return "", fmt.Errorf("%w: subset %q", ErrUnknownSplit, subset)
	}
	return split, nil
}

// OpenImagesConfig holds all inputs for the Open Images converter. The
// original tool kept these as in-source constants; they are an explicit
// structure here so tests and the config file can substitute every path.
type OpenImagesConfig struct {
	DataDir           string            `mapstructure:"data_dir" yaml:"data_dir"`
	OutputPath        string            `mapstructure:"output_path" yaml:"output_path"`
	TargetImageCount  int               `mapstructure:"target_image_count" yaml:"target_image_count"`
	DatasetName       string            `mapstructure:"dataset_name" yaml:"dataset_name"`
	ClassDescriptions string            `mapstructure:"class_descriptions" yaml:"class_descriptions"`
	BoxFiles          map[string]string `mapstructure:"box_files" yaml:"box_files"`
	ImageInfoFiles    map[string]string `mapstructure:"image_info_files" yaml:"image_info_files"`
}

// DefaultOpenImagesConfig returns the configuration matching the Open Images
// V7 boxable release laid out under dataDir.
func DefaultOpenImagesConfig(dataDir string) OpenImagesConfig {
	return OpenImagesConfig{
		DataDir:           dataDir,
		OutputPath:        "openimages_v7_same_schema.db",
		TargetImageCount:  17125,
		DatasetName:       "OpenImagesV7 (boxes)",
		ClassDescriptions: filepath.Join(dataDir, "oidv7-class-descriptions-boxable.csv"),
		BoxFiles: map[string]string{
			"train":      filepath.Join(dataDir, "train-annotations-bbox.csv"),
			"validation": filepath.Join(dataDir, "validation-annotations-bbox.csv"),
			"test":       filepath.Join(dataDir, "test-annotations-bbox.csv"),
		},
		ImageInfoFiles: map[string]string{
			"train":      filepath.Join(dataDir, "train-images-boxable-with-rotation.csv"),
			"validation": filepath.Join(dataDir, "validation-images-with-rotation.csv"),
			"test":       filepath.Join(dataDir, "test-images-with-rotation.csv"),
		},
	}
}

// Validate checks that the configuration is well-formed. It does not touch
// the filesystem; missing files are reported by the converter's locator.
func (c OpenImagesConfig) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path must not be empty", ErrInvalidConfig)
	}
	if c.TargetImageCount <= 0 {
		return fmt.Errorf("%w: target image count must be positive", ErrInvalidConfig)
	}
	if c.ClassDescriptions == "" {
		return fmt.Errorf("%w: class descriptions path must not be empty", ErrInvalidConfig)
	}
	if len(c.BoxFiles) == 0 || len(c.ImageInfoFiles) == 0 {
		return fmt.Errorf("%w: box and image info files must be configured", ErrInvalidConfig)
	}
	for subset := range c.BoxFiles {
		if _, err := SplitForSubset(subset); err != nil {
			return fmt.Errorf("%w: box file subset %q", ErrInvalidConfig, subset)
		}
	}
	for subset := range c.ImageInfoFiles {
		if _, err := SplitForSubset(subset); err != nil {
			return fmt.Errorf("%w: image info subset %q", ErrInvalidConfig, subset)
		}
	}
	return nil
}
