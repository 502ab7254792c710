// Open Images converter command.
package main

import (
	"github.com/spf13/cobra"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/openimages"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/paths"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
)

var (
	openImagesConfigFile string
	openImagesDataDir    string
	openImagesTarget     int
)

var openImagesCmd = &cobra.Command{
	Use:   "openimages",
	Short: "Convert Open Images V7 box CSVs to SQLite",
	Long: `Convert streams the Open Images V7 boxable CSVs (per-split box and
image-info files plus the class description file) and rebuilds the output
database, keeping the first N distinct images encountered.

All settings have defaults matching the V7 release layout under --data-dir
and can be overridden by a YAML config file (--config or DSCONVERT_CONFIG):

  data_dir: data
  output_path: openimages_v7_same_schema.db
  target_image_count: 17125
  dataset_name: OpenImagesV7 (boxes)
  class_descriptions: data/oidv7-class-descriptions-boxable.csv
  box_files:
    train: data/train-annotations-bbox.csv
  image_info_files:
    train: data/train-images-boxable-with-rotation.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := paths.ResolveConfigFile(openImagesConfigFile)
		if err != nil {
			return err
		}

		cfg, err := loadOpenImagesConfig(configFile, openImagesDataDir)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("target") {
			cfg.TargetImageCount = openImagesTarget
		}

		outPath, err := paths.ResolveOutputPath(flagDB, cfg.OutputPath, "openimages_v7_same_schema.db")
		if err != nil {
			return err
		}
		cfg.OutputPath = outPath

		return runConversion(outPath, func(store *sqlite.Store) error {
			return openimages.Convert(cfg, store)
		})
	},
}

func init() {
	openImagesCmd.Flags().StringVar(&openImagesConfigFile, "config", "", "converter config file (YAML)")
	openImagesCmd.Flags().StringVar(&openImagesDataDir, "data-dir", "data", "directory containing the V7 CSVs")
	openImagesCmd.Flags().IntVar(&openImagesTarget, "target", 0, "target image count (overrides config)")
}
