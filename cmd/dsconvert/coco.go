// COCO converter command.
package main

import (
	"github.com/spf13/cobra"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/coco"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/paths"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
)

var cocoCmd = &cobra.Command{
	Use:   "coco <root>",
	Short: "Convert a COCO 2017 tree to SQLite",
	Long: `Convert reads instances_train2017.json, instances_val2017.json, and
image_info_test2017.json found anywhere under the given root (the usual
Kaggle unzip layout) and rebuilds the output database. Splits whose JSON is
missing fall back to scanning the train2017/val2017/test2017 image
directories.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := paths.ResolveOutputPath(flagDB, "", coco.DefaultDBName)
		if err != nil {
			return err
		}
		return runConversion(outPath, func(store *sqlite.Store) error {
			return coco.Convert(args[0], store)
		})
	},
}
