// VOC converter command.
package main

import (
	"github.com/spf13/cobra"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/paths"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/voc"
)

var vocCmd = &cobra.Command{
	Use:   "voc <root>",
	Short: "Convert a PASCAL VOC2012 tree to SQLite",
	Long: `Convert reads the VOC2012 layout under the given root (Annotations/,
JPEGImages/, ImageSets/Main/, optionally SegmentationClass/) and rebuilds
the output database. The twenty canonical VOC classes are pre-seeded with
ids 1..20.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := paths.ResolveOutputPath(flagDB, "", voc.DefaultDBName)
		if err != nil {
			return err
		}
		return runConversion(outPath, func(store *sqlite.Store) error {
			return voc.Convert(args[0], store)
		})
	},
}
