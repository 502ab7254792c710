// Root command for the dsconvert CLI.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xhpmoonx/computer-vision-data-annotation/internal/logging"
	"github.com/xhpmoonx/computer-vision-data-annotation/internal/sqlite"
)

// Global flag values.
var (
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dsconvert",
	Short: "dsconvert rebuilds detection datasets as SQLite databases",
	Long: `dsconvert converts public object-detection dataset annotations (COCO,
Open Images, PASCAL VOC) into a shared relational schema in a single SQLite
file. Each converter rebuilds its output database from scratch on every run.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "output database path (default: per-converter filename in CWD)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cocoCmd)
	rootCmd.AddCommand(openImagesCmd)
	rootCmd.AddCommand(vocCmd)
}

// runConversion opens a fresh database at outPath, runs convert against it,
// and prints the per-table row counts on success.
func runConversion(outPath string, convert func(*sqlite.Store) error) error {
	store, err := sqlite.Open(outPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := convert(store); err != nil {
		return err
	}

	counts, err := store.Counts()
	if err != nil {
		return err
	}
	for _, table := range sqlite.CoreTables {
		fmt.Printf("%-15s: %d\n", table, counts[table])
	}
	slog.Info("conversion complete", "db", outPath)
	return nil
}
