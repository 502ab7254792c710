// Package main provides the dsconvert CLI: three offline converters that
// normalize COCO, Open Images, and PASCAL VOC annotations into a shared
// SQLite schema.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, types.ErrMissingInput) || errors.Is(err, types.ErrInvalidConfig) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}
