package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dav0ud/imagegridviewer/internal/examples"
)

// examplesCmd generates a small sample dataset so the viewer can be tried
// without any real images at hand.
func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples [directory]",
		Short: "Generate a sample dataset",
		Long:  `Create a set of placeholder images plus a matching suffix file under the given directory (default: current directory).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir := "."
			if len(args) > 0 {
				baseDir = args[0]
			}

			prefix, err := examples.Create(baseDir)
			if err != nil {
				return err
			}

			fmt.Printf("Example dataset created.\nView it with:\n\n  igridvu %s\n", prefix)
			return nil
		},
	}
}
