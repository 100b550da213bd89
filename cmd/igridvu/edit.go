package main

import (
	"github.com/spf13/cobra"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/log"
	"github.com/Dav0ud/imagegridviewer/internal/tui"
)

// editCmd opens the terminal suffix-list editor. Useful over ssh, where the
// GUI dialog is not an option.
func editCmd(configPath *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [suffix_file]",
		Short: "Edit a suffix file in the terminal",
		Long:  `Edit a suffix list without opening the viewer. Defaults to ` + dataset.DefaultSuffixFile + ` in the current directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*configPath)
			if *debug {
				cfg.Settings.Debug = true
			}
			log.SetDebug(cfg.Settings.Debug)

			path := dataset.DefaultSuffixFile
			if len(args) > 0 {
				path = args[0]
			}
			return tui.Run(path, cfg.Grid.MaxImages)
		},
	}
}
