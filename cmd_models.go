package main

import (
	"fmt"
	"os"
	"slices"

	"mediapost/tui"
	"mediapost/whisper"

	"github.com/spf13/cobra"
)

func newModelsCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List and download Whisper models",
	}
	cmd.AddCommand(newModelsListCmd(a))
	cmd.AddCommand(newModelsFetchCmd(a))
	return cmd
}

func newModelsListCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the known models and which are present in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			found, err := whisper.Discover(a.dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %-20s %s\n", "MODEL", "FILE", "STATUS")
			for _, m := range whisper.Models() {
				status := tui.MutedStyle.Render("missing")
				if slices.Contains(found, m.ID) {
					status = tui.SuccessStyle.Render("present")
				}
				name := m.ID
				if m.ID == whisper.DefaultModel {
					name += "*"
				}
				fmt.Fprintf(out, "%-8s %-20s %s\n", name, m.FileName, status)
			}
			fmt.Fprintln(out, tui.MutedStyle.Render("* downloaded automatically when no model is present"))
			return nil
		},
	}
}

func newModelsFetchCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:       "fetch [model]",
		Short:     "Download a model into the working directory",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: whisper.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := whisper.DefaultModel
			if len(args) == 1 {
				id = args[0]
			}
			if _, err := whisper.Lookup(id); err != nil {
				return fmt.Errorf("%w (known: %v)", err, whisper.IDs())
			}

			opts := whisper.DownloadOptions{Logger: a.logger}
			if f, ok := a.errOut.(*os.File); ok {
				opts.Progress = f
			}
			if err := whisper.Download(cmd.Context(), a.dir, id, opts); err != nil {
				return err
			}
			path, err := whisper.ModelPath(a.dir, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Saved "+id+" model to "+path))
			return nil
		},
	}
}
