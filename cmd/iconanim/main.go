// Command iconanim turns static icons into looping animated GIFs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "iconanim",
		Short: "Animate icons into looping GIFs",
		Long: `iconanim - Turn a static icon into a looping animated GIF

Effects:
  - bounce  vertical hop
  - pulse   zoom in and out
  - tilt    rock about the bottom-center
  - shake   horizontal jitter
  - slide   glide to the right

Also includes a terminal previewer and a few image utilities.`,
		Example: `  # Bounce an icon with the default offsets
  iconanim animate bounce logo.png

  # Tilt several icons in parallel into ./gifs
  iconanim animate tilt a.png b.png --out-dir gifs

  # Preview a pulse without writing a file
  iconanim preview logo.png --effect pulse`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newAnimateCmd(),
		newPreviewCmd(),
		newShiftCmd(),
		newFetchCmd(),
		newBase64Cmd(),
		newPDFCmd(),
	)
	return rootCmd
}
