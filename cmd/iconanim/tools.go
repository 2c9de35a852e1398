package main

import (
	"fmt"

	"github.com/spf13/cobra"

	iconanim "github.com/Gaurav-Gosain/iconanim/core"
	"github.com/Gaurav-Gosain/iconanim/internal/config"
	"github.com/Gaurav-Gosain/iconanim/internal/imgtool"
	"github.com/Gaurav-Gosain/iconanim/internal/pdftool"
)

func newShiftCmd() *cobra.Command {
	var (
		dx, dy int
		fill   string
	)
	cmd := &cobra.Command{
		Use:   "shift <input> <output>",
		Short: "Shift an image and fill the exposed area",
		Example: `  # Move 85 pixels right, filling with gray
  iconanim shift in.png out.png --dx 85 --fill "#969696"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.ParseColor(fill)
			if err != nil {
				return err
			}
			if err := iconanim.ShiftFile(cmd.Context(), args[0], args[1], dx, dy, c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Shifted image saved to: "+args[1]))
			return nil
		},
	}
	cmd.Flags().IntVar(&dx, "dx", 0, "horizontal shift in pixels, positive is right")
	cmd.Flags().IntVar(&dy, "dy", 0, "vertical shift in pixels, positive is down")
	cmd.Flags().StringVar(&fill, "fill", "#969696", "fill colour as #rrggbb or #rrggbbaa")
	return cmd
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fetch <url> <output>",
		Short:   "Download an image from a URL",
		Example: `  iconanim fetch https://example.com/cubism.jpg cubism.jpg`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imgtool.Download(cmd.Context(), nil, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Image saved as '%s'", args[1])))
			return nil
		},
	}
}

func newBase64Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Convert images to and from Base64",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <file>",
			Short: "Print a file as Base64",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := imgtool.EncodeBase64File(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <base64> <output>",
			Short: "Write Base64 data to a file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := imgtool.DecodeBase64ToFile(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Saved image to: "+args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <base64>",
			Short: "Check whether a string is valid Base64",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !imgtool.IsBase64(args[0]) {
					return fmt.Errorf("base64 validation: %w", imgtool.ErrInvalidBase64)
				}
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Base64 validation: Valid"))
				return nil
			},
		},
	)
	return cmd
}

func newPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Work with PDF documents",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "merge <output.pdf> <input.pdf>...",
		Short:   "Concatenate PDFs in the order given",
		Example: `  iconanim pdf merge envelope.pdf cover.pdf letter.pdf`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, inputs := args[0], args[1:]
			if err := pdftool.Merge(out, inputs...); err != nil {
				return err
			}
			n, err := pdftool.PageCount(out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Wrote the output file: "+out)+
				infoStyle.Render(fmt.Sprintf(" (%d pages)", n)))
			return nil
		},
	})
	return cmd
}
