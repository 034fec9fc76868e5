package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/walkthrough/pkg/export"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

func exportCmd(g *globalFlags) *cobra.Command {
	var (
		dir           string
		format        string
		width, height float64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every walkthrough step to svg, png or json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Export.Dir
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Export.Format
			}
			if !cmd.Flags().Changed("width") {
				width = cfg.Viewport.Width
			}
			if !cmd.Flags().Changed("height") {
				height = cfg.Viewport.Height
			}
			vp := layout.Viewport{Width: width, Height: height}
			if err := vp.Validate(); err != nil {
				return fmt.Errorf("viewport %w", err)
			}

			lang, err := icontext.ParseLanguage(cfg.Language)
			if err != nil {
				return err
			}
			texts := icontext.NewStore(cfg.IconTexts)
			texts.SetLanguage(lang)
			if err := texts.Load(); err != nil {
				// Frames still render; their panels carry the load error.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			tr := icontext.NewTranslator()
			if err := tr.SetLanguage(string(lang)); err != nil {
				return err
			}

			frames := export.BuildFrames(walkthrough.NewDefault(), export.FrameOptions{
				Viewport: vp,
				Texts:    texts,
				Labels:   export.LabelsFrom(tr),
			})
			paths, err := export.SaveFrames(cmd.Context(), dir, format, frames)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: svg, png or json (default from config)")
	cmd.Flags().Float64Var(&width, "width", 0, "Viewport width in pixels (default from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "Viewport height in pixels (default from config)")
	return cmd
}
