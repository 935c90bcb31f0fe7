package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/mahar/pkg/export"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the articles and FAQ as one Markdown document",
	Long: "export renders every article and FAQ entry into a single Markdown\n" +
		"document, printed or written to --out. --manifest also writes a build\n" +
		"manifest listing the content files and the validation result.",
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "write the document to this file instead of stdout")
	exportCmd.Flags().String("title", "", "document title (default the site name)")
	exportCmd.Flags().String("manifest", "", "write a build manifest (JSON) to this file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, src, err := loadContent(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = c.Site.Name
	}
	if title == "" {
		title = "mahar"
	}
	outPath, _ := cmd.Flags().GetString("out")
	manifestPath, _ := cmd.Flags().GetString("manifest")

	w := cmd.OutOrStdout()
	if outPath == "" {
		doc, err := export.GenerateMarkdown(c, title, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprint(w, doc)
	} else {
		if err := export.SaveMarkdownToFile(c, title, outPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s (%d articles)\n", outPath, len(c.Articles))
	}

	if manifestPath != "" {
		m, err := export.BuildManifest(src.FS(), src.Path, validate.Content(c), time.Now())
		if err != nil {
			return err
		}
		if err := export.SaveManifest(m, manifestPath); err != nil {
			return err
		}
		if outPath != "" {
			fmt.Fprintf(w, "Wrote %s (%d files)\n", manifestPath, len(m.Files))
		}
	}
	return nil
}
