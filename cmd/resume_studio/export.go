package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/export"
)

var (
	exportServerURL string
	exportTemplate  string
	exportOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume preview of a running server to PDF",
	Long:  `Print the /preview page of a running Resume Studio server to PDF using headless Chrome. Requires Chrome/Chromium to be installed.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportServerURL, "server", "http://localhost:8080", "Base URL of the running server")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "modern", "Template to render: modern, classic or minimal")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "resume.pdf", "Output PDF path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	base, err := url.Parse(exportServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	previewURL := base.JoinPath("preview")
	previewURL.RawQuery = url.Values{"template": {exportTemplate}}.Encode()

	pdf, err := export.PrintPDF(cmd.Context(), previewURL.String(), nil)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := os.WriteFile(exportOutput, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", exportOutput, len(pdf))
	return nil
}
