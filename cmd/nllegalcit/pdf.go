package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastaal/nllegalcit/internal/convert"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [files...]",
	Short: "Extract citations from PDF, HTML, or text files",
	Long: `Pdf converts each file to plain text and extracts its citations. PDFs
go through the configured backend (pdftotext on PATH, or the markitdown
container image via docker or podman); HTML and text files are read
directly. Status lines go to stderr, citations to stdout.`,
	RunE: runPDF,
}

func init() {
	addFormatFlag(pdfCmd)

	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more files")
	}
	ctx := cmd.Context()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	conv, err := pdfConverter(ctx, args)
	if err != nil {
		return err
	}
	cw, err := formatWriter(cmd)
	if err != nil {
		return err
	}

	result := convert.Batch(ctx, conv, args, func(doc convert.Document) (string, error) {
		cits := eng.CitationsMode(doc.Text, cfg.Engine.Mode)
		if err := cw.Write(doc.Source, cits); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d citations", len(cits)), nil
	}, os.Stderr)

	if err := cw.Flush(); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

// pdfConverter returns the configured PDF converter, or nil when no file
// in paths needs one.
func pdfConverter(ctx context.Context, paths []string) (convert.Converter, error) {
	if !anyPDF(paths) {
		return nil, nil
	}
	conv, err := convert.New(ctx, cfg.Conversion.Backend)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func anyPDF(paths []string) bool {
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ".pdf") {
			return true
		}
	}
	return false
}
