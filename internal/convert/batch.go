// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Handler consumes a converted document and returns a short note for the
// status line, such as a citation count.
type Handler func(Document) (string, error)

// Batch converts each path and hands the text to handle, printing one
// status line per document and a summary to w. Unsupported file types are
// skipped. A failure on one document does not stop the others.
func Batch(ctx context.Context, c Converter, paths []string, handle Handler, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.Failed++
			continue
		}

		doc, err := File(ctx, c, path)
		switch {
		case errors.Is(err, ErrUnsupported):
			fmt.Fprintf(w, "skipped:   %s (%v)\n", path, err)
			result.Skipped++
			continue
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.Failed++
			continue
		}

		note, err := handle(doc)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.Failed++
			continue
		}
		if note != "" {
			fmt.Fprintf(w, "converted: %s (%s)\n", path, note)
		} else {
			fmt.Fprintf(w, "converted: %s\n", path)
		}
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
