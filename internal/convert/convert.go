// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns source documents (PDF, HTML, plain text) into the
// UTF-8 text the citation engine reads.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mastaal/nllegalcit/internal/container"
	"github.com/mastaal/nllegalcit/pkg/types"
)

const imageMarkitdown = "markitdown:latest"

// ErrUnsupported is returned for documents of a type no converter handles.
var ErrUnsupported = errors.New("unsupported document type")

// Converter turns a PDF into plain text. The pdftotext and markitdown
// backends implement it.
type Converter interface {
	Convert(ctx context.Context, pdf io.Reader) (string, error)
}

// Document is the text of one converted source.
type Document struct {
	// Source is the file path or URL the text came from.
	Source string
	Text   string
}

// ToolConverter converts PDFs with an external tool that reads the PDF on
// stdin and writes text to stdout.
type ToolConverter struct {
	tool container.Tool
}

// NewToolConverter checks that tool can run and wraps it.
func NewToolConverter(ctx context.Context, tool container.Tool) (*ToolConverter, error) {
	if err := tool.Check(ctx); err != nil {
		return nil, fmt.Errorf("%s not available: %w", tool.Name(), err)
	}
	return &ToolConverter{tool: tool}, nil
}

func (c *ToolConverter) Convert(ctx context.Context, pdf io.Reader) (string, error) {
	var out bytes.Buffer
	if err := c.tool.Run(ctx, pdf, &out); err != nil {
		return "", fmt.Errorf("converting with %s: %w", c.tool.Name(), err)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("%s produced empty output", c.tool.Name())
	}
	return out.String(), nil
}

// New returns the converter for backend. pdftotext must be on PATH;
// markitdown needs docker or podman with the markitdown image present.
func New(ctx context.Context, backend types.ConversionBackend) (*ToolConverter, error) {
	switch backend {
	case "", types.BackendPdftotext:
		return NewToolConverter(ctx, container.NewHostTool("pdftotext", "-enc", "UTF-8", "-", "-"))
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewToolConverter(ctx, &container.ImageTool{Runtime: rt, Image: imageMarkitdown})
	}
	return nil, fmt.Errorf("unknown conversion backend %q", backend)
}

// Content converts a document body according to its media type. PDFs go
// through c, HTML is reduced to its visible text and plain text is
// returned as is.
func Content(ctx context.Context, c Converter, contentType string, body []byte) (string, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case mt == "application/pdf":
		if c == nil {
			return "", fmt.Errorf("%w: no PDF converter configured", ErrUnsupported)
		}
		return c.Convert(ctx, bytes.NewReader(body))
	case mt == "text/html" || mt == "application/xhtml+xml":
		return HTMLToText(bytes.NewReader(body))
	case strings.HasPrefix(mt, "text/"):
		return string(body), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
}

// mediaTypes maps the file extensions File accepts to a media type.
var mediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".html": "text/html",
	".htm":  "text/html",
	".txt":  "text/plain",
	".md":   "text/markdown",
}

// File reads and converts the document at path, choosing the conversion by
// file extension.
func File(ctx context.Context, c Converter, path string) (Document, error) {
	mt, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	text, err := Content(ctx, c, mt, data)
	if err != nil {
		return Document{}, fmt.Errorf("converting %s: %w", path, err)
	}
	return Document{Source: path, Text: text}, nil
}
