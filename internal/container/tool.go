// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"fmt"
	"io"
)

// Tool is a document-to-text program that reads the document on stdin and
// writes text to stdout.
type Tool interface {
	Name() string

	// Check returns nil when the tool can run.
	Check(ctx context.Context) error

	Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error
}

// HostTool runs a binary installed on the host, e.g. pdftotext.
type HostTool struct {
	Bin  string
	Args []string

	exec executor
}

// NewHostTool returns a Tool for bin invoked with args.
func NewHostTool(bin string, args ...string) *HostTool {
	return &HostTool{Bin: bin, Args: args, exec: defaultExec}
}

func (h *HostTool) Name() string { return h.Bin }

func (h *HostTool) Check(context.Context) error {
	if _, err := h.exec.LookPath(h.Bin); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", h.Bin, err)
	}
	return nil
}

func (h *HostTool) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if err := h.exec.Run(ctx, h.Bin, h.Args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s: %w", h.Bin, err)
	}
	return nil
}

// ImageTool runs a container image through a Runtime.
type ImageTool struct {
	Runtime Runtime
	Image   string
	Args    []string
}

func (i *ImageTool) Name() string { return i.Runtime.Name() + ":" + i.Image }

func (i *ImageTool) Check(ctx context.Context) error {
	return i.Runtime.ImageExists(ctx, i.Image)
}

func (i *ImageTool) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return i.Runtime.Run(ctx, i.Image, i.Args, stdin, stdout)
}
