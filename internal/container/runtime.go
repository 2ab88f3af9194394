// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs the external tools that turn documents into
// text, either directly on the host or inside a docker or podman container.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime is a container engine able to run conversion images.
type Runtime interface {
	// Name returns "docker" or "podman".
	Name() string

	// Available reports whether the binary is on PATH and its daemon or
	// machine answers "info".
	Available(ctx context.Context) bool

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts image with args, without network access, streaming stdin
	// into the container and its stdout back.
	Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts process execution for tests.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes name. Stderr is captured and appended to the error so a
// failing tool explains itself.
func (osExecutor) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// engine implements Runtime. Docker and podman differ only in the binary
// and in how an image is looked up.
type engine struct {
	bin        string
	imageCheck []string
	exec       executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available(ctx context.Context) bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.Run(ctx, e.bin, []string{"info"}, nil, io.Discard) == nil
}

func (e *engine) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string(nil), e.imageCheck...), image)
	if err := e.exec.Run(ctx, e.bin, args, nil, io.Discard); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, e.bin, err)
	}
	return nil
}

func (e *engine) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", "--network", "none", image}, args...)
	if err := e.exec.Run(ctx, e.bin, full, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", e.bin, image, err)
	}
	return nil
}

func newDocker(x executor) *engine {
	return &engine{bin: binDocker, imageCheck: []string{"image", "inspect"}, exec: x}
}

func newPodman(x executor) *engine {
	return &engine{bin: binPodman, imageCheck: []string{"image", "exists"}, exec: x}
}

var defaultExec executor = osExecutor{}

// DetectRuntime returns docker when it works and podman otherwise.
func DetectRuntime(ctx context.Context) (Runtime, error) {
	return detectRuntime(ctx, defaultExec)
}

func detectRuntime(ctx context.Context, x executor) (Runtime, error) {
	for _, rt := range []*engine{newDocker(x), newPodman(x)} {
		if rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman)
}
