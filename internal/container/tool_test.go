package container

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestHostToolPassthrough(t *testing.T) {
	x := &fakeExecutor{
		installed: map[string]bool{"pdftotext": true},
		pipe: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			_, err := io.Copy(stdout, stdin)
			return err
		},
	}
	tool := &HostTool{Bin: "pdftotext", Args: []string{"-enc", "UTF-8", "-", "-"}, exec: x}

	if err := tool.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	var out bytes.Buffer
	if err := tool.Run(context.Background(), strings.NewReader("ECLI:NL:HR:2010:BK3474"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "ECLI:NL:HR:2010:BK3474" {
		t.Errorf("output = %q", out.String())
	}
	if len(x.calls) != 1 || x.calls[0] != "pdftotext -enc UTF-8 - -" {
		t.Errorf("calls = %v", x.calls)
	}
}

func TestHostToolMissing(t *testing.T) {
	tool := &HostTool{Bin: "pdftotext", exec: &fakeExecutor{}}
	err := tool.Check(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pdftotext not found on PATH") {
		t.Errorf("Check error = %v", err)
	}
}

func TestImageToolDocker(t *testing.T) {
	x := &fakeExecutor{
		succeeds: map[string]bool{
			"docker image inspect markitdown:latest":              true,
			"docker run --rm -i --network none markitdown:latest": true,
		},
	}
	tool := &ImageTool{Runtime: newDocker(x), Image: "markitdown:latest"}

	if got := tool.Name(); got != "docker:markitdown:latest" {
		t.Errorf("Name = %q", got)
	}
	if err := tool.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if err := tool.Run(context.Background(), strings.NewReader("%PDF"), io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	missing := &ImageTool{Runtime: newPodman(&fakeExecutor{}), Image: "markitdown:latest"}
	if err := missing.Check(context.Background()); err == nil {
		t.Error("Check should fail when the image is absent")
	}
}
