package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mastaal/nllegalcit/internal/csl"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// sourceCitations is the output record for one input document.
type sourceCitations struct {
	Source    string           `json:"source" yaml:"source"`
	Citations []types.Envelope `json:"citations" yaml:"citations"`
}

// citationWriter prints citations in the format chosen with --format.
// JSON, YAML and CSL output is buffered and written once by Flush.
type citationWriter struct {
	w      io.Writer
	format string
	buffer []sourceCitations
	all    []types.Citation
}

func newCitationWriter(w io.Writer, format string) (*citationWriter, error) {
	switch format {
	case "", "text", "json", "yaml", "csl":
	default:
		return nil, fmt.Errorf("unsupported format %q: use text, json, yaml, or csl", format)
	}
	return &citationWriter{w: w, format: format}, nil
}

// Write records the citations found in source.
func (cw *citationWriter) Write(source string, cits []types.Citation) error {
	switch cw.format {
	case "json", "yaml":
		cw.buffer = append(cw.buffer, sourceCitations{Source: source, Citations: types.WrapAll(cits)})
		return nil
	case "csl":
		cw.all = append(cw.all, cits...)
		return nil
	}
	for _, c := range cits {
		if _, err := fmt.Fprintln(cw.w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered structured output.
func (cw *citationWriter) Flush() error {
	switch cw.format {
	case "json":
		enc := json.NewEncoder(cw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(cw.buffer)
	case "yaml":
		enc := yaml.NewEncoder(cw.w)
		enc.SetIndent(2)
		if err := enc.Encode(cw.buffer); err != nil {
			return err
		}
		return enc.Close()
	case "csl":
		return csl.Write(cw.w, cw.all)
	}
	return nil
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "text", "output format: text, json, yaml, or csl (CSL-YAML bibliography)")
}

func formatWriter(cmd *cobra.Command) (*citationWriter, error) {
	format, _ := cmd.Flags().GetString("format")
	return newCitationWriter(cmd.OutOrStdout(), format)
}

// readInputs returns the text of each named file, or of stdin when no
// files are given or a name is "-".
func readInputs(cmd *cobra.Command, args []string) (names, texts []string, err error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, a := range args {
		var data []byte
		if a == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(a)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", a, err)
		}
		names = append(names, a)
		texts = append(texts, strings.ToValidUTF8(string(data), "�"))
	}
	return names, texts, nil
}
