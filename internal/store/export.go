// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/mastaal/nllegalcit/internal/csl"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// ExportEntry is one stored citation with the source it was found in.
type ExportEntry struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Source   string         `json:"source" yaml:"source"`
	Position int            `json:"position" yaml:"position"`
	Citation types.Envelope `json:"citation" yaml:"citation"`
}

const exportLimit = 1000000

// ExportYAML writes the matching citations to export.yaml in the store
// directory and returns its path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the matching citations to export.json in the store
// directory and returns its path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

// ExportCSL writes the distinct sources cited by the matching citations
// to bibliography.yaml as CSL-YAML and returns its path.
func (s *Store) ExportCSL(ctx context.Context, opts QueryOptions) (string, error) {
	opts.MaxResults = exportLimit
	records, err := s.Query(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	cits := make([]types.Citation, len(records))
	for i, r := range records {
		cits[i] = r.Citation
	}
	var buf bytes.Buffer
	if err := csl.Write(&buf, cits); err != nil {
		return "", fmt.Errorf("marshaling CSL: %w", err)
	}
	return s.writeExport("bibliography.yaml", buf.Bytes())
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	records, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(records))
	for i, r := range records {
		entries[i] = ExportEntry{
			RunID:    r.RunID,
			Source:   r.Source,
			Position: r.Position,
			Citation: types.Wrap(r.Citation),
		}
	}
	return entries, nil
}
