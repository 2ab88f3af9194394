// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare checks the ECLI citations extracted from a decision
// against a reference list, such as the links LiDO records for it.
package compare

import (
	"fmt"
	"io"

	"github.com/mastaal/nllegalcit/pkg/types"
)

// Result splits two citation lists by identity. Each list keeps the order
// of first appearance and holds no duplicates.
type Result struct {
	Both          []types.EcliCitation
	OnlyFound     []types.EcliCitation
	OnlyReference []types.EcliCitation
}

// Agree reports whether both sides cite the same decisions.
func (r Result) Agree() bool {
	return len(r.OnlyFound) == 0 && len(r.OnlyReference) == 0
}

// Diff compares found with reference, ignoring where in the text a
// citation occurred and how often.
func Diff(found, reference []types.EcliCitation) Result {
	ref := index(reference)
	got := index(found)

	var r Result
	for _, c := range unique(found) {
		if _, ok := ref[c.String()]; ok {
			r.Both = append(r.Both, c)
		} else {
			r.OnlyFound = append(r.OnlyFound, c)
		}
	}
	for _, c := range unique(reference) {
		if _, ok := got[c.String()]; !ok {
			r.OnlyReference = append(r.OnlyReference, c)
		}
	}
	return r
}

func index(cs []types.EcliCitation) map[string]struct{} {
	m := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		m[c.String()] = struct{}{}
	}
	return m
}

func unique(cs []types.EcliCitation) []types.EcliCitation {
	seen := make(map[string]bool, len(cs))
	var out []types.EcliCitation
	for _, c := range cs {
		if k := c.String(); !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

// Report writes a per-decision summary of r to w.
func Report(w io.Writer, ecli string, r Result) {
	fmt.Fprintf(w, "%s: %d in common, %d only found, %d only in reference\n",
		ecli, len(r.Both), len(r.OnlyFound), len(r.OnlyReference))
	for _, c := range r.OnlyFound {
		fmt.Fprintf(w, "  + %s\n", c)
	}
	for _, c := range r.OnlyReference {
		fmt.Fprintf(w, "  - %s\n", c)
	}
}
