// Package csl renders citations as CSL (Citation Style Language) items so
// the legal sources a document cites can be fed to Pandoc and reference
// managers as a bibliography.
package csl

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mastaal/nllegalcit/pkg/types"
)

// Item is a bibliographic entry. The field names and structure follow the
// CSL-JSON/CSL-YAML schema.
type Item struct {
	ID             string `json:"id" yaml:"id"`
	Type           string `json:"type" yaml:"type"`
	Title          string `json:"title" yaml:"title"`
	ContainerTitle string `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	Authority      string `json:"authority,omitempty" yaml:"authority,omitempty"`
	Number         string `json:"number,omitempty" yaml:"number,omitempty"`
	Page           string `json:"page,omitempty" yaml:"page,omitempty"`
	Issued         *Date  `json:"issued,omitempty" yaml:"issued,omitempty"`
}

// Date represents a date in CSL format using date-parts.
type Date struct {
	DateParts [][]int `json:"date-parts" yaml:"date-parts"`
}

var chambers = map[types.Kamer]string{
	types.KamerTK: "Tweede Kamer der Staten-Generaal",
	types.KamerEK: "Eerste Kamer der Staten-Generaal",
	types.KamerVV: "Verenigde Vergadering der Staten-Generaal",
}

// FromCitation converts a citation to a CSL item. Decisions become
// legal_case items keyed by their ECLI; parliamentary papers become bill
// items keyed in the style of officielebekendmakingen.nl ("kst-31700-VIII-3").
func FromCitation(c types.Citation) Item {
	switch x := c.(type) {
	case types.EcliCitation:
		return Item{
			ID:        x.String(),
			Type:      "legal_case",
			Title:     x.String(),
			Authority: x.Country + ":" + x.Court,
			Number:    x.Casenumber,
			Issued:    &Date{DateParts: [][]int{{x.Year}}},
		}
	case types.KamerstukCitation:
		item := Item{
			ID:             "kst-" + x.Dossiernummer + "-" + x.Ondernummer,
			Type:           "bill",
			Title:          x.String(),
			ContainerTitle: "Kamerstukken " + string(x.Kamer),
			Authority:      chambers[x.Kamer],
			Number:         x.Dossiernummer + ", nr. " + x.Ondernummer,
			Page:           x.Paginaverwijzing,
		}
		if from, _, ok := strings.Cut(x.Vergaderjaar, "-"); ok {
			if y, err := strconv.Atoi(from); err == nil {
				item.Issued = &Date{DateParts: [][]int{{y}}}
			}
		}
		return item
	}
	return Item{}
}

// Items converts cits, keeping one item per cited source in order of first
// citation. Page references of repeated citations are dropped.
func Items(cits []types.Citation) []Item {
	seen := make(map[string]bool, len(cits))
	items := make([]Item, 0, len(cits))
	for _, c := range cits {
		item := FromCitation(c)
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items
}

// Write writes the citations as a CSL-YAML list to w.
func Write(w io.Writer, cits []types.Citation) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Items(cits)); err != nil {
		return err
	}
	return enc.Close()
}
