// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package csl

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/mastaal/nllegalcit/pkg/types"
)

var (
	hr = types.EcliCitation{Country: "NL", Court: "HR", Year: 2010, Casenumber: "BK3474"}

	begroting = types.KamerstukCitation{
		Kamer:            types.KamerTK,
		Vergaderjaar:     "2008-2009",
		Dossiernummer:    "31700-VIII",
		Ondernummer:      "3",
		Paginaverwijzing: "4-5",
	}
)

func TestFromCitationEcli(t *testing.T) {
	item := FromCitation(hr)

	if item.Type != "legal_case" {
		t.Errorf("Type = %q, want %q", item.Type, "legal_case")
	}
	if item.ID != "ECLI:NL:HR:2010:BK3474" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.Authority != "NL:HR" {
		t.Errorf("Authority = %q, want %q", item.Authority, "NL:HR")
	}
	if item.Number != "BK3474" {
		t.Errorf("Number = %q, want %q", item.Number, "BK3474")
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2010 {
		t.Errorf("Issued year should be 2010")
	}
}

func TestFromCitationKamerstuk(t *testing.T) {
	item := FromCitation(begroting)

	if item.Type != "bill" {
		t.Errorf("Type = %q, want %q", item.Type, "bill")
	}
	if item.ID != "kst-31700-VIII-3" {
		t.Errorf("ID = %q, want %q", item.ID, "kst-31700-VIII-3")
	}
	if item.ContainerTitle != "Kamerstukken II" {
		t.Errorf("ContainerTitle = %q", item.ContainerTitle)
	}
	if item.Authority != "Tweede Kamer der Staten-Generaal" {
		t.Errorf("Authority = %q", item.Authority)
	}
	if item.Number != "31700-VIII, nr. 3" {
		t.Errorf("Number = %q", item.Number)
	}
	if item.Page != "4-5" {
		t.Errorf("Page = %q, want %q", item.Page, "4-5")
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2008 {
		t.Errorf("Issued year should be 2008")
	}
}

func TestFromCitationKamerstukWithoutYear(t *testing.T) {
	k := begroting
	k.Vergaderjaar = ""
	if item := FromCitation(k); item.Issued != nil {
		t.Errorf("Issued should be nil without vergaderjaar, got %v", item.Issued.DateParts)
	}
}

func TestItemsDeduplicates(t *testing.T) {
	other := begroting
	other.Paginaverwijzing = "12"

	items := Items([]types.Citation{begroting, hr, other, hr})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "kst-31700-VIII-3" || items[1].ID != "ECLI:NL:HR:2010:BK3474" {
		t.Errorf("items = %+v", items)
	}
	if items[0].Page != "4-5" {
		t.Errorf("first citation's page should win, got %q", items[0].Page)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []types.Citation{hr, begroting}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"id: ECLI:NL:HR:2010:BK3474", "type: legal_case", "container-title: Kamerstukken II", "date-parts:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	var items []Item
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty output = %q, want []", buf.String())
	}
}
