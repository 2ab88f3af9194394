// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize collapses the surface variants of citation fields into
// their canonical form. Every function is pure and idempotent on its own
// output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	dossierSeparatorRe    = regexp.MustCompile(`[-.\s]+`)
	toevoegingSeparatorRe = regexp.MustCompile(`[.\s-]+`)
	dossiernummerRe       = regexp.MustCompile(`^\s*(\d{2}[ .-]?\d{3}|\d[ .]\d{3})(.*?)\s*$`)
	vergaderjaarRe        = regexp.MustCompile(`^\s*((?:1[89]|20)\d{2})(?:\s*(?:[-/–]|â€“)\s*(\d{4}|\d{2}))?\s*$`)
)

// Vergaderjaar builds the canonical session year "YYYY-YYYY" from the first
// year and either a second four-digit year or a two-digit fragment. A
// fragment takes the century of the first year, except that 1999 is
// followed by 2000 and 1899 by 1900. Without a second year the result is
// the single year, e.g. "2008".
func Vergaderjaar(first, second string) string {
	if second == "" {
		return first
	}
	if len(second) == 2 {
		switch first {
		case "1999":
			second = "2000"
		case "1899":
			second = "1900"
		default:
			second = first[:2] + second
		}
	}
	return first + "-" + second
}

// ParseVergaderjaar normalizes a written session year such as "2008/09",
// "1999/00", "2008-2009" or a single "2008". It reports false for anything
// else.
func ParseVergaderjaar(s string) (string, bool) {
	m := vergaderjaarRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return Vergaderjaar(m[1], m[2]), true
}

// Dossiernummer strips separators from the dossier number and, when a
// chapter suffix is present, strips it too, drops the word "hoofdstuk",
// and joins both parts with a single "-": "31 700" + " VIII" becomes
// "31700-VIII".
func Dossiernummer(number, toevoeging string) string {
	number = dossierSeparatorRe.ReplaceAllString(number, "")
	toevoeging = toevoegingSeparatorRe.ReplaceAllString(toevoeging, "")
	toevoeging = strings.ReplaceAll(toevoeging, "hoofdstuk", "")
	if toevoeging == "" {
		return number
	}
	return number + "-" + toevoeging
}

// ParseDossiernummer normalizes a written dossier number with an optional
// suffix, e.g. "31.700 VIII", "31700-VIII" or "9 700". Strings that do not
// start with a dossier number are returned trimmed but otherwise unchanged.
func ParseDossiernummer(s string) string {
	m := dossiernummerRe.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s)
	}
	return Dossiernummer(m[1], m[2])
}

// PageRange is a cited page range. An empty End marks an open range such
// as "4 e.v.".
type PageRange struct {
	Start string
	End   string
}

func (r PageRange) String() string {
	return r.Start + "-" + r.End
}

// Paginaverwijzing renders a page reference: the standalone pages first,
// then the ranges, joined by ",". A single item is returned bare and no
// items give "".
func Paginaverwijzing(pages []string, ranges []PageRange) string {
	items := make([]string, 0, len(pages)+len(ranges))
	items = append(items, pages...)
	for _, r := range ranges {
		items = append(items, r.String())
	}
	return strings.Join(items, ",")
}

// nlCourts maps lowercased Dutch ECLI court codes to their canonical
// spelling. The table is not exhaustive; codes missing from it are
// already written in their canonical form in practice.
var nlCourts = map[string]string{
	"hr":   "HR",
	"phr":  "PHR",
	"rvs":  "RvS",
	"crvb": "CRvB",
	"cbb":  "CBb",
}

// NLCourt canonicalizes a Dutch court code case-insensitively. Unknown
// codes pass through unchanged.
func NLCourt(court string) string {
	if c, ok := nlCourts[strings.ToLower(court)]; ok {
		return c
	}
	return court
}
