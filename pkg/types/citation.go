// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the citation records produced by extraction and the
// configuration structs shared by the CLI stages.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind names a citation family.
type Kind string

const (
	KindEcli      Kind = "ecli"
	KindKamerstuk Kind = "kamerstuk"
)

// Citation is a closed sum over EcliCitation and KamerstukCitation. The
// unexported marker keeps other packages from adding variants, so a type
// switch over the two concrete types is exhaustive.
type Citation interface {
	// Kind reports the citation family.
	Kind() Kind

	// Matched returns the occurrence that produced the citation.
	Matched() Occurrence

	// String renders the citation in its usual written form.
	String() string

	isCitation()
}

// Occurrence locates a citation in the text it was extracted from.
// Start and End are byte offsets; MatchedText is text[Start:End].
type Occurrence struct {
	MatchedText string `json:"matched_text" yaml:"matched_text"`
	Start       int    `json:"start" yaml:"start"`
	End         int    `json:"end" yaml:"end"`
}

// Matched returns the occurrence itself so embedding types satisfy Citation.
func (o Occurrence) Matched() Occurrence { return o }

// EcliCitation is a reference to case law by European Case Law Identifier.
type EcliCitation struct {
	Occurrence `yaml:",inline"`

	// Country is the ECLI country code, e.g. "NL", "EU", "CE", "DE".
	Country string `json:"country" yaml:"country"`

	// Court is the court or body abbreviation, e.g. "HR", "RvS", "C".
	Court string `json:"court" yaml:"court"`

	Year       int    `json:"year" yaml:"year"`
	Casenumber string `json:"casenumber" yaml:"casenumber"`
}

func (EcliCitation) isCitation() {}

// Kind implements Citation.
func (EcliCitation) Kind() Kind { return KindEcli }

// String renders the canonical identifier, e.g. "ECLI:NL:HR:2010:392".
func (c EcliCitation) String() string {
	return fmt.Sprintf("ECLI:%s:%s:%d:%s", c.Country, c.Court, c.Year, c.Casenumber)
}

// GoString renders the citation as a Go composite literal for test tables.
func (c EcliCitation) GoString() string {
	return fmt.Sprintf("types.EcliCitation{Country: %q, Court: %q, Year: %d, Casenumber: %q}",
		c.Country, c.Court, c.Year, c.Casenumber)
}

// Equal reports structural equality over the identifier fields. The
// occurrence is ignored.
func (c EcliCitation) Equal(o EcliCitation) bool {
	return c.Country == o.Country &&
		c.Court == o.Court &&
		c.Year == o.Year &&
		c.Casenumber == o.Casenumber
}

// Kamer is the chamber that issued a parliamentary document. The stored
// value is the Roman marker used in citations, not the source abbreviation.
type Kamer string

const (
	KamerTK Kamer = "II" // Tweede Kamer
	KamerEK Kamer = "I"  // Eerste Kamer
	KamerVV Kamer = "VV" // Verenigde Vergadering
)

// Valid reports whether k is one of the three known chambers.
func (k Kamer) Valid() bool {
	switch k {
	case KamerTK, KamerEK, KamerVV:
		return true
	}
	return false
}

func (k Kamer) goName() string {
	switch k {
	case KamerTK:
		return "types.KamerTK"
	case KamerEK:
		return "types.KamerEK"
	case KamerVV:
		return "types.KamerVV"
	}
	return strconv.Quote(string(k))
}

// KamerstukCitation is a reference to a Dutch parliamentary document.
//
// Vergaderjaar is empty when the citation names no session year.
// Paginaverwijzing is empty when no pages are cited. Rijksdossiernummer is
// reserved and never populated.
type KamerstukCitation struct {
	Occurrence `yaml:",inline"`

	Kamer              Kamer  `json:"kamer" yaml:"kamer"`
	Vergaderjaar       string `json:"vergaderjaar,omitempty" yaml:"vergaderjaar,omitempty"`
	Dossiernummer      string `json:"dossiernummer" yaml:"dossiernummer"`
	Ondernummer        string `json:"ondernummer" yaml:"ondernummer"`
	Paginaverwijzing   string `json:"paginaverwijzing,omitempty" yaml:"paginaverwijzing,omitempty"`
	Rijksdossiernummer string `json:"rijksdossiernummer,omitempty" yaml:"rijksdossiernummer,omitempty"`
}

func (KamerstukCitation) isCitation() {}

// Kind implements Citation.
func (KamerstukCitation) Kind() Kind { return KindKamerstuk }

// String renders the citation in the conventional Dutch notation, e.g.
// "Kamerstukken II 2008-2009, 31700-VIII, nr. 32, p. 3".
func (c KamerstukCitation) String() string {
	var b strings.Builder
	b.WriteString("Kamerstukken ")
	b.WriteString(string(c.Kamer))
	if c.Vergaderjaar != "" {
		b.WriteString(" ")
		b.WriteString(c.Vergaderjaar)
	}
	b.WriteString(", ")
	b.WriteString(c.Dossiernummer)
	if c.Rijksdossiernummer != "" {
		fmt.Fprintf(&b, " (%s)", c.Rijksdossiernummer)
	}
	b.WriteString(", nr. ")
	b.WriteString(c.Ondernummer)
	if c.Paginaverwijzing != "" {
		b.WriteString(", p. ")
		b.WriteString(c.Paginaverwijzing)
	}
	return b.String()
}

// GoString renders the citation as a Go composite literal for test tables.
func (c KamerstukCitation) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "types.KamerstukCitation{Kamer: %s, ", c.Kamer.goName())
	if c.Vergaderjaar != "" {
		fmt.Fprintf(&b, "Vergaderjaar: %q, ", c.Vergaderjaar)
	}
	fmt.Fprintf(&b, "Dossiernummer: %q, Ondernummer: %q", c.Dossiernummer, c.Ondernummer)
	if c.Paginaverwijzing != "" {
		fmt.Fprintf(&b, ", Paginaverwijzing: %q", c.Paginaverwijzing)
	}
	if c.Rijksdossiernummer != "" {
		fmt.Fprintf(&b, ", Rijksdossiernummer: %q", c.Rijksdossiernummer)
	}
	b.WriteString("}")
	return b.String()
}

// Equal reports structural equality over all citation fields. The
// occurrence is ignored.
func (c KamerstukCitation) Equal(o KamerstukCitation) bool {
	return c.Kamer == o.Kamer &&
		c.Vergaderjaar == o.Vergaderjaar &&
		c.Dossiernummer == o.Dossiernummer &&
		c.Ondernummer == o.Ondernummer &&
		c.Paginaverwijzing == o.Paginaverwijzing &&
		c.Rijksdossiernummer == o.Rijksdossiernummer
}

// Equal compares two citations structurally. Citations of different kinds
// are never equal.
func Equal(a, b Citation) bool {
	switch x := a.(type) {
	case EcliCitation:
		y, ok := b.(EcliCitation)
		return ok && x.Equal(y)
	case KamerstukCitation:
		y, ok := b.(KamerstukCitation)
		return ok && x.Equal(y)
	}
	return false
}

// ErrInvalidECLI is returned by ParseECLI for strings that are not a
// canonical European Case Law Identifier.
var ErrInvalidECLI = errors.New("invalid ECLI")

var canonicalECLIRe = regexp.MustCompile(`^ECLI:([A-Z]{2}):([A-Za-z0-9]{1,7}):(\d{4}):([A-Za-z0-9.]{1,25})$`)

// ParseECLI parses a canonical identifier such as "ECLI:NL:HR:2010:392"
// without going through the grammar. It is meant for identifiers coming
// from registries, which are already well formed; free text goes through
// the engine instead.
func ParseECLI(s string) (EcliCitation, error) {
	m := canonicalECLIRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return EcliCitation{}, fmt.Errorf("%w: %q", ErrInvalidECLI, s)
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return EcliCitation{}, fmt.Errorf("%w: year %q: %v", ErrInvalidECLI, m[3], err)
	}
	return EcliCitation{
		Occurrence: Occurrence{MatchedText: m[0], End: len(m[0])},
		Country:    m[1],
		Court:      m[2],
		Year:       year,
		Casenumber: m[4],
	}, nil
}

// Envelope tags a citation with its kind so lists of mixed citations can be
// serialized and read back.
type Envelope struct {
	Kind      Kind               `json:"kind" yaml:"kind"`
	Ecli      *EcliCitation      `json:"ecli,omitempty" yaml:"ecli,omitempty"`
	Kamerstuk *KamerstukCitation `json:"kamerstuk,omitempty" yaml:"kamerstuk,omitempty"`
}

// Wrap puts c in an Envelope.
func Wrap(c Citation) Envelope {
	switch x := c.(type) {
	case EcliCitation:
		return Envelope{Kind: KindEcli, Ecli: &x}
	case KamerstukCitation:
		return Envelope{Kind: KindKamerstuk, Kamerstuk: &x}
	}
	return Envelope{}
}

// WrapAll wraps every citation in cs, preserving order.
func WrapAll(cs []Citation) []Envelope {
	out := make([]Envelope, len(cs))
	for i, c := range cs {
		out[i] = Wrap(c)
	}
	return out
}

// Citation unwraps the envelope. It returns nil for an empty envelope.
func (e Envelope) Citation() Citation {
	switch {
	case e.Kind == KindEcli && e.Ecli != nil:
		return *e.Ecli
	case e.Kind == KindKamerstuk && e.Kamerstuk != nil:
		return *e.Kamerstuk
	}
	return nil
}
