// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/mastaal/nllegalcit/internal/normalize"
	"github.com/mastaal/nllegalcit/internal/parse"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// kamerTokens maps the chamber terminals to the chamber they name.
var kamerTokens = map[string]types.Kamer{
	"TK":     types.KamerTK,
	"TK_LOS": types.KamerTK,
	"EK":     types.KamerEK,
	"EK_LOS": types.KamerEK,
	"VV":     types.KamerVV,
}

// kamerstukPartial is the record-in-progress of a kamerstuk occurrence.
// Steps return modified copies; slices are never appended in place.
type kamerstukPartial struct {
	kamer          types.Kamer
	jaren          []string
	dossiernummer  string
	toevoeging     string
	ondernummer    string
	ondernummerTot string
	pages          []string
	ranges         []normalize.PageRange
}

func buildKamerstuk(n *parse.Node) (types.Citation, error) {
	p, err := fold(n, kamerstukPartial{}, kamerstukStep)
	if err != nil {
		return nil, err
	}
	return p.finish(n)
}

func kamerstukStep(p kamerstukPartial, rule string, tok *parse.Node) (kamerstukPartial, error) {
	switch tok.Name {
	case "KAMERSTUKKEN":
	case "TK", "TK_LOS", "EK", "EK_LOS", "VV":
		if rule != "kamer" && rule != "kamer_los" {
			return p, &StructureError{Rule: rule, Token: tok.Name, Value: tok.Text}
		}
		p.kamer = kamerTokens[tok.Name]
	case "JAAR4", "JAAR2":
		p.jaren = append(append([]string(nil), p.jaren...), tok.Text)
	case "DOSSIERNUMMER":
		p.dossiernummer = tok.Text
	case "DOSSIERNUMMER_TOEVOEGING":
		p.toevoeging = tok.Text
	case "ONDERNUMMER":
		p.ondernummer = tok.Text
	case "ONDERNUMMER_EIND":
		p.ondernummerTot = tok.Text
	case "PAGINA_LOS":
		p.pages = append(append([]string(nil), p.pages...), tok.Text)
	case "PAGINA_START":
		p.ranges = append(append([]normalize.PageRange(nil), p.ranges...), normalize.PageRange{Start: tok.Text})
	case "PAGINA_EIND":
		if len(p.ranges) == 0 {
			return p, &StructureError{Rule: rule, Token: tok.Name, Value: tok.Text}
		}
		ranges := append([]normalize.PageRange(nil), p.ranges...)
		ranges[len(ranges)-1].End = tok.Text
		p.ranges = ranges
	default:
		return p, &StructureError{Rule: rule, Token: tok.Name, Value: tok.Text}
	}
	return p, nil
}

func (p kamerstukPartial) finish(n *parse.Node) (types.Citation, error) {
	switch {
	case p.kamer == "":
		return nil, incomplete(RuleKamerstuk, "kamer")
	case p.dossiernummer == "":
		return nil, incomplete(RuleKamerstuk, "dossiernummer")
	case p.ondernummer == "":
		return nil, incomplete(RuleKamerstuk, "ondernummer")
	}

	var vergaderjaar string
	switch len(p.jaren) {
	case 0:
	case 1:
		vergaderjaar = normalize.Vergaderjaar(p.jaren[0], "")
	case 2:
		vergaderjaar = normalize.Vergaderjaar(p.jaren[0], p.jaren[1])
	default:
		return nil, &StructureError{Rule: "vergaderjaar", Token: "JAAR4", Value: p.jaren[2]}
	}

	ondernummer := p.ondernummer
	if p.ondernummerTot != "" {
		ondernummer += "-" + p.ondernummerTot
	}

	return types.KamerstukCitation{
		Occurrence:       occurrence(n),
		Kamer:            p.kamer,
		Vergaderjaar:     vergaderjaar,
		Dossiernummer:    normalize.Dossiernummer(p.dossiernummer, p.toevoeging),
		Ondernummer:      ondernummer,
		Paginaverwijzing: normalize.Paginaverwijzing(p.pages, p.ranges),
	}, nil
}
