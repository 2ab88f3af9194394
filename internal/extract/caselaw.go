// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/mastaal/nllegalcit/internal/normalize"
	"github.com/mastaal/nllegalcit/internal/parse"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// ecliFamily describes how one country family of ECLI rules fills its
// record. country is preset so that forms without a country token, such as
// "RvS:1984:AH0317", still produce a complete identifier.
type ecliFamily struct {
	country    string
	court      func(string) string
	casenumber func(string) string
}

func same(s string) string { return s }

var ecliFamilies = map[string]ecliFamily{
	"nl_ecli":    {country: "NL", court: normalize.NLCourt, casenumber: strings.ToUpper},
	"eu_ecli":    {country: "EU", court: same, casenumber: same},
	"ce_ecli":    {country: "CE", court: same, casenumber: same},
	"other_ecli": {court: same, casenumber: same},
}

type ecliPartial struct {
	family     ecliFamily
	country    string
	court      string
	year       int
	casenumber string
}

func buildEcli(n *parse.Node) (types.Citation, error) {
	if len(n.Children) != 1 || n.Children[0].Terminal {
		return nil, &StructureError{Rule: RuleCaseLaw, Token: RuleCaseLaw, Value: n.Text}
	}
	rule := n.Children[0]
	fam, ok := ecliFamilies[rule.Name]
	if !ok {
		return nil, &StructureError{Rule: RuleCaseLaw, Token: rule.Name, Value: rule.Text}
	}

	p, err := fold(rule, ecliPartial{family: fam, country: fam.country}, ecliStep)
	if err != nil {
		return nil, err
	}
	return p.finish(n)
}

func ecliStep(p ecliPartial, rule string, tok *parse.Node) (ecliPartial, error) {
	switch tok.Name {
	case "NL_COUNTRY", "EU_COUNTRY", "CE_COUNTRY", "OTHER_COUNTRY":
		p.country = strings.ToUpper(tok.Text)
	case "NL_ECLI_COURT", "NL_BARE_COURT", "EU_ECLI_COURT", "CE_ECLI_COURT", "OTHER_ECLI_COURT":
		p.court = p.family.court(tok.Text)
	case "ECLI_YEAR":
		year, err := strconv.Atoi(tok.Text)
		if err != nil {
			return p, &StructureError{Rule: rule, Token: tok.Name, Value: tok.Text}
		}
		p.year = year
	case "NL_ECLI_CASENUMBER", "EU_ECLI_CASENUMBER", "CE_ECLI_CASENUMBER", "OTHER_ECLI_CASENUMBER":
		p.casenumber = p.family.casenumber(tok.Text)
	default:
		return p, &StructureError{Rule: rule, Token: tok.Name, Value: tok.Text}
	}
	return p, nil
}

func (p ecliPartial) finish(n *parse.Node) (types.Citation, error) {
	switch {
	case p.country == "":
		return nil, incomplete("ecli", "country")
	case p.court == "":
		return nil, incomplete("ecli", "court")
	case p.year == 0:
		return nil, incomplete("ecli", "year")
	case p.casenumber == "":
		return nil, incomplete("ecli", "casenumber")
	}
	return types.EcliCitation{
		Occurrence: occurrence(n),
		Country:    p.country,
		Court:      p.court,
		Year:       p.year,
		Casenumber: p.casenumber,
	}, nil
}
