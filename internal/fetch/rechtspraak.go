// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/convert"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// lidoCaseLawPrefix starts every linked resource that is a decision.
const lidoCaseLawPrefix = "http://linkeddata.overheid.nl/terms/jurisprudentie/id/"

// uitspraak is the part of the rechtspraak.nl document API response we use.
type uitspraak struct {
	UitspraakTekst string `json:"UitspraakTekst"`
}

// Uitspraak returns the plain text of the decision identified by ecli,
// taken from the HTML body of the rechtspraak.nl document API.
func (c *Client) Uitspraak(ctx context.Context, ecli string) (string, error) {
	u := c.cfg.RechtspraakURL + "?" + url.Values{"id": {ecli}}.Encode()
	resp, err := c.Get(ctx, u)
	if err != nil {
		return "", err
	}

	var doc uitspraak
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return "", fmt.Errorf("parsing rechtspraak response for %s: %w", ecli, err)
	}
	if strings.TrimSpace(doc.UitspraakTekst) == "" {
		return "", fmt.Errorf("rechtspraak response for %s has no decision text", ecli)
	}
	return convert.HTMLToText(strings.NewReader(doc.UitspraakTekst))
}

// rdfDocument is the subset of a LiDO RDF/XML description we decode.
type rdfDocument struct {
	XMLName      xml.Name `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# RDF"`
	Descriptions []struct {
		Links []struct {
			Resource string `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
		} `xml:"http://linkeddata.overheid.nl/terms/ linkt"`
	} `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description"`
}

// LidoLinks returns the decisions LiDO records as cited by ecli, in
// document order. Linked resources that are not decisions, or whose
// identifier is not a valid ECLI, are skipped.
func (c *Client) LidoLinks(ctx context.Context, ecli string) ([]types.EcliCitation, error) {
	resp, err := c.Get(ctx, c.cfg.LidoURL+ecli)
	if err != nil {
		return nil, err
	}

	var doc rdfDocument
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing LiDO response for %s: %w", ecli, err)
	}

	var out []types.EcliCitation
	for _, d := range doc.Descriptions {
		for _, l := range d.Links {
			id, ok := strings.CutPrefix(l.Resource, lidoCaseLawPrefix)
			if !ok || !strings.HasPrefix(id, "ECLI") {
				continue
			}
			cit, err := types.ParseECLI(id)
			if err != nil {
				c.log.Debug("skipping LiDO link", zap.String("resource", l.Resource), zap.Error(err))
				continue
			}
			out = append(out, cit)
		}
	}
	return out, nil
}
