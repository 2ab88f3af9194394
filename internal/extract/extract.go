// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns the occurrence nodes of a parse tree into typed
// citation records.
//
// Each citation family has a builder that folds a record-in-progress over
// the tokens of the occurrence's subtree. The builders dispatch on the
// rule and terminal names of the grammar resource, so those names are part
// of this package's contract.
package extract

import (
	"errors"

	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/parse"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// Occurrence rule names, one per citation family.
const (
	RuleKamerstuk = "kamerstuk"
	RuleCaseLaw   = "case_law"
)

// Extractor builds citations from parse trees. It is stateless apart from
// its logger and safe for concurrent use.
type Extractor struct {
	log *zap.Logger
}

// New returns an Extractor that reports dropped occurrences to log. A nil
// log discards them.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract returns the citations of tree in document order. In
// types.ModeKamerstuk only kamerstuk occurrences are considered. Occurrences
// that are incomplete or structurally invalid are skipped; they never
// affect the others.
func (x *Extractor) Extract(tree *parse.Tree, mode types.ExtractionMode) []types.Citation {
	var out []types.Citation
	tree.Root.Walk(func(n *parse.Node) bool {
		if n.Terminal {
			return false
		}
		switch n.Name {
		case RuleKamerstuk:
		case RuleCaseLaw:
			if mode == types.ModeKamerstuk {
				return false
			}
		default:
			return true
		}

		c, err := x.Occurrence(n)
		if err != nil {
			x.drop(n, err)
			return false
		}
		out = append(out, c)
		return false
	})
	return out
}

// Occurrence builds the citation for a single occurrence node. It returns
// an error wrapping ErrIncomplete when a required field is missing and a
// *StructureError when a token value is impossible.
func (x *Extractor) Occurrence(n *parse.Node) (types.Citation, error) {
	switch n.Name {
	case RuleKamerstuk:
		return buildKamerstuk(n)
	case RuleCaseLaw:
		return buildEcli(n)
	}
	return nil, &StructureError{Rule: n.Name, Token: n.Name, Value: n.Text}
}

func (x *Extractor) drop(n *parse.Node, err error) {
	fields := []zap.Field{
		zap.String("rule", n.Name),
		zap.String("matched_text", n.Text),
		zap.Int("start", n.Start),
		zap.Int("end", n.End),
		zap.Error(err),
	}
	var se *StructureError
	if errors.As(err, &se) {
		x.log.Warn("citation occurrence has an impossible value", fields...)
		return
	}
	x.log.Debug("dropping incomplete citation occurrence", fields...)
}

func occurrence(n *parse.Node) types.Occurrence {
	return types.Occurrence{MatchedText: n.Text, Start: n.Start, End: n.End}
}

// fold visits the tokens below n depth-first in document order and threads
// acc through step. step receives the name of the rule that directly
// contains the token.
func fold[P any](n *parse.Node, acc P, step func(acc P, rule string, tok *parse.Node) (P, error)) (P, error) {
	for _, c := range n.Children {
		var err error
		if c.Terminal {
			acc, err = step(acc, n.Name, c)
		} else {
			acc, err = fold(c, acc, step)
		}
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}
