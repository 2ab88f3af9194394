// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Expression is the right-hand side of a rule alternative:
//
//	Expression = Sequence ("|" Sequence)* .
//	Sequence   = Term+ .
//	Term       = (<ident> | "(" Expression ")") ("?" | "*" | "+")? .
type Expression struct {
	Alternatives []*Sequence `parser:"@@ ( \"|\" @@ )*"`
}

// Sequence is a run of terms matched one after another.
type Sequence struct {
	Terms []*Term `parser:"@@+"`
}

// Term is a symbol reference or a parenthesized group, optionally repeated.
type Term struct {
	Symbol string      `parser:"(  @Ident"`
	Group  *Expression `parser:" | \"(\" @@ \")\" )"`
	Repeat string      `parser:"@( \"?\" | \"*\" | \"+\" )?"`
}

var exprParser = participle.MustBuild[Expression](participle.UseLookahead(2))

// ParseExpression parses an alternative's expression text.
func ParseExpression(src string) (*Expression, error) {
	return exprParser.ParseString("", src)
}

func (e *Expression) String() string {
	parts := make([]string, len(e.Alternatives))
	for i, s := range e.Alternatives {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

func (s *Sequence) String() string {
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func (t *Term) String() string {
	if t.Group != nil {
		return "(" + t.Group.String() + ")" + t.Repeat
	}
	return t.Symbol + t.Repeat
}

// symbols calls fn for every symbol name referenced anywhere in e.
func (e *Expression) symbols(fn func(string)) {
	for _, s := range e.Alternatives {
		for _, t := range s.Terms {
			if t.Group != nil {
				t.Group.symbols(fn)
				continue
			}
			fn(t.Symbol)
		}
	}
}
