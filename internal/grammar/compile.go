// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grammar

import (
	"fmt"
	"strings"
)

// compiler lowers EBNF alternatives into BNF productions. Groups and
// repetitions become generated helper rules named "__<rule>_<n>", which are
// always inlined.
type compiler struct {
	g       *Grammar
	sources map[string]string
	anon    map[string]int
	repeats []repeat
}

// repeat remembers a "*" or "+" so nullable bodies can be rejected once
// nullability is known.
type repeat struct {
	rule string
	body *Symbol
}

func (g *Grammar) compile(start string, sources map[string]string) error {
	c := &compiler{g: g, sources: sources, anon: make(map[string]int)}
	g.byName = make(map[string]*Symbol)

	for _, t := range g.Terminals {
		c.symbol(t.Name, t)
	}
	for _, r := range g.Rules {
		c.symbol(r.Name, nil)
	}

	s, ok := g.byName[start]
	if !ok || s.IsTerminal() {
		return syntaxErr(g.Source, start, nil, "start symbol must be a rule")
	}
	g.Start = s

	for _, r := range g.Rules {
		lhs := g.byName[r.Name]
		for _, a := range r.Alternatives {
			for _, seq := range a.expr.Alternatives {
				c.production(lhs, c.sequence(r.Name, seq), a.Priority)
			}
		}
	}

	g.computeNullable()
	for _, rp := range c.repeats {
		if rp.body.Nullable {
			return syntaxErr(sources[rp.rule], rp.rule, nil,
				"repeated expression %s can match the empty string", rp.body.Name)
		}
	}
	g.computeFirst()
	filter, err := startFilter(g.first)
	if err != nil {
		return syntaxErr(g.Source, start, err, "compiling start terminals")
	}
	g.startFilter = filter
	return nil
}

func (c *compiler) symbol(name string, t *Terminal) *Symbol {
	s := &Symbol{
		ID:       len(c.g.Symbols),
		Name:     name,
		Terminal: t,
	}
	if t != nil {
		s.Hidden = strings.HasPrefix(name, "_")
	} else {
		s.Inline = strings.HasPrefix(name, "_")
	}
	c.g.Symbols = append(c.g.Symbols, s)
	c.g.byLHS = append(c.g.byLHS, nil)
	c.g.byName[name] = s
	return s
}

func (c *compiler) helper(rule string) *Symbol {
	base := strings.TrimLeft(rule, "_")
	c.anon[base]++
	return c.symbol(fmt.Sprintf("__%s_%d", base, c.anon[base]), nil)
}

func (c *compiler) production(lhs *Symbol, rhs []*Symbol, priority int) {
	p := &Production{
		ID:       len(c.g.Productions),
		LHS:      lhs,
		RHS:      rhs,
		Priority: priority,
		Order:    len(c.g.byLHS[lhs.ID]),
	}
	c.g.Productions = append(c.g.Productions, p)
	c.g.byLHS[lhs.ID] = append(c.g.byLHS[lhs.ID], p)
}

func (c *compiler) sequence(rule string, seq *Sequence) []*Symbol {
	rhs := make([]*Symbol, 0, len(seq.Terms))
	for _, t := range seq.Terms {
		rhs = append(rhs, c.term(rule, t))
	}
	return rhs
}

func (c *compiler) term(rule string, t *Term) *Symbol {
	var body *Symbol
	if t.Group != nil {
		body = c.helper(rule)
		for _, seq := range t.Group.Alternatives {
			c.production(body, c.sequence(rule, seq), 0)
		}
	} else {
		body = c.g.byName[t.Symbol]
	}

	switch t.Repeat {
	case "?":
		// present before absent, so the longer reading is declared first
		h := c.helper(rule)
		c.production(h, []*Symbol{body}, 0)
		c.production(h, nil, 0)
		return h
	case "*":
		h := c.helper(rule)
		c.production(h, []*Symbol{h, body}, 0)
		c.production(h, nil, 0)
		c.repeats = append(c.repeats, repeat{rule: rule, body: body})
		return h
	case "+":
		h := c.helper(rule)
		c.production(h, []*Symbol{h, body}, 0)
		c.production(h, []*Symbol{body}, 0)
		c.repeats = append(c.repeats, repeat{rule: rule, body: body})
		return h
	}
	return body
}

func (g *Grammar) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, p := range g.Productions {
			if p.LHS.Nullable {
				continue
			}
			all := true
			for _, s := range p.RHS {
				if !s.Nullable {
					all = false
					break
				}
			}
			if all {
				p.LHS.Nullable = true
				changed = true
			}
		}
	}
}

// computeFirst collects the terminals that can start a derivation of the
// start symbol.
func (g *Grammar) computeFirst() {
	visited := make(map[int]bool)
	seenTerm := make(map[int]bool)
	var walk func(s *Symbol)
	walk = func(s *Symbol) {
		if s.IsTerminal() {
			if !seenTerm[s.ID] {
				seenTerm[s.ID] = true
				g.first = append(g.first, s)
			}
			return
		}
		if visited[s.ID] {
			return
		}
		visited[s.ID] = true
		for _, p := range g.byLHS[s.ID] {
			for _, r := range p.RHS {
				walk(r)
				if !r.Nullable {
					break
				}
			}
		}
	}
	walk(g.Start)
}
