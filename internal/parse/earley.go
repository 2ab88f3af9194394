// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse implements a scannerless Earley parser that locates
// occurrences of the grammar's start rule anywhere inside a text.
//
// At each offset where a start terminal matches, an Earley recognizer runs
// over a sparse chart keyed by byte offset, with the Aycock-Horspool
// treatment of nullable rules. The longest recognized occurrence is turned
// into a tree and scanning resumes after it. Offsets where nothing is
// recognized are skipped one rune at a time, so text around citations is
// never part of the tree. Stretches where no start terminal can match are
// skipped with a single regexp search.
//
// Recognition cost grows quadratically with the length of one occurrence
// (e.g. a list of thousands of page numbers); callers bound it with a
// timeout on the surrounding work.
package parse

import (
	"container/heap"
	"sort"
	"unicode/utf8"

	"github.com/mastaal/nllegalcit/internal/grammar"
)

// Parser parses texts with a fixed grammar. It holds no per-call state and
// is safe for concurrent use.
type Parser struct {
	g *grammar.Grammar
}

// New returns a parser for g.
func New(g *grammar.Grammar) *Parser {
	return &Parser{g: g}
}

// Grammar returns the grammar the parser was built with.
func (p *Parser) Grammar() *grammar.Grammar { return p.g }

// Parse finds every occurrence of the start rule in text. A text without
// occurrences yields a tree whose root has no children.
func (p *Parser) Parse(text string) *Tree {
	r := &run{g: p.g, text: text, matches: make(map[matchKey]int)}
	root := &Node{Name: p.g.Start.Name, Start: 0, End: len(text), Text: text}

	for pos := 0; pos < len(text); {
		if pos = p.g.NextStart(text, pos); pos < 0 {
			break
		}
		if r.canStart(pos) {
			c, end := r.recognize(pos)
			if end > pos {
				b := &builder{run: r, chart: c, active: make(map[spanKey]bool)}
				if nodes, ok := b.build(p.g.Start, pos, end); ok {
					root.Children = append(root.Children, nodes...)
					pos = end
					continue
				}
			}
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return &Tree{Text: text, Root: root}
}

// run is the state of one Parse call. Terminal matches are memoized for
// the duration of one recognize call and the tree built from it.
type run struct {
	g       *grammar.Grammar
	text    string
	matches map[matchKey]int
}

type matchKey struct {
	sym, pos int
}

func (r *run) match(s *grammar.Symbol, pos int) int {
	k := matchKey{s.ID, pos}
	if end, ok := r.matches[k]; ok {
		return end
	}
	end := s.Terminal.Match(r.text, pos)
	r.matches[k] = end
	return end
}

func (r *run) canStart(pos int) bool {
	for _, t := range r.g.StartTerminals() {
		if t.Terminal.Match(r.text, pos) >= 0 {
			return true
		}
	}
	return false
}

// recognize runs the Earley recognizer from offset start and returns the
// chart together with the end of the longest occurrence, or -1.
func (r *run) recognize(start int) (*chart, int) {
	clear(r.matches)
	c := newChart()
	for _, p := range r.g.ProductionsFor(r.g.Start) {
		c.add(start, item{prod: p, origin: start})
	}

	best := -1
	for c.pending.Len() > 0 {
		pos := heap.Pop(&c.pending).(int)
		c.positions = append(c.positions, pos)
		set := c.sets[pos]

		for i := 0; i < len(set.items); i++ {
			it := set.items[i]

			if it.complete() {
				if it.prod.LHS == r.g.Start && it.origin == start && pos > start {
					best = pos
				}
				origin := c.sets[it.origin]
				for j := 0; j < len(origin.items); j++ {
					o := origin.items[j]
					if !o.complete() && o.next() == it.prod.LHS {
						c.add(pos, o.advance())
					}
				}
				continue
			}

			next := it.next()
			if next.IsTerminal() {
				if end := r.match(next, pos); end > pos {
					c.add(end, it.advance())
				}
				continue
			}
			for _, p := range r.g.ProductionsFor(next) {
				c.add(pos, item{prod: p, origin: pos})
			}
			if next.Nullable {
				c.add(pos, it.advance())
			}
		}
	}
	return c, best
}

// item is a dotted production with the offset where its match began.
type item struct {
	prod   *grammar.Production
	dot    int
	origin int
}

func (it item) complete() bool        { return it.dot == len(it.prod.RHS) }
func (it item) next() *grammar.Symbol { return it.prod.RHS[it.dot] }

func (it item) advance() item {
	return item{prod: it.prod, dot: it.dot + 1, origin: it.origin}
}

type doneKey struct {
	lhs, origin int
}

// itemSet holds the items of one chart position. done indexes the complete
// items by left-hand side and origin for tree construction.
type itemSet struct {
	items []item
	index map[item]struct{}
	done  map[doneKey][]*grammar.Production
}

// chart is sparse: only offsets reached by a terminal match get a set.
type chart struct {
	sets      map[int]*itemSet
	pending   offsetHeap
	positions []int // processed offsets, ascending
}

func newChart() *chart {
	return &chart{sets: make(map[int]*itemSet)}
}

func (c *chart) add(pos int, it item) {
	set, ok := c.sets[pos]
	if !ok {
		set = &itemSet{
			index: make(map[item]struct{}),
			done:  make(map[doneKey][]*grammar.Production),
		}
		c.sets[pos] = set
		heap.Push(&c.pending, pos)
	}
	if _, dup := set.index[it]; dup {
		return
	}
	set.index[it] = struct{}{}
	set.items = append(set.items, it)
	if it.complete() {
		k := doneKey{it.prod.LHS.ID, it.origin}
		set.done[k] = append(set.done[k], it.prod)
	}
}

func (c *chart) has(pos int, it item) bool {
	set, ok := c.sets[pos]
	if !ok {
		return false
	}
	_, found := set.index[it]
	return found
}

// completed returns the productions of lhs that span [origin, end].
func (c *chart) completed(lhs *grammar.Symbol, origin, end int) []*grammar.Production {
	set, ok := c.sets[end]
	if !ok {
		return nil
	}
	return set.done[doneKey{lhs.ID, origin}]
}

type offsetHeap []int

func (h offsetHeap) Len() int           { return len(h) }
func (h offsetHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h offsetHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *offsetHeap) Push(x any)        { *h = append(*h, x.(int)) }

func (h *offsetHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// builder extracts one tree from a recognized chart. Among derivations of
// a symbol over a span it takes the highest-priority production, then the
// one declared first; within a production, later symbols take the
// shortest span that still completes, leaving earlier symbols greedy.
type builder struct {
	*run
	chart  *chart
	active map[spanKey]bool
}

type spanKey struct {
	sym, start, end int
}

func (b *builder) derives(s *grammar.Symbol, start, end int) bool {
	if s.IsTerminal() {
		return b.match(s, start) == end
	}
	return len(b.chart.completed(s, start, end)) > 0
}

// build returns the nodes s contributes over [start, end]: one node, the
// children of an inlined rule, or nothing for a hidden terminal.
func (b *builder) build(s *grammar.Symbol, start, end int) ([]*Node, bool) {
	if s.IsTerminal() {
		if s.Hidden {
			return nil, true
		}
		return []*Node{{
			Name:     s.Name,
			Terminal: true,
			Start:    start,
			End:      end,
			Text:     b.text[start:end],
		}}, true
	}

	key := spanKey{s.ID, start, end}
	if b.active[key] {
		return nil, false
	}
	b.active[key] = true
	defer delete(b.active, key)

	prods := append([]*grammar.Production(nil), b.chart.completed(s, start, end)...)
	sort.SliceStable(prods, func(i, j int) bool {
		if prods[i].Priority != prods[j].Priority {
			return prods[i].Priority > prods[j].Priority
		}
		return prods[i].Order < prods[j].Order
	})

	for _, p := range prods {
		children, ok := b.split(p, start, end)
		if !ok {
			continue
		}
		if s.Inline {
			return children, true
		}
		return []*Node{{
			Name:     s.Name,
			Start:    start,
			End:      end,
			Text:     b.text[start:end],
			Children: children,
		}}, true
	}
	return nil, false
}

// split assigns a span to each symbol of p over [start, end], right to
// left, and builds the children.
func (b *builder) split(p *grammar.Production, start, end int) ([]*Node, bool) {
	parts := make([][]*Node, len(p.RHS))
	right := end

	for k := len(p.RHS) - 1; k >= 0; k-- {
		sym := p.RHS[k]
		prefix := item{prod: p, dot: k, origin: start}
		found := false

		i := sort.SearchInts(b.chart.positions, right+1) - 1
		for ; i >= 0 && b.chart.positions[i] >= start; i-- {
			m := b.chart.positions[i]
			if !b.chart.has(m, prefix) || !b.derives(sym, m, right) {
				continue
			}
			nodes, ok := b.build(sym, m, right)
			if !ok {
				continue
			}
			parts[k] = nodes
			right = m
			found = true
			break
		}
		if !found {
			return nil, false
		}
	}
	if right != start {
		return nil, false
	}

	var children []*Node
	for _, nodes := range parts {
		children = append(children, nodes...)
	}
	return children, true
}
