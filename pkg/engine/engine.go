// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the public entry point for citation extraction. An
// Engine pairs a compiled grammar with a parser and an extractor. It is
// immutable once built and may be shared by any number of goroutines.
//
//	e, err := engine.New()
//	if err != nil {
//		return err
//	}
//	for _, c := range e.Citations(text) {
//		fmt.Println(c)
//	}
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mastaal/nllegalcit/internal/extract"
	"github.com/mastaal/nllegalcit/internal/grammar"
	"github.com/mastaal/nllegalcit/internal/parse"
	"github.com/mastaal/nllegalcit/pkg/types"
)

// Mode selects which citation families Extract returns.
type Mode = types.ExtractionMode

const (
	ModeAll       = types.ModeAll
	ModeKamerstuk = types.ModeKamerstuk
)

// Engine extracts citations from text.
type Engine struct {
	grammar   *grammar.Grammar
	parser    *parse.Parser
	extractor *extract.Extractor
}

type options struct {
	grammarFile string
	log         *zap.Logger
}

// Option configures New.
type Option func(*options)

// WithGrammarFile loads the grammar from a YAML document on disk instead
// of the embedded one.
func WithGrammarFile(path string) Option {
	return func(o *options) { o.grammarFile = path }
}

// WithLogger sets the logger for dropped occurrences. The default discards
// all output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// New loads the grammar and builds an engine. A malformed grammar is
// reported as a *grammar.GrammarSyntaxError.
func New(opts ...Option) (*Engine, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		g   *grammar.Grammar
		err error
	)
	if o.grammarFile != "" {
		g, err = grammar.LoadFile(o.grammarFile)
	} else {
		g, err = grammar.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading grammar: %w", err)
	}

	o.log.Debug("grammar loaded",
		zap.String("source", g.Source),
		zap.Int("version", g.Version),
		zap.Int("productions", len(g.Productions)),
	)
	return &Engine{
		grammar:   g,
		parser:    parse.New(g),
		extractor: extract.New(o.log),
	}, nil
}

// Grammar returns the compiled grammar.
func (e *Engine) Grammar() *grammar.Grammar { return e.grammar }

// Parse returns the parse tree of text. Text without citations yields a
// tree with no occurrences.
func (e *Engine) Parse(text string) *parse.Tree {
	return e.parser.Parse(text)
}

// Extract returns the citations of tree in document order.
func (e *Engine) Extract(tree *parse.Tree, mode Mode) []types.Citation {
	return e.extractor.Extract(tree, mode)
}

// Citations returns every supported citation in text, in document order.
func (e *Engine) Citations(text string) []types.Citation {
	return e.Extract(e.Parse(text), ModeAll)
}

// CitationsMode is Citations restricted to the families mode selects.
func (e *Engine) CitationsMode(text string, mode Mode) []types.Citation {
	return e.Extract(e.Parse(text), mode)
}

// KamerstukCitations returns only the kamerstuk citations in text.
func (e *Engine) KamerstukCitations(text string) []types.KamerstukCitation {
	cs := e.Extract(e.Parse(text), ModeKamerstuk)
	out := make([]types.KamerstukCitation, 0, len(cs))
	for _, c := range cs {
		if k, ok := c.(types.KamerstukCitation); ok {
			out = append(out, k)
		}
	}
	return out
}
