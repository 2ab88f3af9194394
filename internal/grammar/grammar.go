// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grammar loads the declarative citation grammar and compiles it
// into the flat production form the Earley parser works on.
//
// A grammar is a set of YAML documents. The main document names the start
// rule and may include sub-grammars, one per citation family. Terminals are
// regular expressions; rule alternatives are EBNF expressions over terminal
// and rule names. Names carry their role:
//
//	UPPER_CASE  terminal, kept as a token in the parse tree
//	_UPPER      terminal, matched but dropped from the tree
//	lower_case  rule, kept as a node in the parse tree
//	_lower      rule, inlined into its parent node
package grammar

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed resources/*.yaml
var resources embed.FS

// DefaultDocument is the main document of the embedded grammar.
const DefaultDocument = "citations.yaml"

var (
	terminalNameRe = regexp.MustCompile(`^_?[A-Z][A-Z0-9_]*$`)
	ruleNameRe     = regexp.MustCompile(`^_?[a-z][a-z0-9_]*$`)
)

// Rule is a named nonterminal with one or more alternatives.
type Rule struct {
	Name         string         `yaml:"name"`
	Alternatives []*Alternative `yaml:"alternatives"`
}

// Alternative is one right-hand side of a rule. When several derivations of
// the same rule cover the same span, the alternative with the highest
// Priority wins; ties go to the alternative declared first.
type Alternative struct {
	Expr     string `yaml:"expr"`
	Priority int    `yaml:"priority"`

	expr *Expression
}

// document is the YAML layout of one grammar file.
type document struct {
	Version   int         `yaml:"version"`
	Start     string      `yaml:"start"`
	Include   []string    `yaml:"include"`
	Terminals []*Terminal `yaml:"terminals"`
	Rules     []*Rule     `yaml:"rules"`
}

// Symbol is a terminal or nonterminal of the compiled grammar.
type Symbol struct {
	ID   int
	Name string

	// Terminal is set for terminal symbols and nil for nonterminals.
	Terminal *Terminal

	// Inline marks nonterminals whose children are spliced into the parent
	// node: rules named with a leading underscore and the helper rules
	// generated for groups and repetitions.
	Inline bool

	// Hidden marks terminals that are matched but left out of the tree.
	Hidden bool

	// Nullable marks nonterminals that can derive the empty string.
	Nullable bool
}

// IsTerminal reports whether s is a terminal symbol.
func (s *Symbol) IsTerminal() bool { return s.Terminal != nil }

func (s *Symbol) String() string { return s.Name }

// Production is one BNF production LHS → RHS. Order is the declaration
// order among the productions of the same LHS.
type Production struct {
	ID       int
	LHS      *Symbol
	RHS      []*Symbol
	Priority int
	Order    int
}

func (p *Production) String() string {
	names := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		names[i] = s.Name
	}
	rhs := strings.Join(names, " ")
	if rhs == "" {
		rhs = "ε"
	}
	if p.Priority != 0 {
		return fmt.Sprintf("%s → %s  [priority %d]", p.LHS.Name, rhs, p.Priority)
	}
	return fmt.Sprintf("%s → %s", p.LHS.Name, rhs)
}

// Grammar is a loaded, validated and compiled grammar. It is immutable
// after Load returns and safe to share between goroutines.
type Grammar struct {
	Version   int
	Source    string
	Start     *Symbol
	Terminals []*Terminal
	Rules     []*Rule

	Symbols     []*Symbol
	Productions []*Production

	byName      map[string]*Symbol
	byLHS       [][]*Production
	first       []*Symbol
	startFilter *regexp.Regexp
}

// Symbol looks up a symbol by name.
func (g *Grammar) Symbol(name string) (*Symbol, bool) {
	s, ok := g.byName[name]
	return s, ok
}

// ProductionsFor returns the productions whose left-hand side is s, in
// declaration order.
func (g *Grammar) ProductionsFor(s *Symbol) []*Production {
	return g.byLHS[s.ID]
}

// StartTerminals returns the terminals that can begin a derivation of the
// start rule. The parser only tries to start an occurrence where one of
// them matches.
func (g *Grammar) StartTerminals() []*Symbol {
	return g.first
}

// NextStart returns the first offset at or after pos where a start
// terminal may match, or -1 when none can. Word boundary and exception
// checks are left to Terminal.Match, so a returned offset is a candidate
// only.
func (g *Grammar) NextStart(text string, pos int) int {
	if pos >= len(text) {
		return -1
	}
	if g.startFilter == nil {
		return pos
	}
	loc := g.startFilter.FindStringIndex(text[pos:])
	if loc == nil {
		return -1
	}
	return pos + loc[0]
}

// OccurrenceRules returns the names of the rules the start rule directly
// derives, e.g. "kamerstuk" and "case_law". Each names a citation family.
func (g *Grammar) OccurrenceRules() []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(s *Symbol)
	walk = func(s *Symbol) {
		for _, p := range g.byLHS[s.ID] {
			for _, r := range p.RHS {
				switch {
				case r.IsTerminal():
				case r.Inline:
					if !seen[r.Name] {
						seen[r.Name] = true
						walk(r)
					}
				case !seen[r.Name]:
					seen[r.Name] = true
					names = append(names, r.Name)
				}
			}
		}
	}
	walk(g.Start)
	return names
}

// Dump writes the compiled productions in BNF form.
func (g *Grammar) Dump(w io.Writer) error {
	for _, p := range g.Productions {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Default loads the grammar embedded in the binary.
func Default() (*Grammar, error) {
	sub, err := fs.Sub(resources, "resources")
	if err != nil {
		return nil, fmt.Errorf("opening embedded grammar: %w", err)
	}
	return Load(sub, DefaultDocument)
}

// LoadFile loads a grammar from a file on disk. Includes are resolved
// relative to the file's directory.
func LoadFile(path string) (*Grammar, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Load reads the main grammar document name from fsys together with its
// includes, validates it, and compiles it. Every failure is reported as a
// *GrammarSyntaxError.
func Load(fsys fs.FS, name string) (*Grammar, error) {
	main, err := readDocument(fsys, name)
	if err != nil {
		return nil, err
	}
	if main.Start == "" {
		return nil, syntaxErr(name, "", nil, "no start rule declared")
	}

	g := &Grammar{
		Version:   main.Version,
		Source:    name,
		Terminals: main.Terminals,
		Rules:     main.Rules,
	}
	sources := make(map[string]string)
	record := func(src string, d *document) error {
		names := make([]string, 0, len(d.Terminals)+len(d.Rules))
		for _, t := range d.Terminals {
			names = append(names, t.Name)
		}
		for _, r := range d.Rules {
			names = append(names, r.Name)
		}
		for _, n := range names {
			if _, dup := sources[n]; dup {
				return syntaxErr(src, n, nil, "duplicate definition")
			}
			sources[n] = src
		}
		return nil
	}
	if err := record(name, main); err != nil {
		return nil, err
	}

	for _, inc := range main.Include {
		d, err := readDocument(fsys, inc)
		if err != nil {
			return nil, err
		}
		if d.Start != "" || len(d.Include) > 0 {
			return nil, syntaxErr(inc, "", nil, "included documents may not declare start or include")
		}
		if err := record(inc, d); err != nil {
			return nil, err
		}
		g.Terminals = append(g.Terminals, d.Terminals...)
		g.Rules = append(g.Rules, d.Rules...)
	}

	if err := g.validate(sources); err != nil {
		return nil, err
	}
	if err := g.compile(main.Start, sources); err != nil {
		return nil, err
	}
	return g, nil
}

func readDocument(fsys fs.FS, name string) (*document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, syntaxErr(name, "", err, "reading document")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var d document
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, syntaxErr(name, "", nil, "empty document")
		}
		return nil, syntaxErr(name, "", err, "decoding YAML")
	}
	return &d, nil
}

// validate checks names, patterns and expressions before compilation.
func (g *Grammar) validate(sources map[string]string) error {
	seen := make(map[string]bool)

	for _, t := range g.Terminals {
		src := sources[t.Name]
		if !terminalNameRe.MatchString(t.Name) {
			return syntaxErr(src, t.Name, nil, "terminal names must be UPPER_CASE")
		}
		if seen[t.Name] {
			return syntaxErr(src, t.Name, nil, "duplicate definition")
		}
		seen[t.Name] = true
		if err := t.compile(); err != nil {
			return syntaxErr(src, t.Name, err, "invalid pattern")
		}
	}

	for _, r := range g.Rules {
		src := sources[r.Name]
		if !ruleNameRe.MatchString(r.Name) {
			return syntaxErr(src, r.Name, nil, "rule names must be lower_case")
		}
		if seen[r.Name] {
			return syntaxErr(src, r.Name, nil, "duplicate definition")
		}
		seen[r.Name] = true
		if len(r.Alternatives) == 0 {
			return syntaxErr(src, r.Name, nil, "rule has no alternatives")
		}
		for _, a := range r.Alternatives {
			expr, err := ParseExpression(a.Expr)
			if err != nil {
				return syntaxErr(src, r.Name, err, "invalid expression %q", a.Expr)
			}
			a.expr = expr
		}
	}

	for _, r := range g.Rules {
		for _, a := range r.Alternatives {
			var undefined string
			a.expr.symbols(func(name string) {
				if undefined == "" && !seen[name] {
					undefined = name
				}
			})
			if undefined != "" {
				return syntaxErr(sources[r.Name], r.Name, nil, "undefined symbol %q", undefined)
			}
		}
	}
	return nil
}
