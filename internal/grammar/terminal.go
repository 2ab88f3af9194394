// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grammar

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// Terminal is a token class matched directly against the input text. The
// grammar is scannerless: a terminal is tried at the exact offset the
// parser needs it, and yields its single longest match there.
type Terminal struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`

	// WordStart requires the byte before the match not to be [A-Za-z0-9_].
	WordStart bool `yaml:"word_start"`

	// WordEnd requires the byte after the match not to be [A-Za-z0-9_].
	WordEnd bool `yaml:"word_end"`

	// Except lists lexemes rejected by this terminal, compared
	// case-insensitively.
	Except []string `yaml:"except"`

	re *regexp.Regexp
}

func (t *Terminal) compile() error {
	re, err := regexp.Compile(`^(?:` + t.Pattern + `)`)
	if err != nil {
		return err
	}
	re.Longest()
	if re.MatchString("") {
		return fmt.Errorf("pattern %q matches the empty string", t.Pattern)
	}
	t.re = re
	return nil
}

// Match tries the terminal at byte offset pos of text and returns the end
// offset of the match, or -1 when the terminal does not match there.
func (t *Terminal) Match(text string, pos int) int {
	if pos > len(text) {
		return -1
	}
	if t.WordStart && pos > 0 && isWordByte(text[pos-1]) {
		return -1
	}
	loc := t.re.FindStringIndex(text[pos:])
	if loc == nil {
		return -1
	}
	end := pos + loc[1]
	if t.WordEnd && end < len(text) && isWordByte(text[end]) {
		return -1
	}
	for _, x := range t.Except {
		if strings.EqualFold(x, text[pos:end]) {
			return -1
		}
	}
	return end
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// startFilter is the union of the start terminals' patterns, unanchored.
// A regexp search finds the leftmost offset where any of them matches, so
// every offset before it can be skipped. It is nil when some pattern uses
// an assertion whose meaning changes once the pattern is unanchored.
func startFilter(terms []*Symbol) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(terms))
	for _, s := range terms {
		re, err := syntax.Parse(s.Terminal.Pattern, syntax.Perl)
		if err != nil {
			return nil, err
		}
		if hasAssertion(re) {
			return nil, nil
		}
		alts = append(alts, "(?:"+s.Terminal.Pattern+")")
	}
	if len(alts) == 0 {
		return nil, nil
	}
	return regexp.Compile(strings.Join(alts, "|"))
}

func hasAssertion(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if hasAssertion(sub) {
			return true
		}
	}
	return false
}
