// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grammar

import "fmt"

// GrammarSyntaxError reports a malformed grammar resource. It is only ever
// returned while loading a grammar; parsing text never produces it.
type GrammarSyntaxError struct {
	// Source is the grammar document the problem was found in.
	Source string

	// Symbol is the rule or terminal involved, if any.
	Symbol string

	Msg string
	Err error
}

func (e *GrammarSyntaxError) Error() string {
	loc := e.Source
	if e.Symbol != "" {
		loc += ": " + e.Symbol
	}
	if e.Err != nil {
		return fmt.Sprintf("grammar %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("grammar %s: %s", loc, e.Msg)
}

func (e *GrammarSyntaxError) Unwrap() error { return e.Err }

func syntaxErr(source, symbol string, err error, format string, args ...any) *GrammarSyntaxError {
	return &GrammarSyntaxError{
		Source: source,
		Symbol: symbol,
		Msg:    fmt.Sprintf(format, args...),
		Err:    err,
	}
}
