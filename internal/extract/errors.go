// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
)

// ErrIncomplete marks an occurrence that matched the grammar but lacks a
// field its citation requires. Such occurrences are not citations and are
// dropped without being reported to the caller.
var ErrIncomplete = errors.New("incomplete citation occurrence")

// StructureError reports a token whose value falls outside the closed set
// its rule allows, e.g. a chamber keyword that is neither Tweede Kamer,
// Eerste Kamer nor Verenigde Vergadering. It aborts extraction of the
// occurrence it was found in; sibling occurrences are unaffected.
type StructureError struct {
	Rule  string
	Token string
	Value string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("citation structure: rule %s: unexpected %s %q", e.Rule, e.Token, e.Value)
}

func incomplete(family, field string) error {
	return fmt.Errorf("%w: %s has no %s", ErrIncomplete, family, field)
}
