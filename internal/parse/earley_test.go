// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastaal/nllegalcit/internal/grammar"
)

// toyGrammar exercises the tie-break rules on a grammar small enough to
// reason about by hand.
const toyGrammar = `
start: _top
terminals:
  - {name: WORD, pattern: '[a-z]+', word_start: true, word_end: true}
  - {name: KEY, pattern: 'key', word_start: true, word_end: true}
  - {name: A, pattern: 'a'}
  - {name: _DOT, pattern: '\.'}
  - {name: NUM, pattern: '\d+'}
rules:
  - name: _top
    alternatives:
      - expr: thing | pair | num
  - name: thing
    alternatives:
      - expr: generic
      - expr: special
        priority: 1
  - name: generic
    alternatives: [{expr: WORD}]
  - name: special
    alternatives: [{expr: KEY}]
  - name: pair
    alternatives: [{expr: _DOT p q}]
  - name: p
    alternatives: [{expr: A | A A}]
  - name: q
    alternatives: [{expr: A | A A}]
  - name: num
    alternatives: [{expr: NUM (_DOT NUM)*}]
`

func loadToy(t *testing.T) *Parser {
	t.Helper()
	g, err := grammar.Load(fstest.MapFS{"toy.yaml": {Data: []byte(toyGrammar)}}, "toy.yaml")
	require.NoError(t, err)
	return New(g)
}

func loadDefault(t *testing.T) *Parser {
	t.Helper()
	g, err := grammar.Default()
	require.NoError(t, err)
	return New(g)
}

func TestParseToy(t *testing.T) {
	p := loadToy(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty input",
			text: "",
			want: "_top [0:0]\n",
		},
		{
			name: "priority beats declaration order",
			text: "key",
			want: "_top [0:3]\n  thing [0:3]\n    special [0:3]\n      KEY \"key\"\n",
		},
		{
			name: "word boundaries",
			text: "keys here",
			want: "_top [0:9]\n" +
				"  thing [0:4]\n    generic [0:4]\n      WORD \"keys\"\n" +
				"  thing [5:9]\n    generic [5:9]\n      WORD \"here\"\n",
		},
		{
			name: "earlier symbols take the longer span",
			text: ".aaa",
			want: "_top [0:4]\n  pair [0:4]\n" +
				"    p [1:3]\n      A \"a\"\n      A \"a\"\n" +
				"    q [3:4]\n      A \"a\"\n",
		},
		{
			name: "repetition is flattened and longest occurrence wins",
			text: "1.2.3 x",
			want: "_top [0:7]\n" +
				"  num [0:5]\n    NUM \"1\"\n    NUM \"2\"\n    NUM \"3\"\n" +
				"  thing [6:7]\n    generic [6:7]\n      WORD \"x\"\n",
		},
		{
			name: "unmatched text is skipped",
			text: "KEY 7.",
			want: "_top [0:6]\n  num [4:5]\n    NUM \"7\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := p.Parse(tt.text)
			assert.Equal(t, tt.want, tree.Root.String())
			assert.Equal(t, tt.text, tree.Text)
		})
	}
}

func TestParseKamerstukTree(t *testing.T) {
	p := loadDefault(t)
	text := "Zie Kamerstukken II 2008/09, 31 700-VIII, nr. 3, p. 4-5."

	tree := p.Parse(text)
	occ := tree.Occurrences()
	require.Len(t, occ, 1)

	k := occ[0]
	assert.Equal(t, "kamerstuk", k.Name)
	assert.Equal(t, 4, k.Start)
	assert.Equal(t, 55, k.End)
	assert.Equal(t, text[4:55], k.Text)

	want := `kamerstuk [4:55]
  KAMERSTUKKEN "Kamerstukken"
  kamer [17:19]
    TK "II"
  vergaderjaar [20:27]
    JAAR4 "2008"
    JAAR2 "09"
  dossiernummer [29:40]
    DOSSIERNUMMER "31 700"
    DOSSIERNUMMER_TOEVOEGING "-VIII"
  ondernummer [46:47]
    ONDERNUMMER "3"
  paginaverwijzing [49:55]
    pagina_range [52:55]
      PAGINA_START "4"
      PAGINA_EIND "5"
`
	assert.Equal(t, want, k.String())

	tok, ok := k.Token("KAMERSTUKKEN")
	require.True(t, ok)
	assert.Equal(t, "Kamerstukken", tok.Text)
	_, ok = k.Token("_SEP")
	assert.False(t, ok, "hidden terminals are not in the tree")
}

func TestParseEcliTree(t *testing.T) {
	p := loadDefault(t)

	tree := p.Parse("ECLI:NL:HR:2010:392")
	require.Len(t, tree.Occurrences(), 1)
	assert.Equal(t, `case_law [0:19]
  nl_ecli [0:19]
    NL_COUNTRY "NL"
    NL_ECLI_COURT "HR"
    ECLI_YEAR "2010"
    NL_ECLI_CASENUMBER "392"
`, tree.Occurrences()[0].String())
}

func TestParseNoCitations(t *testing.T) {
	p := loadDefault(t)
	for _, text := range []string{
		"",
		"Geen citaties hier.",
		"Handelingen Tweede Kamer 2007-08, nr. 49, p. 3623",
		"LJN AB1234",
		"ECLI:EU:C:1984:ab3254",
	} {
		t.Run(text, func(t *testing.T) {
			tree := p.Parse(text)
			assert.Empty(t, tree.Occurrences())
			assert.Equal(t, "_citation", tree.Root.Name)
			assert.Equal(t, len(text), tree.Root.End)
		})
	}
}

const prose = "De rechtbank overweegt dat de eiser in zijn nieuwe beroep geen gronden heeft aangevoerd. "

func TestParseLongProse(t *testing.T) {
	p := loadDefault(t)
	text := strings.Repeat(prose, 2000) + "Zie ECLI:NL:HR:2010:392."

	occ := p.Parse(text).Occurrences()
	require.Len(t, occ, 1)
	assert.Equal(t, "ECLI:NL:HR:2010:392", occ[0].Text)
}

func BenchmarkParseProse(b *testing.B) {
	g, err := grammar.Default()
	require.NoError(b, err)
	p := New(g)
	text := strings.Repeat(prose, 4000)
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(text)
	}
}

func TestParseDocumentOrder(t *testing.T) {
	p := loadDefault(t)
	text := "Zie HR 2010, ECLI:NL:HR:2010:BK1234 en Kamerstukken II 2008/09, 31 700, nr. 3, p. 4. " +
		"Vgl. ECLI:EU:C:1997:208."

	var names []string
	last := -1
	for _, n := range p.Parse(text).Occurrences() {
		names = append(names, n.Name)
		assert.Greater(t, n.Start, last)
		assert.Equal(t, text[n.Start:n.End], n.Text)
		last = n.End
	}
	assert.Equal(t, []string{"case_law", "kamerstuk", "case_law"}, names)
}

func TestParseConcurrent(t *testing.T) {
	p := loadDefault(t)
	text := strings.Repeat("Kamerstukken II 2008/09, 31 700, nr. 3; ECLI:NL:RvS:1984:AH0317. ", 20)
	want := p.Parse(text).Root.String()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Parse(text).Root.String()
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Len(t, p.Parse(text).Occurrences(), 40)
}

func TestWalk(t *testing.T) {
	p := loadDefault(t)
	tree := p.Parse("Kamerstukken II 2008/09, 31 700, nr. 3")

	var tokens []string
	tree.Root.Walk(func(n *Node) bool {
		if n.Name == "vergaderjaar" {
			return false
		}
		if n.Terminal {
			tokens = append(tokens, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"KAMERSTUKKEN", "TK", "DOSSIERNUMMER", "ONDERNUMMER"}, tokens)
}
