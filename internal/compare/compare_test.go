package compare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastaal/nllegalcit/pkg/types"
)

func ecli(country, court string, year int, num string) types.EcliCitation {
	return types.EcliCitation{Country: country, Court: court, Year: year, Casenumber: num}
}

func TestDiff(t *testing.T) {
	a := ecli("NL", "HR", 2015, "3019")
	b := ecli("EU", "C", 2019, "1")
	c := ecli("NL", "RVS", 2020, "100")

	// Same identifier at another position in the text.
	aAgain := a
	aAgain.Start, aAgain.End = 400, 420

	tests := []struct {
		name      string
		found     []types.EcliCitation
		reference []types.EcliCitation
		want      Result
		agree     bool
	}{
		{
			name:      "identical",
			found:     []types.EcliCitation{a, b},
			reference: []types.EcliCitation{b, a},
			want:      Result{Both: []types.EcliCitation{a, b}},
			agree:     true,
		},
		{
			name:      "duplicates and positions ignored",
			found:     []types.EcliCitation{a, aAgain},
			reference: []types.EcliCitation{a},
			want:      Result{Both: []types.EcliCitation{a}},
			agree:     true,
		},
		{
			name:      "both sides differ",
			found:     []types.EcliCitation{a, c},
			reference: []types.EcliCitation{a, b, b},
			want: Result{
				Both:          []types.EcliCitation{a},
				OnlyFound:     []types.EcliCitation{c},
				OnlyReference: []types.EcliCitation{b},
			},
		},
		{
			name:      "nothing found",
			reference: []types.EcliCitation{b},
			want:      Result{OnlyReference: []types.EcliCitation{b}},
		},
		{
			name:  "both empty",
			agree: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.found, tt.reference)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.agree, got.Agree())
		})
	}
}

func TestReport(t *testing.T) {
	r := Result{
		Both:          []types.EcliCitation{ecli("NL", "HR", 2015, "3019")},
		OnlyFound:     []types.EcliCitation{ecli("NL", "RVS", 2020, "100")},
		OnlyReference: []types.EcliCitation{ecli("EU", "C", 2019, "1")},
	}
	var buf bytes.Buffer
	Report(&buf, "ECLI:NL:HR:2021:656", r)

	want := "ECLI:NL:HR:2021:656: 1 in common, 1 only found, 1 only in reference\n" +
		"  + ECLI:NL:RVS:2020:100\n" +
		"  - ECLI:EU:C:2019:1\n"
	assert.Equal(t, want, buf.String())
}
