// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVergaderjaar(t *testing.T) {
	tests := []struct {
		first, second string
		want          string
	}{
		{"2008", "2009", "2008-2009"},
		{"2008", "09", "2008-2009"},
		{"2014", "15", "2014-2015"},
		{"1997", "1998", "1997-1998"},
		{"1999", "00", "1999-2000"},
		{"1899", "00", "1899-1900"},
		{"1899", "1900", "1899-1900"},
		{"1899", "99", "1899-1900"},
		// The rollover rule only covers the two named years.
		{"1799", "00", "1799-1700"},
		{"2099", "00", "2099-2000"},
		{"2008", "", "2008"},
	}
	for _, tt := range tests {
		t.Run(tt.first+"/"+tt.second, func(t *testing.T) {
			assert.Equal(t, tt.want, Vergaderjaar(tt.first, tt.second))
		})
	}
}

func TestParseVergaderjaar(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2008/09", "2008-2009", true},
		{"2008-2009", "2008-2009", true},
		{"1999/00", "1999-2000", true},
		{"2009 - 10", "2009-2010", true},
		{"2009–10", "2009-2010", true},
		{"2008", "2008", true},
		{"2008/", "", false},
		{"vergaderjaar", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVergaderjaar(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDossiernummer(t *testing.T) {
	tests := []struct {
		number, toevoeging string
		want               string
	}{
		{"31700", "", "31700"},
		{"31 700", "-VIII", "31700-VIII"},
		{"31.700", "XII", "31700-XII"},
		{"31-700", " XII", "31700-XII"},
		{"31 700", " hoofdstuk VIII", "31700-VIII"},
		{"21501", "-20", "21501-20"},
		{"31 700", "-IIB", "31700-IIB"},
		{"29 200", " VI", "29200-VI"},
		{"9 700", "", "9700"},
	}
	for _, tt := range tests {
		t.Run(tt.number+tt.toevoeging, func(t *testing.T) {
			assert.Equal(t, tt.want, Dossiernummer(tt.number, tt.toevoeging))
		})
	}
}

func TestParseDossiernummerIdempotent(t *testing.T) {
	inputs := []string{"31 700-VIII", "31.700 VIII", "31700", "21501-20", "35 925 IV", "31 700 hoofdstuk VIII", "9 700", "9.700-II"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := ParseDossiernummer(in)
			assert.Equal(t, once, ParseDossiernummer(once))
		})
	}
	assert.Equal(t, "31700-VIII", ParseDossiernummer("31.700 VIII"))
	assert.Equal(t, "9700", ParseDossiernummer("9 700"))
	assert.Equal(t, "not a number", ParseDossiernummer("  not a number "))
}

func TestPaginaverwijzing(t *testing.T) {
	tests := []struct {
		name   string
		pages  []string
		ranges []PageRange
		want   string
	}{
		{"none", nil, nil, ""},
		{"single page", []string{"3"}, nil, "3"},
		{"single range", nil, []PageRange{{Start: "4", End: "5"}}, "4-5"},
		{"open range", nil, []PageRange{{Start: "4"}}, "4-"},
		{"page then range", []string{"17"}, []PageRange{{Start: "19", End: "22"}}, "17,19-22"},
		{"pages before ranges", []string{"12", "13"}, []PageRange{{Start: "1", End: "2"}}, "12,13,1-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginaverwijzing(tt.pages, tt.ranges))
		})
	}
}

func TestNLCourt(t *testing.T) {
	tests := map[string]string{
		"rvs":   "RvS",
		"RVS":   "RvS",
		"RvS":   "RvS",
		"hr":    "HR",
		"Hr":    "HR",
		"crvb":  "CRvB",
		"CBB":   "CBb",
		"RBROT": "RBROT",
		"rbams": "rbams",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got := NLCourt(in)
			assert.Equal(t, want, got)
			assert.Equal(t, got, NLCourt(got), "canonical form is a fixed point")
		})
	}
}
