package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastaal/nllegalcit/pkg/types"
)

var (
	testEcli = types.EcliCitation{Country: "NL", Court: "HR", Year: 2010, Casenumber: "BK3474"}
	testKst  = types.KamerstukCitation{
		Kamer:         types.KamerTK,
		Vergaderjaar:  "2008-2009",
		Dossiernummer: "31700-VIII",
		Ondernummer:   "3",
	}
)

func TestCitationWriterText(t *testing.T) {
	var buf bytes.Buffer
	cw, err := newCitationWriter(&buf, "text")
	require.NoError(t, err)

	require.NoError(t, cw.Write("a.txt", []types.Citation{testEcli, testKst}))
	require.NoError(t, cw.Flush())

	assert.Equal(t, "ECLI:NL:HR:2010:BK3474\nKamerstukken II 2008-2009, 31700-VIII, nr. 3\n", buf.String())
}

func TestCitationWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	cw, err := newCitationWriter(&buf, "json")
	require.NoError(t, err)

	require.NoError(t, cw.Write("a.txt", []types.Citation{testEcli}))
	require.NoError(t, cw.Write("b.txt", []types.Citation{testKst}))
	assert.Empty(t, buf.String(), "structured output is written by Flush")
	require.NoError(t, cw.Flush())

	var got []sourceCitations
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a.txt", got[0].Source)
	assert.Equal(t, types.KindEcli, got[0].Citations[0].Kind)
	assert.Equal(t, "b.txt", got[1].Source)
	assert.Equal(t, types.KindKamerstuk, got[1].Citations[0].Kind)
}

func TestCitationWriterCSL(t *testing.T) {
	var buf bytes.Buffer
	cw, err := newCitationWriter(&buf, "csl")
	require.NoError(t, err)

	require.NoError(t, cw.Write("a.txt", []types.Citation{testEcli, testKst}))
	require.NoError(t, cw.Write("b.txt", []types.Citation{testEcli}))
	require.NoError(t, cw.Flush())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "id: ECLI:NL:HR:2010:BK3474"))
	assert.Contains(t, out, "id: kst-31700-VIII-3")
}

func TestCitationWriterUnknownFormat(t *testing.T) {
	_, err := newCitationWriter(&bytes.Buffer{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestQueryOptsFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		check   func(t *testing.T, kamer types.Kamer, dossier string)
	}{
		{
			name: "normalizes kamer and dossier",
			args: []string{"--kamer", "ii", "--dossier", "31 700-VIII"},
			check: func(t *testing.T, kamer types.Kamer, dossier string) {
				assert.Equal(t, types.KamerTK, kamer)
				assert.Equal(t, "31700-VIII", dossier)
			},
		},
		{
			name:    "rejects unknown kind",
			args:    []string{"--kind", "ljn"},
			wantErr: `unknown kind "ljn"`,
		},
		{
			name:    "rejects unknown kamer",
			args:    []string{"--kamer", "III"},
			wantErr: `unknown kamer "III"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "list"}
			addFilterFlags(cmd)
			cmd.Flags().Int("limit", 0, "")
			require.NoError(t, cmd.ParseFlags(tt.args))

			opts, err := queryOptsFromFlags(cmd)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, opts.Kamer, opts.Dossiernummer)
		})
	}
}
