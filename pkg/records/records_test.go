package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

func keysOf(t *testing.T, recs []*grid.Record) [][]string {
	t.Helper()
	out := make([][]string, len(recs))
	for i, r := range recs {
		out[i] = r.Keys()
	}
	return out
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   Format
		wantKeys [][]string
	}{
		{
			name:     "yaml sequence",
			input:    "- name: a\n  id: 1\n- name: b\n  id: 2\n",
			wantKeys: [][]string{{"name", "id"}, {"name", "id"}},
		},
		{
			name:     "json array keeps key order",
			input:    `[{"z": 1, "a": 2}, {"z": 3, "a": 4}]`,
			format:   FormatJSON,
			wantKeys: [][]string{{"z", "a"}, {"z", "a"}},
		},
		{
			name:     "single mapping",
			input:    "b: 1\na: 2\n",
			wantKeys: [][]string{{"b", "a"}},
		},
		{
			name:     "multi-document yaml",
			input:    "---\n- x: 1\n---\ny: 2\n",
			wantKeys: [][]string{{"x"}, {"y"}},
		},
		{
			name:     "ndjson detected",
			input:    "{\"k\": 1, \"j\": 2}\n{\"k\": 3, \"j\": 4}\n",
			wantKeys: [][]string{{"k", "j"}, {"k", "j"}},
		},
		{
			name:     "csv",
			input:    "name,age\nalice,31\nbob,27\n",
			format:   FormatCSV,
			wantKeys: [][]string{{"name", "age"}, {"name", "age"}},
		},
		{
			name:     "tsv",
			input:    "b\ta\n1\t2\n",
			format:   FormatTSV,
			wantKeys: [][]string{{"b", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, keysOf(t, got))
		})
	}
}

func TestLoadKeepsNullRecords(t *testing.T) {
	got, err := Load([]byte("- a: 1\n- null\n- ~\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.NotNil(t, got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])

	_, err = grid.Build(grid.Input{Rows: 3, Columns: 1, Records: got})
	assert.True(t, errors.Is(err, grid.ErrInvalidRecordShape))
}

func TestLoadCSVTypesFields(t *testing.T) {
	got, err := Load([]byte("name,age,admin,score,note\nalice,31,true,2.5,\n"), FormatCSV)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		"name":  "alice",
		"age":   31,
		"admin": true,
		"score": 2.5,
		"note":  "",
	}, got[0].Map())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"empty", "   \n", FormatAuto},
		{"scalar record", "- 1\n- 2\n", FormatYAML},
		{"broken yaml", "- a: [1\n", FormatYAML},
		{"broken ndjson", "{\"a\": 1}\n{\"a\": \n", FormatNDJSON},
		{"ragged csv", "a,b\n1\n", FormatCSV},
		{"unknown format", "a: 1", Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input), tt.format)
			require.Error(t, err)
		})
	}
	_, err := Load(nil, FormatAuto)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"rows.yaml":   FormatYAML,
		"rows.YML":    FormatYAML,
		"rows.json":   FormatJSON,
		"rows.jsonl":  FormatNDJSON,
		"rows.ndjson": FormatNDJSON,
		"rows.csv":    FormatCSV,
		"rows.tsv":    FormatTSV,
		"rows":        FormatAuto,
	}
	for path, want := range cases {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("v\na\nb\nc\n"), 0o600))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	v, _ := got[1].Get("v")
	assert.Equal(t, "b", v)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoadFileFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\t2\n"), 0o600))

	got, err := LoadFileFormat(path, FormatTSV, logr.Discard())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b"}, got[0].Keys())
	b, _ := got[0].Get("b")
	assert.Equal(t, 2, b)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "CSV": FormatCSV, " ndjson ": FormatNDJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("toml")
	require.Error(t, err)
}
