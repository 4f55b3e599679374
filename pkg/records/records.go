// Package records loads ordered row records for grid construction.
//
// Supported inputs:
//   - YAML or JSON: a sequence of mappings, a single mapping, or several
//     YAML documents (separated by ---) whose records are concatenated
//   - newline-delimited JSON (NDJSON): one mapping per line
//   - CSV and TSV: the header row gives the key order
//
// A null entry is kept as a nil record so the grid builder can report the row.
package records

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Format names a record encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
)

// ErrEmptyInput is returned for input without any content.
var ErrEmptyInput = errors.New("empty input")

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	}
	return FormatAuto
}

// ParseFormat validates a format name. Empty and "auto" select FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case FormatYAML, FormatJSON, FormatNDJSON, FormatCSV, FormatTSV:
		return f, nil
	}
	return FormatAuto, errors.Errorf("unknown record format %q (want yaml, json, ndjson, csv or tsv)", s)
}

// LoadFile reads records from path. "-" reads standard input.
func LoadFile(path string) ([]*grid.Record, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger is LoadFile with diagnostics sent to log.
func LoadFileWithLogger(path string, log logr.Logger) ([]*grid.Record, error) {
	return LoadFileFormat(path, FormatAuto, log)
}

// LoadFileFormat reads records from path in format. FormatAuto guesses the
// format from the extension and then from the content.
func LoadFileFormat(path string, format Format, log logr.Logger) ([]*grid.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read records %s", path)
	}

	if format == FormatAuto {
		format = FormatFromPath(path)
	}
	recs, err := Load(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load records %s", path)
	}
	log.V(1).Info("loaded records", "path", path, "format", string(format), "count", len(recs))
	return recs, nil
}

// Load parses data in the given format. FormatAuto detects NDJSON and
// otherwise parses YAML, which also covers JSON.
func Load(data []byte, format Format) ([]*grid.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	switch format {
	case FormatAuto:
		if isLikelyNDJSON(string(data)) {
			return loadNDJSON(data)
		}
		return loadYAML(data)
	case FormatYAML, FormatJSON:
		return loadYAML(data)
	case FormatNDJSON:
		return loadNDJSON(data)
	case FormatCSV:
		return loadDelimited(data, ',')
	case FormatTSV:
		return loadDelimited(data, '\t')
	}
	return nil, errors.Errorf("unsupported record format %q", format)
}

// loadYAML decodes every document and concatenates their records.
func loadYAML(data []byte) ([]*grid.Record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*grid.Record
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrap(err, "invalid YAML")
		}
		if len(doc.Content) == 0 {
			continue
		}
		recs, err := documentRecords(doc.Content[0])
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	if out == nil {
		return nil, errors.New("no records found")
	}
	return out, nil
}

func documentRecords(n *yaml.Node) ([]*grid.Record, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		rec, err := nodeRecord(n)
		if err != nil {
			return nil, err
		}
		return []*grid.Record{rec}, nil
	}
	out := make([]*grid.Record, 0, len(n.Content))
	for _, item := range n.Content {
		rec, err := nodeRecord(item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func nodeRecord(n *yaml.Node) (*grid.Record, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	rec := &grid.Record{}
	if err := n.Decode(rec); err != nil {
		return nil, errors.WithStack(err)
	}
	return rec, nil
}

// loadNDJSON decodes one record per non-empty line.
func loadNDJSON(data []byte) ([]*grid.Record, error) {
	var out []*grid.Record
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(line), &doc); err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		if len(doc.Content) == 0 {
			continue
		}
		rec, err := nodeRecord(doc.Content[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		out = append(out, rec)
	}
	return out, nil
}

// isLikelyNDJSON reports whether most non-empty lines start a JSON object and
// there is more than one of them.
func isLikelyNDJSON(input string) bool {
	objects, nonEmpty := 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			objects++
		}
	}
	return nonEmpty > 1 && objects > nonEmpty/2
}

// loadDelimited reads a header row and one record per following row. Fields
// are typed the way YAML resolves plain scalars; empty fields stay strings.
func loadDelimited(data []byte, comma rune) ([]*grid.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "invalid delimited input")
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	header := rows[0]
	out := make([]*grid.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := &grid.Record{}
		for i, key := range header {
			rec.Set(key, scalar(row[i]))
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalar(field string) any {
	if field == "" {
		return ""
	}
	node := yaml.Node{Kind: yaml.ScalarNode, Value: field}
	var v any
	if err := node.Decode(&v); err != nil {
		return field
	}
	return v
}
