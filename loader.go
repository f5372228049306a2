package powermix

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"
)

// Record is one raw catalog row: column name to cell. Cells are strings
// (CSV) or numbers (JSON, YAML).
type Record map[string]any

// Table is a raw catalog, as produced by the Decode* functions.
type Table []Record

// DecodeTableCSV reads a CSV document whose first row holds the column names.
// Blank rows are skipped.
func DecodeTableCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &DataFormatError{Err: err}
	}
	if len(rows) == 0 {
		return nil, &DataFormatError{Err: errors.New("missing header row")}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := make(Table, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, cell := range row {
			rec[header[i]] = strings.TrimSpace(cell)
		}
		t = append(t, rec)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// DecodeTableJSON reads a JSON document and selects the records with a
// JSONPath expression. An empty selector means "$": the document itself is
// the array of records.
func DecodeTableJSON(r io.Reader, selector string) (Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &DataFormatError{Err: fmt.Errorf("not a correct json: %w", err)}
	}
	return selectTable(doc, selector)
}

// DecodeTableYAML reads a YAML document and selects the records with a
// JSONPath expression, like DecodeTableJSON.
func DecodeTableYAML(r io.Reader, selector string) (Table, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &DataFormatError{Err: fmt.Errorf("not a correct yaml: %w", err)}
	}
	return selectTable(doc, selector)
}

// selectTable evaluates the selector on a decoded document and converts the
// result into records.
func selectTable(doc any, selector string) (Table, error) {
	if selector == "" {
		selector = "$"
	}
	jval, err := jsonpath.Get(selector, doc)
	if err != nil {
		return nil, &DataFormatError{Err: fmt.Errorf("invalid selector %q: %w", selector, err)}
	}
	// a selector can return either the array itself, or a list of one array.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		if inner, ok := jlist[0].([]any); ok {
			jval = inner
		}
	}

	var items []any
	switch v := jval.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, &DataFormatError{Err: fmt.Errorf("selector %q does not yield a list of records but %T", selector, jval)}
	}

	t := make(Table, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, formatErrorf(i+1, "", "not an object but %T", item)
		}
		t = append(t, Record(obj))
	}
	return t, nil
}

// DecodeTable reads a table, guessing the format from the file extension:
// .csv, .json, .yaml or .yml.
func DecodeTable(filename string, r io.Reader, selector string) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return DecodeTableCSV(r)
	case ".json":
		return DecodeTableJSON(r, selector)
	case ".yaml", ".yml":
		return DecodeTableYAML(r, selector)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(filename))
	}
}

// OpenCatalog loads the catalog file at 'path'. See DecodeTable for the
// supported formats and LoadCatalog for the expected columns.
//
// 'path' can also be a http(s) URL, the response is cached in the temporary
// directory for the day.
func OpenCatalog(path, selector, currency string) (*Catalog, error) {
	if isURL(path) {
		return fetchCatalog(daily(os.TempDir()), path, selector, currency)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open catalog file %q: %w", path, err)
	}
	defer f.Close()
	return readCatalog(path, f, selector, currency)
}

func fetchCatalog(client *http.Client, addr, selector, currency string) (*Catalog, error) {
	name, body, err := fget(client, addr)
	if err != nil {
		return nil, fmt.Errorf("could not fetch catalog %q: %w", addr, err)
	}
	return readCatalog(name, bytes.NewReader(body), selector, currency)
}

func readCatalog(name string, r io.Reader, selector, currency string) (*Catalog, error) {
	t, err := DecodeTable(name, r, selector)
	if err != nil {
		return nil, fmt.Errorf("could not decode catalog file %q: %w", name, err)
	}
	c, err := LoadCatalog(t, currency)
	if err != nil {
		return nil, fmt.Errorf("could not load catalog file %q: %w", name, err)
	}
	return c, nil
}
