package assistant

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

const missingCell = "N/A"

// Table is the tabular view of a result turn.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// BuildTable lays out the first root field of data. Columns follow the leaf
// fields selected in doc; without a usable selection the union of scalar
// keys across rows is used. It returns nil when data carries nothing.
func BuildTable(doc string, data map[string]any) *Table {
	key, columns := rootSelection(doc)
	if key == "" {
		key = firstKey(data)
	}
	if key == "" {
		return nil
	}

	var rows []map[string]any
	switch v := data[key].(type) {
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
	case map[string]any:
		rows = []map[string]any{v}
	case nil:
	default:
		return &Table{Columns: []string{key}, Rows: [][]string{{formatCell(v)}}}
	}

	if len(columns) == 0 {
		columns = scalarKeys(rows)
	}
	t := &Table{Columns: columns, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(row[col])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func rootSelection(doc string) (string, []string) {
	parsed, err := parser.Parse(parser.ParseParams{Source: doc})
	if err != nil {
		return "", nil
	}
	for _, def := range parsed.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.SelectionSet == nil {
			continue
		}
		for _, sel := range op.SelectionSet.Selections {
			field, ok := sel.(*ast.Field)
			if !ok {
				continue
			}
			return responseKey(field), leafColumns(field.SelectionSet)
		}
	}
	return "", nil
}

func leafColumns(set *ast.SelectionSet) []string {
	if set == nil {
		return nil
	}
	var cols []string
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.SelectionSet != nil || s.Name.Value == "__typename" {
				continue
			}
			cols = append(cols, responseKey(s))
		case *ast.InlineFragment:
			cols = append(cols, leafColumns(s.SelectionSet)...)
		}
	}
	return cols
}

func responseKey(f *ast.Field) string {
	if f.Alias != nil && f.Alias.Value != "" {
		return f.Alias.Value
	}
	return f.Name.Value
}

func firstKey(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

func scalarKeys(rows []map[string]any) []string {
	seen := map[string]bool{}
	var keys []string
	for _, row := range rows {
		for k, v := range row {
			if seen[k] || k == "__typename" {
				continue
			}
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return missingCell
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = formatCell(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// Render writes the table as aligned text columns.
func (t *Table) Render(w io.Writer) error {
	if t == nil || len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
